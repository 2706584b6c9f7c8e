package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/store-search-service/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Total    int     `json:"total"`
	Limit    int     `json:"limit,omitempty"`
	TimeMSec float64 `json:"time_ms,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

// SendError отдает AppError клиенту. Для OperationFailed и неизвестных ошибок
// наружу уходит только общее сообщение; причина должна быть залогирована раньше.
func SendError(c *fiber.Ctx, err error) error {
	appErr, ok := errors.As(err)
	if !ok || appErr.Code == errors.CodeOperationFailed {
		return c.Status(errors.ErrOperationFailed.StatusCode).JSON(ErrorResponse{
			Error: errors.ErrOperationFailed,
		})
	}

	return c.Status(appErr.StatusCode).JSON(ErrorResponse{
		Error: appErr,
	})
}
