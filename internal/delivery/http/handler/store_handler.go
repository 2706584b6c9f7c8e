package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/pkg/errors"
	"github.com/store-search-service/internal/pkg/utils"
	"github.com/store-search-service/internal/usecase"
)

// HeaderIncludeImages - заголовок, включающий подбор изображений в выдаче поиска.
// Query-параметры зарезервированы под критерии поиска.
const HeaderIncludeImages = "X-Include-Images"

// StoreHandler - обработчик поиска и чтения магазинов
type StoreHandler struct {
	searchUC *usecase.SearchUseCase
	imageUC  *usecase.ImageUseCase
	logger   *zap.Logger
}

// NewStoreHandler - создание нового StoreHandler; при imageUC == nil
// используются только собственные изображения магазинов
func NewStoreHandler(searchUC *usecase.SearchUseCase, imageUC *usecase.ImageUseCase, logger *zap.Logger) *StoreHandler {
	if imageUC == nil {
		imageUC = usecase.NewImageUseCase(logger)
	}
	return &StoreHandler{
		searchUC: searchUC,
		imageUC:  imageUC,
		logger:   logger,
	}
}

// Search godoc
// @Summary Поиск магазинов
// @Description Фильтры объединяются через AND. Нужен хотя бы один критерий; latitude и longitude передаются вместе.
// @Tags Stores
// @Produce json
// @Param latitude query number false "Широта центра поиска"
// @Param longitude query number false "Долгота центра поиска"
// @Param radius query number false "Радиус в метрах (0..100000)" default(5000)
// @Param searchTerm query string false "Подстрока названия, с учетом регистра (минимум 2 символа)"
// @Param zipCode query string false "ZIP (12345) или ZIP+4 (12345-6789)"
// @Param limit query int false "Максимум результатов, 0 - без ограничения" default(250)
// @Param X-Include-Images header bool false "Заполнить mainImageURL у внешних провайдеров"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Store}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stores/search [get]
func (h *StoreHandler) Search(c *fiber.Ctx) error {
	start := time.Now()

	raw := make(map[string]string)
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		raw[string(key)] = string(value)
	})

	req, err := usecase.ValidateAndParse(raw)
	if err != nil {
		h.logger.Debug("Rejected search request", zap.Error(err))
		return utils.SendError(c, err)
	}

	stores, err := h.searchUC.Search(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	if c.Get(HeaderIncludeImages) == "true" {
		stores = h.imageUC.Enrich(c.Context(), stores)
	}

	return utils.SendSuccess(c, stores, &utils.Meta{
		Total:    len(stores),
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

// List godoc
// @Summary Список магазинов
// @Tags Stores
// @Produce json
// @Param limit query int false "Максимум результатов, 0 - без ограничения" default(250)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Store}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stores [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
	limit := domain.DefaultLimit
	if v := c.Query(domain.ParamLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return utils.SendError(c, errors.BadArgument("limit must be a non-negative integer"))
		}
		limit = n
	}

	stores, err := h.searchUC.GetAll(c.Context(), limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stores, &utils.Meta{
		Total: len(stores),
		Limit: limit,
	})
}

// GetByID godoc
// @Summary Магазин по идентификатору
// @Tags Stores
// @Produce json
// @Param id path string true "ID магазина"
// @Success 200 {object} utils.SuccessResponse{data=domain.Store}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stores/{id} [get]
func (h *StoreHandler) GetByID(c *fiber.Ctx) error {
	store, err := h.searchUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, store, nil)
}

// GetImages godoc
// @Summary Изображения магазина
// @Description Собственное изображение магазина и найденные у провайдеров, без повторов
// @Tags Stores
// @Produce json
// @Param id path string true "ID магазина"
// @Success 200 {object} utils.SuccessResponse{data=[]string}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stores/{id}/images [get]
func (h *StoreHandler) GetImages(c *fiber.Ctx) error {
	store, err := h.searchUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	images, err := h.imageUC.GetImagesFor(c.Context(), *store)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, images, &utils.Meta{Total: len(images)})
}
