package domain

import (
	"github.com/store-search-service/internal/pkg/errors"
)

// Coordinate - точка на поверхности Земли в градусах.
// Создается только через NewCoordinate и далее не изменяется.
type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// NewCoordinate - создание координаты с проверкой диапазонов
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if !(lat >= -90 && lat <= 90) {
		return Coordinate{}, errors.BadArgumentf("latitude out of range [-90, 90]: %v", lat)
	}
	if !(lon >= -180 && lon <= 180) {
		return Coordinate{}, errors.BadArgumentf("longitude out of range [-180, 180]: %v", lon)
	}
	return Coordinate{Latitude: lat, Longitude: lon}, nil
}
