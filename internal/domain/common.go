package domain

// BoundingBox - прямоугольник по широте/долготе для грубой фильтрации
type BoundingBox struct {
	MinLat float64 `json:"min_lat" db:"min_lat"`
	MinLon float64 `json:"min_lon" db:"min_lon"`
	MaxLat float64 `json:"max_lat" db:"max_lat"`
	MaxLon float64 `json:"max_lon" db:"max_lon"`
}

// Contains проверяет попадание точки в прямоугольник.
// Если MinLon > MaxLon, прямоугольник пересекает антимеридиан.
func (b BoundingBox) Contains(c Coordinate) bool {
	if c.Latitude < b.MinLat || c.Latitude > b.MaxLat {
		return false
	}
	if b.MinLon <= b.MaxLon {
		return c.Longitude >= b.MinLon && c.Longitude <= b.MaxLon
	}
	return c.Longitude >= b.MinLon || c.Longitude <= b.MaxLon
}

// CrossesAntimeridian - true, если долготный диапазон разорван на ±180
func (b BoundingBox) CrossesAntimeridian() bool {
	return b.MinLon > b.MaxLon
}
