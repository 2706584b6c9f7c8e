package utils

import (
	"math"

	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/pkg/errors"
)

// EarthRadiusMeters - радиус сферической модели Земли.
// Значение 6372.8 км дает эталонное расстояние Нэшвилл - Лос-Анджелес
// 2887259.95 м (отклонение от среднего радиуса 6371 км около 0.03%).
const EarthRadiusMeters = 6372800.0

// Distance - расстояние по большому кругу между двумя точками в метрах (haversine)
func Distance(a, b *domain.Coordinate) (float64, error) {
	if a == nil || b == nil {
		return 0, errors.BadArgument("distance requires two coordinates")
	}
	return HaversineDistance(a.Latitude, a.Longitude, b.Latitude, b.Longitude), nil
}

// HaversineDistance вычисляет расстояние между двумя точками в метрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	a := sinLat*sinLat + math.Cos(lat1Rad)*math.Cos(lat2Rad)*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// DestinationFrom - точка на расстоянии distanceMeters от origin по азимуту bearingDegrees
func DestinationFrom(origin *domain.Coordinate, bearingDegrees, distanceMeters float64) (domain.Coordinate, error) {
	if origin == nil {
		return domain.Coordinate{}, errors.BadArgument("destination requires an origin coordinate")
	}

	delta := distanceMeters / EarthRadiusMeters
	theta := toRadians(bearingDegrees)
	lat1 := toRadians(origin.Latitude)
	lon1 := toRadians(origin.Longitude)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(theta))
	lon2 := lon1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2),
	)

	return domain.Coordinate{
		Latitude:  clamp(toDegrees(lat2), -90, 90),
		Longitude: normalizeLongitude(toDegrees(lon2)),
	}, nil
}

// BoundingBoxAround - прямоугольник, гарантированно содержащий круг радиуса radiusMeters.
// Используется для предварительной фильтрации в SQL перед точной проверкой haversine.
func BoundingBoxAround(center *domain.Coordinate, radiusMeters float64) (domain.BoundingBox, error) {
	if center == nil {
		return domain.BoundingBox{}, errors.BadArgument("bounding box requires a center coordinate")
	}

	north, _ := DestinationFrom(center, 0, radiusMeters)
	south, _ := DestinationFrom(center, 180, radiusMeters)

	box := domain.BoundingBox{
		MinLat: south.Latitude,
		MaxLat: north.Latitude,
	}

	// Круг касается полюса - берем все долготы
	if radiusMeters/EarthRadiusMeters >= toRadians(90-math.Abs(center.Latitude)) {
		if center.Latitude >= 0 {
			box.MaxLat = 90
		} else {
			box.MinLat = -90
		}
		box.MinLon, box.MaxLon = -180, 180
		return box, nil
	}

	// Максимальное отклонение по долготе достигается не на востоке/западе центра,
	// а в точке касания меридиана; считаем его напрямую.
	latRad := toRadians(center.Latitude)
	ratio := math.Sin(radiusMeters/EarthRadiusMeters) / math.Cos(latRad)
	if ratio >= 1 {
		box.MinLon, box.MaxLon = -180, 180
		return box, nil
	}
	dLon := toDegrees(math.Asin(ratio))

	box.MinLon = normalizeLongitude(center.Longitude - dLon)
	box.MaxLon = normalizeLongitude(center.Longitude + dLon)
	return box, nil
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius проверяет валидность радиуса в метрах
func ValidateRadius(radiusMeters float64) bool {
	return radiusMeters >= 0 && radiusMeters <= domain.MaxRadiusMeters
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func toDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

func normalizeLongitude(lon float64) float64 {
	lon = math.Mod(lon+540, 360) - 180
	if lon == -180 {
		return 180
	}
	return lon
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
