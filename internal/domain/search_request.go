package domain

import (
	"strconv"
	"strings"
)

const (
	// DefaultRadiusMeters - радиус поиска, если клиент его не указал
	DefaultRadiusMeters = 5000.0
	// MaxRadiusMeters - максимально допустимый радиус
	MaxRadiusMeters = 100000.0
	// DefaultLimit - лимит выдачи, если клиент его не указал
	DefaultLimit = 250
	// MinSearchTermLength - минимальная длина поисковой строки
	MinSearchTermLength = 2
)

// Ключи query-параметров поиска
const (
	ParamLatitude   = "latitude"
	ParamLongitude  = "longitude"
	ParamRadius     = "radius"
	ParamLimit      = "limit"
	ParamSearchTerm = "searchTerm"
	ParamZipCode    = "zipCode"
)

// SearchParams - допустимые ключи query-параметров
var SearchParams = []string{
	ParamLatitude,
	ParamLongitude,
	ParamRadius,
	ParamLimit,
	ParamSearchTerm,
	ParamZipCode,
}

// SearchRequest - фильтры поиска магазинов. Все поля опциональны,
// присутствующие фильтры объединяются через AND.
type SearchRequest struct {
	Center       *Coordinate `json:"center,omitempty"`
	RadiusMeters *float64    `json:"radius_meters,omitempty"`
	SearchTerm   *string     `json:"search_term,omitempty"`
	ZipCode      *string     `json:"zip_code,omitempty"`
	Limit        *int        `json:"limit,omitempty"`
}

func (r SearchRequest) HasCenter() bool {
	return r.Center != nil
}

func (r SearchRequest) HasRadius() bool {
	return r.RadiusMeters != nil
}

func (r SearchRequest) HasSearchTerm() bool {
	return r.SearchTerm != nil
}

func (r SearchRequest) HasZipCode() bool {
	return r.ZipCode != nil
}

func (r SearchRequest) HasLimit() bool {
	return r.Limit != nil
}

// ResolvedRadius - радиус с учетом значения по умолчанию
func (r SearchRequest) ResolvedRadius() float64 {
	if r.HasRadius() {
		return *r.RadiusMeters
	}
	return DefaultRadiusMeters
}

// EffectiveLimit - лимит для усечения выдачи; 0 означает "без ограничения"
func (r SearchRequest) EffectiveLimit() int {
	if r.HasLimit() && *r.Limit > 0 {
		return *r.Limit
	}
	return 0
}

// CacheKey - каноническое представление запроса для кеша
func (r SearchRequest) CacheKey() string {
	var b strings.Builder
	b.WriteString("search:")
	if r.HasCenter() {
		b.WriteString("c=")
		b.WriteString(strconv.FormatFloat(r.Center.Latitude, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(r.Center.Longitude, 'g', -1, 64))
		b.WriteString(";r=")
		b.WriteString(strconv.FormatFloat(r.ResolvedRadius(), 'g', -1, 64))
		b.WriteByte(';')
	}
	if r.HasSearchTerm() {
		b.WriteString("t=")
		b.WriteString(strconv.Quote(*r.SearchTerm))
		b.WriteByte(';')
	}
	if r.HasZipCode() {
		b.WriteString("z=")
		b.WriteString(*r.ZipCode)
		b.WriteByte(';')
	}
	b.WriteString("l=")
	b.WriteString(strconv.Itoa(r.EffectiveLimit()))
	return b.String()
}
