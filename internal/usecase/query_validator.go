package usecase

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/pkg/errors"
	"github.com/store-search-service/internal/pkg/utils"
	"github.com/store-search-service/internal/pkg/validator"
)

// MaxParamLength - максимальная длина ключа и значения query-параметра
const MaxParamLength = 200

var recognizedParams = func() map[string]struct{} {
	m := make(map[string]struct{}, len(domain.SearchParams))
	for _, p := range domain.SearchParams {
		m[p] = struct{}{}
	}
	return m
}()

// queryState - состояние разбора: сырые параметры и накопленный запрос
type queryState struct {
	raw  map[string]string
	keys []string
	req  domain.SearchRequest
}

func (s *queryState) has(key string) bool {
	_, ok := s.raw[key]
	return ok
}

// queryRule - один шаг проверки; первая ошибка завершает разбор
type queryRule func(s *queryState) error

// queryRules применяются строго по порядку
var queryRules = []queryRule{
	checkRecognizedKeys,
	checkParamLength,
	checkHasCriterion,
	checkCoordinatePair,
	parseCenter,
	parseRadius,
	parseLimit,
	parseSearchTerm,
	parseZipCode,
}

// ValidateAndParse проверяет сырые query-параметры и строит SearchRequest.
// Значения по умолчанию (радиус при наличии центра, лимит) подставляются здесь и только здесь.
func ValidateAndParse(raw map[string]string) (domain.SearchRequest, error) {
	s := &queryState{
		raw:  raw,
		keys: make([]string, 0, len(raw)),
	}
	for k := range raw {
		s.keys = append(s.keys, k)
	}
	sort.Strings(s.keys)

	for _, rule := range queryRules {
		if err := rule(s); err != nil {
			return domain.SearchRequest{}, err
		}
	}

	if s.req.HasCenter() && !s.req.HasRadius() {
		radius := domain.DefaultRadiusMeters
		s.req.RadiusMeters = &radius
	}
	if !s.req.HasLimit() {
		limit := domain.DefaultLimit
		s.req.Limit = &limit
	}

	return s.req, nil
}

func checkRecognizedKeys(s *queryState) error {
	for _, k := range s.keys {
		if _, ok := recognizedParams[k]; !ok {
			return errors.BadArgument("Unrecognized Query Parameter: " + truncate(k))
		}
	}
	return nil
}

func checkParamLength(s *queryState) error {
	for _, k := range s.keys {
		if len(k) > MaxParamLength || len(s.raw[k]) > MaxParamLength {
			return errors.BadArgumentf("Query Parameter %s exceeds maximum length of %d characters", k, MaxParamLength)
		}
	}
	return nil
}

func checkHasCriterion(s *queryState) error {
	// одиночная широта/долгота считается попыткой задать центр,
	// ее разбирает следующее правило с более точной причиной
	if s.has(domain.ParamSearchTerm) || s.has(domain.ParamZipCode) ||
		s.has(domain.ParamLatitude) || s.has(domain.ParamLongitude) {
		return nil
	}
	return errors.BadArgument("must contain at least one search criterion")
}

func checkCoordinatePair(s *queryState) error {
	if s.has(domain.ParamLatitude) != s.has(domain.ParamLongitude) {
		return errors.BadArgument("latitude and longitude must be provided together")
	}
	return nil
}

func parseCenter(s *queryState) error {
	if !s.has(domain.ParamLatitude) {
		return nil
	}

	lat, err := parseDecimal(s.raw[domain.ParamLatitude])
	if err != nil {
		return errors.BadArgument("latitude must be a decimal number")
	}
	lon, err := parseDecimal(s.raw[domain.ParamLongitude])
	if err != nil {
		return errors.BadArgument("longitude must be a decimal number")
	}
	if !utils.ValidateCoordinates(lat, lon) {
		if lat < -90 || lat > 90 {
			return errors.BadArgument("latitude must be between -90 and 90")
		}
		return errors.BadArgument("longitude must be between -180 and 180")
	}

	center, err := domain.NewCoordinate(lat, lon)
	if err != nil {
		return err
	}
	s.req.Center = &center
	return nil
}

func parseRadius(s *queryState) error {
	if !s.has(domain.ParamRadius) {
		return nil
	}

	radius, err := parseDecimal(s.raw[domain.ParamRadius])
	if err != nil || !utils.ValidateRadius(radius) {
		return errors.BadArgumentf("radius must be a non-negative decimal no greater than %d", int(domain.MaxRadiusMeters))
	}
	s.req.RadiusMeters = &radius
	return nil
}

func parseLimit(s *queryState) error {
	if !s.has(domain.ParamLimit) {
		return nil
	}

	limit, err := strconv.Atoi(s.raw[domain.ParamLimit])
	if err != nil || limit < 0 {
		return errors.BadArgument("limit must be a non-negative integer")
	}
	s.req.Limit = &limit
	return nil
}

func parseSearchTerm(s *queryState) error {
	if !s.has(domain.ParamSearchTerm) {
		return nil
	}

	term := s.raw[domain.ParamSearchTerm]
	if utf8.RuneCountInString(term) < domain.MinSearchTermLength {
		return errors.BadArgumentf("searchTerm must be at least %d characters", domain.MinSearchTermLength)
	}
	s.req.SearchTerm = &term
	return nil
}

func parseZipCode(s *queryState) error {
	if !s.has(domain.ParamZipCode) {
		return nil
	}

	zip := s.raw[domain.ParamZipCode]
	if !validator.IsZipCode(zip) {
		return errors.BadArgument("zipCode must be a 5-digit ZIP or ZIP+4 code")
	}
	s.req.ZipCode = &zip
	return nil
}

// decimalPattern - только десятичная запись: без 0x, "_", NaN и Inf,
// которые принимает strconv.ParseFloat
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// parseDecimal - ParseFloat для строго десятичной записи
func parseDecimal(v string) (float64, error) {
	if !decimalPattern.MatchString(v) {
		return 0, strconv.ErrSyntax
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) {
		return 0, strconv.ErrRange
	}
	return f, nil
}

func truncate(s string) string {
	if len(s) <= MaxParamLength {
		return s
	}
	return s[:MaxParamLength] + "..."
}
