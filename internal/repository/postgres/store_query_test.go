package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/store-search-service/internal/domain"
)

func TestBuildSearchQuery(t *testing.T) {
	str := func(s string) *string { return &s }
	flt := func(f float64) *float64 { return &f }

	t.Run("no criteria", func(t *testing.T) {
		query, args, err := buildSearchQuery(domain.SearchRequest{})
		require.NoError(t, err)
		assert.NotContains(t, query, "WHERE")
		assert.Contains(t, query, `ORDER BY id COLLATE "C"`)
		assert.Empty(t, args)
	})

	t.Run("zip plus four", func(t *testing.T) {
		query, args, err := buildSearchQuery(domain.SearchRequest{ZipCode: str("02108-1234")})
		require.NoError(t, err)
		assert.Contains(t, query, "zip5 = $1 AND zip4 = $2")
		assert.Equal(t, []interface{}{2108, "1234"}, args)
	})

	t.Run("search term", func(t *testing.T) {
		query, args, err := buildSearchQuery(domain.SearchRequest{SearchTerm: str("Market")})
		require.NoError(t, err)
		assert.Contains(t, query, "strpos(name, $1) > 0")
		assert.Equal(t, []interface{}{"Market"}, args)
	})

	t.Run("center adds bounding box", func(t *testing.T) {
		center := domain.Coordinate{Latitude: 36.1627, Longitude: -86.7816}
		query, args, err := buildSearchQuery(domain.SearchRequest{Center: &center, RadiusMeters: flt(1000)})
		require.NoError(t, err)
		assert.Contains(t, query, "latitude BETWEEN $1 AND $2")
		assert.Contains(t, query, "longitude BETWEEN $3 AND $4")
		require.Len(t, args, 4)
		assert.Less(t, args[0].(float64), center.Latitude)
		assert.Greater(t, args[1].(float64), center.Latitude)
	})

	t.Run("antimeridian box", func(t *testing.T) {
		center := domain.Coordinate{Latitude: 0, Longitude: 179.99}
		query, _, err := buildSearchQuery(domain.SearchRequest{Center: &center, RadiusMeters: flt(10000)})
		require.NoError(t, err)
		assert.Contains(t, query, "(longitude >= $3 OR longitude <= $4)")
	})
}
