package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/domain/repository"
	"github.com/store-search-service/internal/pkg/errors"
	"github.com/store-search-service/internal/pkg/utils"
)

const storeColumns = `id, name, latitude, longitude, line1, line2, city, state, county, zip5, zip4, main_image_url`

// storeRow - строка таблицы stores
type storeRow struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Latitude     float64 `db:"latitude"`
	Longitude    float64 `db:"longitude"`
	Line1        string  `db:"line1"`
	Line2        string  `db:"line2"`
	City         string  `db:"city"`
	State        string  `db:"state"`
	County       string  `db:"county"`
	Zip5         int     `db:"zip5"`
	Zip4         string  `db:"zip4"`
	MainImageURL string  `db:"main_image_url"`
}

func (r storeRow) toDomain() domain.Store {
	return domain.Store{
		ID:   r.ID,
		Name: r.Name,
		Location: domain.Coordinate{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		},
		Address: domain.Address{
			Line1:  r.Line1,
			Line2:  r.Line2,
			City:   r.City,
			State:  r.State,
			County: r.County,
			Zip5:   r.Zip5,
			Zip4:   r.Zip4,
		},
		MainImageURL: r.MainImageURL,
	}
}

func rowsToStores(rows []storeRow) []domain.Store {
	stores := make([]domain.Store, 0, len(rows))
	for _, row := range rows {
		stores = append(stores, row.toDomain())
	}
	return stores
}

type storeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStoreRepository(db *DB) repository.StoreRepository {
	return &storeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *storeRepository) GetAll(ctx context.Context, limit int) ([]domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores ORDER BY id COLLATE "C"`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	var rows []storeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to get stores", zap.Int("limit", limit), zap.Error(err))
		return nil, fmt.Errorf("select stores: %w", err)
	}
	return rowsToStores(rows), nil
}

// Search сужает выборку на стороне БД: zip5, подстрока имени и
// прямоугольник вокруг центра. Точную проверку радиуса делает движок поиска.
func (r *storeRepository) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Store, error) {
	query, args, err := buildSearchQuery(req)
	if err != nil {
		return nil, err
	}

	var rows []storeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to search stores", zap.String("request", req.CacheKey()), zap.Error(err))
		return nil, fmt.Errorf("search stores: %w", err)
	}

	r.logger.Debug("Store candidates loaded",
		zap.String("request", req.CacheKey()),
		zap.Int("count", len(rows)))
	return rowsToStores(rows), nil
}

func buildSearchQuery(req domain.SearchRequest) (string, []interface{}, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if req.HasZipCode() {
		zip5, zip4, hasZip4 := strings.Cut(*req.ZipCode, "-")
		n, err := strconv.Atoi(zip5)
		if err != nil {
			return "", nil, fmt.Errorf("parse zip code %q: %w", *req.ZipCode, err)
		}
		conds = append(conds, "zip5 = "+arg(n))
		if hasZip4 {
			conds = append(conds, "zip4 = "+arg(zip4))
		}
	}

	if req.HasSearchTerm() {
		conds = append(conds, "strpos(name, "+arg(*req.SearchTerm)+") > 0")
	}

	if req.HasCenter() {
		box, err := utils.BoundingBoxAround(req.Center, req.ResolvedRadius())
		if err != nil {
			return "", nil, err
		}
		conds = append(conds, fmt.Sprintf("latitude BETWEEN %s AND %s", arg(box.MinLat), arg(box.MaxLat)))
		if box.CrossesAntimeridian() {
			conds = append(conds, fmt.Sprintf("(longitude >= %s OR longitude <= %s)", arg(box.MinLon), arg(box.MaxLon)))
		} else {
			conds = append(conds, fmt.Sprintf("longitude BETWEEN %s AND %s", arg(box.MinLon), arg(box.MaxLon)))
		}
	}

	query := `SELECT ` + storeColumns + ` FROM stores`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id COLLATE "C"`
	return query, args, nil
}

func (r *storeRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`

	var row storeRow
	err := r.db.GetContext(ctx, &row, query, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.DoesNotExist("store " + id)
	}
	if err != nil {
		r.logger.Error("Failed to get store by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("get store %s: %w", id, err)
	}

	s := row.toDomain()
	return &s, nil
}

func (r *storeRepository) Upsert(ctx context.Context, store domain.Store) error {
	query := `
		INSERT INTO stores (` + storeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			line1 = EXCLUDED.line1,
			line2 = EXCLUDED.line2,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			county = EXCLUDED.county,
			zip5 = EXCLUDED.zip5,
			zip4 = EXCLUDED.zip4,
			main_image_url = EXCLUDED.main_image_url,
			updated_at = now()
	`

	_, err := r.db.ExecContext(ctx, query,
		store.ID, store.Name,
		store.Location.Latitude, store.Location.Longitude,
		store.Address.Line1, store.Address.Line2,
		store.Address.City, store.Address.State, store.Address.County,
		store.Address.Zip5, store.Address.Zip4,
		store.MainImageURL,
	)
	if err != nil {
		r.logger.Error("Failed to upsert store", zap.String("id", store.ID), zap.Error(err))
		return fmt.Errorf("upsert store %s: %w", store.ID, err)
	}
	return nil
}
