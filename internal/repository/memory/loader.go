package memory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/store-search-service/internal/domain"
)

// csvColumns - ожидаемый заголовок файла с магазинами
var csvColumns = []string{
	"id", "name", "latitude", "longitude",
	"line1", "line2", "city", "state", "county", "zip5", "zip4",
}

// LoadCSV читает магазины из CSV-файла
func LoadCSV(path string, logger *zap.Logger) ([]domain.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stores file: %w", err)
	}
	defer f.Close()

	stores, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read stores file %s: %w", path, err)
	}

	logger.Info("Stores loaded from file",
		zap.String("path", path),
		zap.Int("count", len(stores)))
	return stores, nil
}

// ReadCSV разбирает магазины из CSV с заголовком csvColumns.
// Любая некорректная строка - ошибка всего файла.
func ReadCSV(r io.Reader) ([]domain.Store, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvColumns)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, col := range csvColumns {
		if strings.TrimSpace(header[i]) != col {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i+1, header[i], col)
		}
	}

	var stores []domain.Store
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		s, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		stores = append(stores, s)
	}

	return stores, nil
}

func parseRecord(rec []string) (domain.Store, error) {
	lat, err := strconv.ParseFloat(rec[2], 64)
	if err != nil {
		return domain.Store{}, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(rec[3], 64)
	if err != nil {
		return domain.Store{}, fmt.Errorf("parse longitude: %w", err)
	}
	zip5, err := strconv.Atoi(rec[9])
	if err != nil {
		return domain.Store{}, fmt.Errorf("parse zip5: %w", err)
	}

	loc, err := domain.NewCoordinate(lat, lon)
	if err != nil {
		return domain.Store{}, err
	}
	addr, err := domain.NewAddress(rec[4], rec[5], rec[6], rec[7], rec[8], zip5, rec[10])
	if err != nil {
		return domain.Store{}, err
	}
	return domain.NewStore(rec[0], rec[1], loc, addr)
}
