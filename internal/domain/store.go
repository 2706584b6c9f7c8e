package domain

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/store-search-service/internal/pkg/errors"
	"github.com/store-search-service/internal/pkg/validator"
)

// Address - структурированный адрес магазина
type Address struct {
	Line1  string `json:"line1" validate:"required"`
	Line2  string `json:"line2,omitempty"`
	City   string `json:"city" validate:"required"`
	State  string `json:"state" validate:"required"`
	County string `json:"county" validate:"required"`
	Zip5   int    `json:"zip5" validate:"gt=0,lt=100000"`
	Zip4   string `json:"zip4,omitempty" validate:"omitempty,len=4,numeric"`
}

// Zip5String - zip5 в виде строки из 5 цифр (ведущие нули сохраняются)
func (a Address) Zip5String() string {
	return fmt.Sprintf("%05d", a.Zip5)
}

// Store - розничная точка, принимающая программу льгот.
// Значение неизменяемое: все поля сравнимы, поэтому == дает структурное равенство.
type Store struct {
	ID           string     `json:"storeId" validate:"required"`
	Name         string     `json:"name" validate:"required"`
	Location     Coordinate `json:"location"`
	Address      Address    `json:"address"`
	MainImageURL string     `json:"mainImageURL,omitempty" validate:"omitempty,url"`
}

// NewAddress - создание адреса с валидацией
func NewAddress(line1, line2, city, state, county string, zip5 int, zip4 string) (Address, error) {
	a := Address{
		Line1:  line1,
		Line2:  line2,
		City:   city,
		State:  state,
		County: county,
		Zip5:   zip5,
		Zip4:   zip4,
	}
	if err := validator.Validate(a); err != nil {
		return Address{}, errors.BadArgumentf("invalid address: %s", validator.Describe(err))
	}
	return a, nil
}

// NewStore - создание магазина с валидацией. Пустой id заменяется новым UUID.
func NewStore(id, name string, location Coordinate, address Address) (Store, error) {
	if id == "" {
		id = uuid.NewString()
	}
	s := Store{
		ID:       id,
		Name:     name,
		Location: location,
		Address:  address,
	}
	if err := validator.Validate(s); err != nil {
		return Store{}, errors.BadArgumentf("invalid store: %s", validator.Describe(err))
	}
	return s, nil
}

// WithMainImageURL возвращает копию магазина с изображением
func (s Store) WithMainImageURL(url string) Store {
	s.MainImageURL = url
	return s
}
