package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ServiceItem is a catalog row as stored, before the factory turns it into
// a Service variant.
type ServiceItem struct {
	ID          string
	CategoryID  string
	Name        string
	Description string
	Price       float64
	Duration    int
	Currency    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Properties  map[string]any
}

// Equal compares catalog rows by id alone.
func (s ServiceItem) Equal(o ServiceItem) bool {
	return s.ID == o.ID
}

func (s ServiceItem) Validate() error {
	err := validation.Errors{
		"id":         validation.Validate(strings.TrimSpace(s.ID), validation.Required),
		"categoryId": validation.Validate(strings.TrimSpace(s.CategoryID), validation.Required),
		"name":       validation.Validate(strings.TrimSpace(s.Name), validation.Required),
		"price": validation.Validate(s.Price,
			validation.Required.Error("price must be positive"),
			validation.Min(0.0).Exclusive().Error("price must be positive"),
		),
		"duration": validation.Validate(s.Duration,
			validation.Required.Error("duration must be positive"),
			validation.Min(1).Error("duration must be positive"),
		),
	}.Filter()
	return invalid("service item", err)
}

func (s ServiceItem) IsValid() bool {
	return s.Validate() == nil
}

func (s ServiceItem) FormattedPrice() string {
	return FormatPrice(s.Price, orDefault(s.Currency, DefaultCurrency))
}

func (s ServiceItem) FormattedDuration() string {
	return FormatDuration(s.Duration)
}

func (s ServiceItem) Input() ServiceInput {
	return ServiceInput{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Duration:    s.Duration,
		Currency:    s.Currency,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		CategoryID:  s.CategoryID,
		Properties:  s.Properties,
	}
}

func (s ServiceItem) ToMap() map[string]any {
	m := map[string]any{
		"id":          s.ID,
		"categoryId":  s.CategoryID,
		"name":        s.Name,
		"description": s.Description,
		"price":       s.Price,
		"duration":    s.Duration,
		"currency":    orDefault(s.Currency, DefaultCurrency),
		"isActive":    s.IsActive,
	}
	putTime(m, "createdAt", s.CreatedAt)
	putTime(m, "updatedAt", s.UpdatedAt)
	for _, k := range []string{PropArea, PropIsFullBody, PropFacialArea} {
		if v, ok := s.Properties[k]; ok {
			m[k] = v
		}
	}
	return m
}

func ServiceItemFromMap(key string, m map[string]any) (ServiceItem, error) {
	createdAt, err := timeAt(m, "createdAt")
	if err != nil {
		return ServiceItem{}, err
	}
	updatedAt, err := timeAt(m, "updatedAt")
	if err != nil {
		return ServiceItem{}, err
	}

	props := map[string]any{}
	for _, k := range []string{PropArea, PropIsFullBody, PropFacialArea} {
		if v, ok := m[k]; ok {
			props[k] = v
		}
	}

	return ServiceItem{
		ID:          orDefault(str(m, "id"), key),
		CategoryID:  str(m, "categoryId"),
		Name:        str(m, "name"),
		Description: str(m, "description"),
		Price:       floatOr(m, "price", 0),
		Duration:    intOr(m, "duration", 0),
		Currency:    strOr(m, "currency", DefaultCurrency),
		IsActive:    boolOr(m, "isActive", true),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		Properties:  props,
	}, nil
}
