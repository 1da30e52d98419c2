package models

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type ServiceInput struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Duration    int
	Currency    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CategoryID  string
	Properties  map[string]any
}

const (
	PropArea       = "area"
	PropIsFullBody = "isFullBody"
	PropFacialArea = "facialArea"

	unknownArea = "unknown"
)

// CreateService builds the variant selected by CategoryID. Variant
// properties that are missing or of the wrong type take their defaults.
func CreateService(in ServiceInput) (Service, error) {
	switch in.CategoryID {
	case CategoryStandard, CategoryPremium, CategoryFacial:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, in.CategoryID)
	}

	core, err := newServiceCore(in)
	if err != nil {
		return nil, err
	}

	switch in.CategoryID {
	case CategoryStandard:
		return StandardService{serviceCore: core, area: stringProp(in.Properties, PropArea, unknownArea)}, nil
	case CategoryPremium:
		return PremiumService{serviceCore: core, isFullBody: boolProp(in.Properties, PropIsFullBody)}, nil
	default:
		return FacialService{serviceCore: core, facialArea: stringProp(in.Properties, PropFacialArea, unknownArea)}, nil
	}
}

func newServiceCore(in ServiceInput) (serviceCore, error) {
	err := validation.Errors{
		"id":   validation.Validate(strings.TrimSpace(in.ID), validation.Required),
		"name": validation.Validate(strings.TrimSpace(in.Name), validation.Required),
		"price": validation.Validate(in.Price,
			validation.Min(0.0).Error("price cannot be negative"),
		),
		"duration": validation.Validate(in.Duration,
			validation.Required.Error("duration must be positive"),
			validation.Min(1).Error("duration must be positive"),
		),
	}.Filter()
	if err != nil {
		return serviceCore{}, invalid("service", err)
	}

	return serviceCore{
		id:          in.ID,
		name:        in.Name,
		description: in.Description,
		price:       in.Price,
		duration:    in.Duration,
		currency:    orDefault(in.Currency, DefaultCurrency),
		isActive:    in.IsActive,
		createdAt:   in.CreatedAt,
		updatedAt:   in.UpdatedAt,
	}, nil
}

func stringProp(props map[string]any, key, def string) string {
	if s, ok := props[key].(string); ok && !blank(s) {
		return s
	}
	return def
}

func boolProp(props map[string]any, key string) bool {
	b, _ := props[key].(bool)
	return b
}
