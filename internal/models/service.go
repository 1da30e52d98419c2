package models

import (
	"fmt"
	"time"
)

const (
	CategoryStandard = "cat_001"
	CategoryPremium  = "cat_002"
	CategoryFacial   = "cat_003"
)

const DefaultCurrency = "K"

// Service is implemented by StandardService, PremiumService and
// FacialService only. The variant is fixed by CreateService.
type Service interface {
	ID() string
	Name() string
	Description() string
	Price() float64
	Duration() int
	Currency() string
	IsActive() bool
	CreatedAt() time.Time
	UpdatedAt() time.Time
	FormattedPrice() string
	FormattedDuration() string

	isService()
}

type serviceCore struct {
	id          string
	name        string
	description string
	price       float64
	duration    int
	currency    string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func (s serviceCore) ID() string           { return s.id }
func (s serviceCore) Name() string         { return s.name }
func (s serviceCore) Description() string  { return s.description }
func (s serviceCore) Price() float64       { return s.price }
func (s serviceCore) Duration() int        { return s.duration }
func (s serviceCore) Currency() string     { return s.currency }
func (s serviceCore) IsActive() bool       { return s.isActive }
func (s serviceCore) CreatedAt() time.Time { return s.createdAt }
func (s serviceCore) UpdatedAt() time.Time { return s.updatedAt }
func (serviceCore) isService()             {}

func (s serviceCore) FormattedPrice() string {
	return FormatPrice(s.price, s.currency)
}

func (s serviceCore) FormattedDuration() string {
	return FormatDuration(s.duration)
}

type StandardService struct {
	serviceCore
	area string
}

func (s StandardService) Area() string { return s.area }

type PremiumService struct {
	serviceCore
	isFullBody bool
}

func (s PremiumService) IsFullBody() bool { return s.isFullBody }

type FacialService struct {
	serviceCore
	facialArea string
}

func (s FacialService) FacialArea() string { return s.facialArea }

// CategoryOf returns the category a variant belongs to.
func CategoryOf(s Service) (string, bool) {
	switch s.(type) {
	case StandardService:
		return CategoryStandard, true
	case PremiumService:
		return CategoryPremium, true
	case FacialService:
		return CategoryFacial, true
	default:
		return "", false
	}
}

func FormatPrice(price float64, currency string) string {
	return fmt.Sprintf("%.2f %s", price, currency)
}

func FormatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
