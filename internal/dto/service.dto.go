package dto

import "github.com/BruksfildServices01/salon-scheduler/internal/models"

type ServiceDTO struct {
	ID                string  `json:"id"`
	CategoryID        string  `json:"category_id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Price             float64 `json:"price"`
	Currency          string  `json:"currency"`
	Duration          int     `json:"duration"`
	FormattedPrice    string  `json:"formatted_price"`
	FormattedDuration string  `json:"formatted_duration"`
	Area              string  `json:"area,omitempty"`
	FacialArea        string  `json:"facial_area,omitempty"`
	IsFullBody        bool    `json:"is_full_body,omitempty"`
}

func Service(s models.Service) ServiceDTO {
	category, _ := models.CategoryOf(s)
	out := ServiceDTO{
		ID:                s.ID(),
		CategoryID:        category,
		Name:              s.Name(),
		Description:       s.Description(),
		Price:             s.Price(),
		Currency:          s.Currency(),
		Duration:          s.Duration(),
		FormattedPrice:    s.FormattedPrice(),
		FormattedDuration: s.FormattedDuration(),
	}

	switch v := s.(type) {
	case models.StandardService:
		out.Area = v.Area()
	case models.PremiumService:
		out.IsFullBody = v.IsFullBody()
	case models.FacialService:
		out.FacialArea = v.FacialArea()
	}
	return out
}

func Services(list []models.Service) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(list))
	for _, s := range list {
		out = append(out, Service(s))
	}
	return out
}
