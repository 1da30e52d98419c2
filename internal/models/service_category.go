package models

import (
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type ServiceCategory struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
}

func NewServiceCategory(id, name, description string, displayOrder int) (ServiceCategory, error) {
	c := ServiceCategory{ID: id, Name: name, Description: description, DisplayOrder: displayOrder}
	if err := c.Validate(); err != nil {
		return ServiceCategory{}, err
	}
	return c, nil
}

func (c ServiceCategory) Validate() error {
	err := validation.Errors{
		"id":           validation.Validate(strings.TrimSpace(c.ID), validation.Required),
		"name":         validation.Validate(strings.TrimSpace(c.Name), validation.Required),
		"displayOrder": validation.Validate(c.DisplayOrder, validation.Min(0)),
	}.Filter()
	return invalid("service category", err)
}

func (c ServiceCategory) IsValid() bool {
	return c.Validate() == nil
}

func (c ServiceCategory) FormattedName() string {
	r, size := utf8.DecodeRuneInString(c.Name)
	if r == utf8.RuneError {
		return c.Name
	}
	return string(unicode.ToUpper(r)) + c.Name[size:]
}

func (c ServiceCategory) ToMap() map[string]any {
	return map[string]any{
		"id":           c.ID,
		"name":         c.Name,
		"description":  c.Description,
		"displayOrder": c.DisplayOrder,
	}
}

func ServiceCategoryFromMap(key string, m map[string]any) (ServiceCategory, error) {
	return NewServiceCategory(
		orDefault(str(m, "id"), key),
		str(m, "name"),
		str(m, "description"),
		intOr(m, "displayOrder", 0),
	)
}
