package models

import (
	"errors"
	"testing"
)

func serviceInput(category string, props map[string]any) ServiceInput {
	return ServiceInput{
		ID:         "svc-1",
		Name:       "Leg wax",
		Price:      250,
		Duration:   30,
		IsActive:   true,
		CategoryID: category,
		Properties: props,
	}
}

func TestCreateServiceVariants(t *testing.T) {
	std, err := CreateService(serviceInput(CategoryStandard, map[string]any{PropArea: "legs"}))
	if err != nil {
		t.Fatalf("standard: %v", err)
	}
	if s, ok := std.(StandardService); !ok || s.Area() != "legs" {
		t.Fatalf("got %T %+v, want StandardService with area legs", std, std)
	}

	prem, err := CreateService(serviceInput(CategoryPremium, map[string]any{PropIsFullBody: true}))
	if err != nil {
		t.Fatalf("premium: %v", err)
	}
	if s, ok := prem.(PremiumService); !ok || !s.IsFullBody() {
		t.Fatalf("got %T, want full-body PremiumService", prem)
	}

	fac, err := CreateService(serviceInput(CategoryFacial, nil))
	if err != nil {
		t.Fatalf("facial: %v", err)
	}
	if s, ok := fac.(FacialService); !ok || s.FacialArea() != "unknown" {
		t.Fatalf("got %T, want FacialService with default area", fac)
	}
}

func TestCreateServiceDefaultsOnMistypedProperties(t *testing.T) {
	svc, err := CreateService(serviceInput(CategoryPremium, map[string]any{PropIsFullBody: "yes"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.(PremiumService).IsFullBody() {
		t.Fatalf("mistyped isFullBody should default to false")
	}

	svc, err = CreateService(serviceInput(CategoryStandard, map[string]any{PropArea: 42}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.(StandardService).Area() != "unknown" {
		t.Fatalf("mistyped area should default to unknown")
	}
}

func TestCreateServiceUnknownCategory(t *testing.T) {
	_, err := CreateService(serviceInput("cat_999", nil))
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("error = %v, want ErrUnknownCategory", err)
	}
}

func TestCreateServiceRequiresCoreFields(t *testing.T) {
	in := serviceInput(CategoryStandard, nil)
	in.Duration = 0
	if _, err := CreateService(in); !IsValidation(err) {
		t.Fatalf("error = %v, want validation error", err)
	}

	in = serviceInput(CategoryStandard, nil)
	in.Price = -5
	if _, err := CreateService(in); !IsValidation(err) {
		t.Fatalf("error = %v, want validation error", err)
	}
}

func TestCategoryOf(t *testing.T) {
	for _, cat := range []string{CategoryStandard, CategoryPremium, CategoryFacial} {
		svc, err := CreateService(serviceInput(cat, nil))
		if err != nil {
			t.Fatalf("%s: %v", cat, err)
		}
		if got, ok := CategoryOf(svc); !ok || got != cat {
			t.Fatalf("CategoryOf(%T) = %q, %v; want %q", svc, got, ok, cat)
		}
	}
}

func TestServiceItemEqualityByID(t *testing.T) {
	a := ServiceItem{ID: "x", Name: "Old name", Price: 10}
	b := ServiceItem{ID: "x", Name: "New name", Price: 99}
	c := ServiceItem{ID: "y", Name: "Old name", Price: 10}

	if !a.Equal(b) {
		t.Fatalf("items with the same id must be equal")
	}
	if a.Equal(c) {
		t.Fatalf("items with different ids must differ")
	}
}

func TestFormatting(t *testing.T) {
	if got := FormatDuration(90); got != "1h 30m" {
		t.Fatalf("FormatDuration(90) = %q", got)
	}
	if got := FormatDuration(45); got != "45m" {
		t.Fatalf("FormatDuration(45) = %q", got)
	}
	if got := FormatPrice(250, "K"); got != "250.00 K" {
		t.Fatalf("FormatPrice = %q", got)
	}
}
