package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CatalogHandler struct {
	services *repository.ServiceRepository
	audit    *audit.Dispatcher
}

func NewCatalogHandler(services *repository.ServiceRepository, audit *audit.Dispatcher) *CatalogHandler {
	return &CatalogHandler{services: services, audit: audit}
}

// --------- Requests ---------

type ServiceItemRequest struct {
	CategoryID  string  `json:"category_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
	Currency    string  `json:"currency"`
	IsActive    *bool   `json:"is_active"`
	Area        string  `json:"area"`
	IsFullBody  bool    `json:"is_full_body"`
	FacialArea  string  `json:"facial_area"`
}

type CategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
}

// --------- Reads ---------

func (h *CatalogHandler) ListServices(c *gin.Context) {
	var (
		list []models.Service
		err  error
	)
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		list, err = h.services.GetServicesByCategory(c.Request.Context(), category)
	} else {
		list, err = h.services.GetActiveServices(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, dto.Services(list))
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.services.GetCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, categories)
}

// StreamServices pushes the active catalog on every change.
func (h *CatalogHandler) StreamServices(c *gin.Context) {
	sub, err := h.services.ObserveServices().Subscribe(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	stream(c, sub, func(list []models.Service) any { return dto.Services(list) })
}

// --------- Writes ---------

func (h *CatalogHandler) SaveService(c *gin.Context) {
	var req ServiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	props := map[string]any{}
	switch req.CategoryID {
	case models.CategoryStandard:
		putProp(props, models.PropArea, req.Area)
	case models.CategoryPremium:
		props[models.PropIsFullBody] = req.IsFullBody
	case models.CategoryFacial:
		putProp(props, models.PropFacialArea, req.FacialArea)
	}

	item := models.ServiceItem{
		ID:          c.Param("id"),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Currency:    req.Currency,
		IsActive:    active,
		Properties:  props,
	}

	if err := h.services.SaveItem(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  actorFrom(c).ID,
		Action:   "SERVICE_SAVED",
		Entity:   "service",
		EntityID: item.ID,
		Metadata: req,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok", "id": item.ID})
}

func (h *CatalogHandler) SaveCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	category := models.ServiceCategory{
		ID:           c.Param("id"),
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.services.SaveCategory(c.Request.Context(), category); err != nil {
		respondError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  actorFrom(c).ID,
		Action:   "CATEGORY_SAVED",
		Entity:   "category",
		EntityID: category.ID,
	})

	c.JSON(http.StatusOK, category)
}

func putProp(props map[string]any, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		props[key] = v
	}
}
