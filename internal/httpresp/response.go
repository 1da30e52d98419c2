package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

type PageResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

// Page slices data for page (1-based) and reports the unsliced total.
func Page[T any](c *gin.Context, data []T, page, limit int) {
	start := (page - 1) * limit
	if start > len(data) {
		start = len(data)
	}
	end := start + limit
	if end > len(data) {
		end = len(data)
	}
	c.JSON(http.StatusOK, PageResponse[T]{
		Data:  data[start:end],
		Total: len(data),
		Page:  page,
		Limit: limit,
	})
}
