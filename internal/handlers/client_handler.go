package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/datasource"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
)

type ClientHandler struct {
	source *datasource.Source
}

func NewClientHandler(source *datasource.Source) *ClientHandler {
	return &ClientHandler{source: source}
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.source.Clients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(clients))
	for _, client := range clients {
		out = append(out, userResponse(client))
	}
	httpresp.List(c, out)
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.source.Client(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, userResponse(client))
}
