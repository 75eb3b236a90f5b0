package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/retail-sales-dashboard/internal/dto"
	"github.com/anyulbade/retail-sales-dashboard/internal/model"
	"github.com/anyulbade/retail-sales-dashboard/internal/query"
	"github.com/anyulbade/retail-sales-dashboard/internal/service"
)

// SalesQuerier is the part of service.SalesService the handler needs.
type SalesQuerier interface {
	Query(ctx context.Context, params query.Params) (*service.SalesPage, error)
	Facets(ctx context.Context) (model.Facets, error)
}

type SalesHandler struct {
	svc SalesQuerier
}

func NewSalesHandler(svc SalesQuerier) *SalesHandler {
	return &SalesHandler{svc: svc}
}

// List serves GET /api/sales. Failures are left on the context for
// middleware.ErrorHandler to render.
func (h *SalesHandler) List(c *gin.Context) {
	var q dto.SalesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	page, err := h.svc.Query(c.Request.Context(), q.Params())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSalesResponse(page))
}

func (h *SalesHandler) Facets(c *gin.Context) {
	facets, err := h.svc.Facets(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewFacetsResponse(facets))
}
