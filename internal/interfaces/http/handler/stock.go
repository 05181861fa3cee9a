package handler

import (
	appstock "github.com/factoryops/backend/internal/application/stock"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/factoryops/backend/internal/domain/stock"
	"github.com/factoryops/backend/internal/interfaces/http/dto"
	"github.com/factoryops/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockHandler handles stock ledger read endpoints
type StockHandler struct {
	BaseHandler
	service *appstock.QueryService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(service *appstock.QueryService) *StockHandler {
	return &StockHandler{service: service}
}

// StockLineResponse is the API representation of a stock line
type StockLineResponse struct {
	ID               string          `json:"id"`
	LocationCode     string          `json:"location_code"`
	VariantID        string          `json:"variant_id"`
	Quantity         int64           `json:"quantity"`
	ReorderThreshold int64           `json:"reorder_threshold"`
	DisplayName      string          `json:"display_name,omitempty"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	BelowThreshold   bool            `json:"below_threshold"`
}

// RegisterRoutes registers stock routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/stock")
	{
		group.GET("/locations/:location/variants/:variant_id", h.GetLine)
		group.GET("/locations/:location", h.ListByLocation)
		group.GET("/below-threshold", h.ListBelowThreshold)
	}
}

// GetLine returns the stock line for a location-variant pair
func (h *StockHandler) GetLine(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("variant_id"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	line, err := h.service.GetLine(c.Request.Context(), c.Param("location"), variantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStockLineResponse(line))
}

// ListByLocation lists stock lines at a location
func (h *StockHandler) ListByLocation(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	lines, err := h.service.ListByLocation(c.Request.Context(), c.Param("location"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStockLineResponses(lines))
}

// ListBelowThreshold lists lines at or below their reorder threshold
func (h *StockHandler) ListBelowThreshold(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	lines, err := h.service.ListBelowThreshold(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStockLineResponses(lines))
}

// bindFilter binds pagination query parameters into a repository filter
func (h *StockHandler) bindFilter(c *gin.Context) (shared.Filter, bool) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return shared.Filter{}, false
	}
	if listReq.Page == 0 {
		listReq.Page = 1
	}
	if listReq.PageSize == 0 {
		listReq.PageSize = 20
	}
	return shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
	}, true
}

func toStockLineResponse(line *stock.StockLine) StockLineResponse {
	return StockLineResponse{
		ID:               line.ID.String(),
		LocationCode:     line.LocationCode,
		VariantID:        line.VariantID.String(),
		Quantity:         line.Quantity,
		ReorderThreshold: line.ReorderThreshold,
		DisplayName:      line.DisplayName,
		UnitPrice:        line.UnitPrice,
		BelowThreshold:   line.IsBelowThreshold(),
	}
}

func toStockLineResponses(lines []stock.StockLine) []StockLineResponse {
	result := make([]StockLineResponse, 0, len(lines))
	for i := range lines {
		result = append(result, toStockLineResponse(&lines[i]))
	}
	return result
}
