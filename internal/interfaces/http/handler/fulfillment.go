package handler

import (
	appful "github.com/factoryops/backend/internal/application/fulfillment"
	"github.com/factoryops/backend/internal/domain/fulfillment"
	"github.com/factoryops/backend/internal/domain/sequence"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/factoryops/backend/internal/interfaces/http/dto"
	"github.com/factoryops/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FulfillmentHandler handles fulfillment endpoints
type FulfillmentHandler struct {
	BaseHandler
	service    *appful.Service
	recordRepo fulfillment.RecordRepository
}

// NewFulfillmentHandler creates a new FulfillmentHandler
func NewFulfillmentHandler(service *appful.Service, recordRepo fulfillment.RecordRepository) *FulfillmentHandler {
	return &FulfillmentHandler{service: service, recordRepo: recordRepo}
}

// TransferLineRequest is one variant movement in a fulfillment request
type TransferLineRequest struct {
	VariantID string `json:"variant_id" binding:"required,uuid"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
	Threshold *int64 `json:"threshold,omitempty"`
}

// FulfillRequest is the request body for executing a fulfillment
type FulfillRequest struct {
	OrderID         string                `json:"order_id" binding:"required,uuid"`
	DocumentType    string                `json:"document_type,omitempty"`
	Scope           string                `json:"scope,omitempty"`
	DestinationCode string                `json:"destination_code" binding:"required"`
	TargetStatus    string                `json:"target_status" binding:"required"`
	Lines           []TransferLineRequest `json:"lines" binding:"required,min=1,dive"`
	CheckLowStock   bool                  `json:"check_low_stock"`
}

// RegisterRoutes registers fulfillment routes
func (h *FulfillmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/fulfillments")
	{
		group.POST("", h.Fulfill)
		group.GET("/:id", h.GetRecord)
		group.GET("/order/:order_id", h.ListByOrder)
	}
}

// Fulfill executes one fulfillment request atomically
func (h *FulfillmentHandler) Fulfill(c *gin.Context) {
	var req FulfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	lines := make([]fulfillment.TransferLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		variantID, err := uuid.Parse(l.VariantID)
		if err != nil {
			h.BadRequest(c, "Invalid variant ID")
			return
		}
		lines = append(lines, fulfillment.TransferLine{
			VariantID: variantID,
			Quantity:  l.Quantity,
			Threshold: l.Threshold,
		})
	}

	record, err := h.service.Fulfill(c.Request.Context(), &fulfillment.Request{
		OrderID:         orderID,
		DocumentType:    sequence.DocumentType(req.DocumentType),
		Scope:           req.Scope,
		DestinationCode: req.DestinationCode,
		TargetStatus:    req.TargetStatus,
		Lines:           lines,
		CheckLowStock:   req.CheckLowStock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, appful.ToRecordDTO(record))
}

// GetRecord returns one fulfillment record by ID
func (h *FulfillmentHandler) GetRecord(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid record ID")
		return
	}
	id, _ := uuid.Parse(req.ID)

	record, err := h.recordRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appful.ToRecordDTO(record))
}

// ListByOrder lists fulfillment records for an order, newest first
func (h *FulfillmentHandler) ListByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if listReq.Page == 0 {
		listReq.Page = 1
	}
	if listReq.PageSize == 0 {
		listReq.PageSize = 20
	}

	records, err := h.recordRepo.FindByOrder(c.Request.Context(), orderID, shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	dtos := make([]appful.RecordDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, appful.ToRecordDTO(&records[i]))
	}
	h.Success(c, dtos)
}
