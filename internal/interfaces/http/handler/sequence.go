package handler

import (
	appseq "github.com/factoryops/backend/internal/application/sequence"
	"github.com/factoryops/backend/internal/domain/sequence"
	"github.com/factoryops/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SequenceHandler handles document sequence endpoints
type SequenceHandler struct {
	BaseHandler
	service *appseq.Service
}

// NewSequenceHandler creates a new SequenceHandler
func NewSequenceHandler(service *appseq.Service) *SequenceHandler {
	return &SequenceHandler{service: service}
}

// PeekRequest carries the query parameters for a non-consuming read
type PeekRequest struct {
	DocumentType string `form:"document_type" binding:"required"`
	Scope        string `form:"scope"`
}

// GenerateRequest is the request body for minting a document number
type GenerateRequest struct {
	DocumentType string `json:"document_type" binding:"required"`
	Scope        string `json:"scope"`
}

// OverrideRequest is the request body for a manual number override
type OverrideRequest struct {
	DocumentType string `json:"document_type" binding:"required"`
	RecordID     string `json:"record_id" binding:"required,uuid"`
	Number       string `json:"number" binding:"required"`
}

// ResetRequest is the request body for an administrative counter reset
type ResetRequest struct {
	DocumentType string `json:"document_type" binding:"required"`
	Scope        string `json:"scope"`
	Value        int64  `json:"value" binding:"min=0"`
}

// NumberResponse carries a counter value and its formatted document number
type NumberResponse struct {
	Value  int64  `json:"value,omitempty"`
	Number string `json:"number"`
}

// RegisterRoutes registers sequence routes
func (h *SequenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sequences")
	{
		group.GET("/peek", h.Peek)
		group.POST("/generate", h.Generate)
		group.POST("/override", h.Override)
		group.POST("/reset", h.Reset)
	}
}

// Peek returns the current counter value without consuming it
func (h *SequenceHandler) Peek(c *gin.Context) {
	var req PeekRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	value, number, err := h.service.Peek(c.Request.Context(), sequence.DocumentType(req.DocumentType), req.Scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, NumberResponse{Value: value, Number: number.String()})
}

// Generate mints the next document number for a (document type, scope)
func (h *SequenceHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	number, err := h.service.Generate(c.Request.Context(), sequence.DocumentType(req.DocumentType), req.Scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, NumberResponse{Number: number.String()})
}

// Override attaches a caller-supplied number to an order without consuming
// a sequence value. Requires supervisor tier.
func (h *SequenceHandler) Override(c *gin.Context) {
	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	recordID, _ := uuid.Parse(req.RecordID)

	err := h.service.Override(
		c.Request.Context(),
		middleware.GetActor(c),
		sequence.DocumentType(req.DocumentType),
		recordID,
		sequence.DocumentNumber(req.Number),
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Reset sets a counter to an explicit value. Requires administrator tier.
func (h *SequenceHandler) Reset(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	err := h.service.Reset(
		c.Request.Context(),
		middleware.GetActor(c),
		sequence.DocumentType(req.DocumentType),
		req.Scope,
		req.Value,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
