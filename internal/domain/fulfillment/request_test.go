package fulfillment

import (
	"testing"

	"github.com/factoryops/backend/internal/domain/sequence"
	"github.com/factoryops/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validRequest() *Request {
	return &Request{
		OrderID:         uuid.New(),
		DocumentType:    sequence.DocumentTypeFinishedGoodsReceipt,
		Scope:           "D1",
		DestinationCode: "D1",
		TargetStatus:    OrderStatusDelivered,
		Lines: []TransferLine{
			{VariantID: uuid.New(), Quantity: 5},
		},
	}
}

func TestRequest_Validate(t *testing.T) {
	t.Run("accepts a well formed request", func(t *testing.T) {
		assert.NoError(t, validRequest().Validate())
	})

	t.Run("accepts request without document type", func(t *testing.T) {
		req := validRequest()
		req.DocumentType = ""
		assert.NoError(t, req.Validate())
		assert.False(t, req.NeedsDocumentNumber())
	})

	t.Run("rejects missing order ID", func(t *testing.T) {
		req := validRequest()
		req.OrderID = uuid.Nil
		assert.Error(t, req.Validate())
	})

	t.Run("rejects missing destination", func(t *testing.T) {
		req := validRequest()
		req.DestinationCode = ""
		assert.Error(t, req.Validate())
	})

	t.Run("rejects central warehouse as destination", func(t *testing.T) {
		req := validRequest()
		req.DestinationCode = stock.CentralLocation
		assert.Error(t, req.Validate())
	})

	t.Run("rejects missing target status", func(t *testing.T) {
		req := validRequest()
		req.TargetStatus = ""
		assert.Error(t, req.Validate())
	})

	t.Run("rejects empty line list", func(t *testing.T) {
		req := validRequest()
		req.Lines = nil
		assert.Error(t, req.Validate())
	})

	t.Run("rejects unknown document type", func(t *testing.T) {
		req := validRequest()
		req.DocumentType = "invoice"
		assert.Error(t, req.Validate())
	})

	t.Run("rejects line with nil variant", func(t *testing.T) {
		req := validRequest()
		req.Lines = append(req.Lines, TransferLine{VariantID: uuid.Nil, Quantity: 1})
		assert.Error(t, req.Validate())
	})

	t.Run("rejects line with non-positive quantity", func(t *testing.T) {
		req := validRequest()
		req.Lines[0].Quantity = 0
		assert.Error(t, req.Validate())
	})
}

func TestRequest_NeedsDocumentNumber(t *testing.T) {
	req := validRequest()
	assert.True(t, req.NeedsDocumentNumber())

	req.DocumentType = ""
	assert.False(t, req.NeedsDocumentNumber())
}
