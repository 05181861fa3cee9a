package fulfillment

import (
	"encoding/json"
	"time"

	"github.com/factoryops/backend/internal/domain/fulfillment"
	"github.com/factoryops/backend/internal/domain/stock"
)

// LowStockEventDTO describes one low-stock alert produced by a fulfillment
type LowStockEventDTO struct {
	VariantID           string `json:"variant_id"`
	CurrentQuantity     int64  `json:"current_quantity"`
	Threshold           int64  `json:"threshold"`
	LocationDisplayName string `json:"location_display_name"`
}

// RecordDTO is the API representation of a fulfillment record
type RecordDTO struct {
	ID             string             `json:"id"`
	OrderID        string             `json:"order_id"`
	State          string             `json:"state"`
	DocumentNumber string             `json:"document_number,omitempty"`
	LowStockEvents []LowStockEventDTO `json:"low_stock_events,omitempty"`
	ErrorCode      string             `json:"error_code,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	CompletedAt    *time.Time         `json:"completed_at,omitempty"`
}

// ToRecordDTO converts a fulfillment record to its DTO
func ToRecordDTO(record *fulfillment.Record) RecordDTO {
	dto := RecordDTO{
		ID:             record.ID.String(),
		OrderID:        record.OrderID.String(),
		State:          string(record.State),
		DocumentNumber: record.DocumentNumber.String(),
		ErrorCode:      record.ErrorCode,
		CreatedAt:      record.CreatedAt,
		CompletedAt:    record.CompletedAt,
	}
	if record.LowStockEvents != "" {
		var events []stock.LowStockDetectedEvent
		if err := json.Unmarshal([]byte(record.LowStockEvents), &events); err == nil {
			for _, e := range events {
				dto.LowStockEvents = append(dto.LowStockEvents, LowStockEventDTO{
					VariantID:           e.VariantID.String(),
					CurrentQuantity:     e.CurrentQuantity,
					Threshold:           e.Threshold,
					LocationDisplayName: e.LocationDisplayName,
				})
			}
		}
	}
	return dto
}
