package stock

import (
	"context"
	"fmt"

	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/factoryops/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// LowStockAlertHandler handles LowStockDetected events and forwards them to a
// notification channel. It sits behind the event bus, so a slow or failing
// notifier never affects the fulfillment that produced the alert.
type LowStockAlertHandler struct {
	logger   *zap.Logger
	notifier AlertNotifier
}

// AlertNotifier is the interface for delivering stock alerts.
// Implementations can back different channels (in-app, email, webhook).
type AlertNotifier interface {
	// SendAlert delivers a low-stock alert
	SendAlert(ctx context.Context, alert LowStockAlert) error
}

// LowStockAlert is the outbound alert payload
type LowStockAlert struct {
	VariantID           string `json:"variant_id"`
	CurrentQuantity     int64  `json:"current_quantity"`
	Threshold           int64  `json:"threshold"`
	LocationDisplayName string `json:"location_display_name"`
}

// NewLowStockAlertHandler creates a new handler for low-stock events
func NewLowStockAlertHandler(logger *zap.Logger) *LowStockAlertHandler {
	return &LowStockAlertHandler{logger: logger}
}

// WithNotifier sets the notifier for delivering alerts
func (h *LowStockAlertHandler) WithNotifier(notifier AlertNotifier) *LowStockAlertHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockAlertHandler) EventTypes() []string {
	return []string{stock.EventTypeLowStockDetected}
}

// Handle processes a LowStockDetected event
func (h *LowStockAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*stock.LowStockDetectedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	h.logger.Warn("stock at or below threshold",
		zap.String("variant_id", e.VariantID.String()),
		zap.Int64("current_quantity", e.CurrentQuantity),
		zap.Int64("threshold", e.Threshold),
		zap.String("location", e.LocationDisplayName),
	)

	if h.notifier == nil {
		return nil
	}
	return h.notifier.SendAlert(ctx, LowStockAlert{
		VariantID:           e.VariantID.String(),
		CurrentQuantity:     e.CurrentQuantity,
		Threshold:           e.Threshold,
		LocationDisplayName: e.LocationDisplayName,
	})
}

// Ensure LowStockAlertHandler implements EventHandler
var _ shared.EventHandler = (*LowStockAlertHandler)(nil)
