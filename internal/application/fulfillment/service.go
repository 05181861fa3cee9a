package fulfillment

import (
	"context"
	"errors"

	"github.com/factoryops/backend/internal/domain/fulfillment"
	"github.com/factoryops/backend/internal/domain/sequence"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/factoryops/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// Service is the Fulfillment Coordinator. It drives a single request through
// the state machine Received -> InTransaction -> {Committed, RolledBack},
// owning exactly one store transaction for the duration of the request:
// per-line stock transfers, low-stock evaluation, the optional sequence
// increment, and the order status change all commit or roll back together.
type Service struct {
	scope      TransactionScope
	recordRepo fulfillment.RecordRepository
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewService creates a new fulfillment Service
func NewService(scope TransactionScope, recordRepo fulfillment.RecordRepository, logger *zap.Logger) *Service {
	return &Service{
		scope:      scope,
		recordRepo: recordRepo,
		logger:     logger,
	}
}

// SetEventPublisher sets the publisher used as the Notification Dispatcher
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Fulfill executes one fulfillment request atomically and returns its record.
// On any failure inside the transaction everything is rolled back — stock
// lines, order status, and the consumed sequence value — and no notifications
// are dispatched. The service does not deduplicate repeated requests; the
// caller must not submit the same physical event twice.
func (s *Service) Fulfill(ctx context.Context, req *fulfillment.Request) (*fulfillment.Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record := fulfillment.NewRecord(req.OrderID)
	if err := record.BeginTransaction(); err != nil {
		return nil, err
	}

	var lowStock []*stock.LowStockDetectedEvent

	txErr := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.Orders().FindForUpdate(ctx, req.OrderID)
		if err != nil {
			return err
		}

		for _, line := range req.Lines {
			// A cancelled caller still gets an explicit rollback instead of
			// an abandoned transaction.
			if err := ctx.Err(); err != nil {
				return err
			}

			events, err := s.applyTransferLine(ctx, repos, req, line)
			if err != nil {
				return err
			}
			lowStock = append(lowStock, events...)
		}

		var number sequence.DocumentNumber
		if req.NeedsDocumentNumber() {
			// The increment happens inside this transaction so a transfer
			// that rolls back never consumes a number.
			value, err := repos.Counters().IncrementAndGet(ctx, req.DocumentType, req.Scope)
			if err != nil {
				return err
			}
			number = sequence.FormatDocumentNumber(req.DocumentType, req.Scope, value)
			order.AssignDocumentNumber(number)
		}

		if err := order.ApplyStatus(req.TargetStatus); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}

		if err := record.Commit(number, lowStock); err != nil {
			return err
		}
		return repos.Records().Save(ctx, record)
	})

	if txErr != nil {
		s.recordRollback(ctx, record, txErr)
		return nil, txErr
	}

	s.dispatchNotifications(ctx, record, lowStock)
	return record, nil
}

// applyTransferLine moves one line's quantity from the central warehouse to
// the destination and evaluates the low-stock threshold on the source line.
func (s *Service) applyTransferLine(ctx context.Context, repos TransactionalRepositories, req *fulfillment.Request, line fulfillment.TransferLine) ([]*stock.LowStockDetectedEvent, error) {
	src, err := repos.StockLines().FindForUpdate(ctx, stock.CentralLocation, line.VariantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewValidationError("unknown variant at central warehouse")
		}
		return nil, err
	}

	if _, err := src.TransferOut(line.Quantity); err != nil {
		return nil, err
	}
	if err := repos.StockLines().Save(ctx, src); err != nil {
		return nil, err
	}

	dst, err := repos.StockLines().FindForUpdate(ctx, req.DestinationCode, line.VariantID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		dst, err = stock.NewStockLine(req.DestinationCode, line.VariantID, src.Metadata())
		if err != nil {
			return nil, err
		}
	}
	if _, err := dst.TransferIn(line.Quantity, src.Metadata()); err != nil {
		return nil, err
	}
	if err := repos.StockLines().Save(ctx, dst); err != nil {
		return nil, err
	}

	if !req.CheckLowStock {
		return nil, nil
	}
	threshold := src.ReorderThreshold
	if line.Threshold != nil {
		threshold = *line.Threshold
	}
	if event := src.CheckLowStock(threshold); event != nil {
		return []*stock.LowStockDetectedEvent{event}, nil
	}
	return nil, nil
}

// recordRollback documents a rolled back attempt. The write happens outside
// the (already reverted) transaction and is best effort: losing the audit row
// must not mask the original failure.
func (s *Service) recordRollback(ctx context.Context, record *fulfillment.Record, cause error) {
	if err := record.Rollback(cause); err != nil {
		s.logger.Error("fulfillment record in unexpected state on rollback",
			zap.String("record_id", record.ID.String()),
			zap.Error(err),
		)
		return
	}
	if err := s.recordRepo.Save(context.WithoutCancel(ctx), record); err != nil {
		s.logger.Error("failed to persist rolled back fulfillment record",
			zap.String("record_id", record.ID.String()),
			zap.String("order_id", record.OrderID.String()),
			zap.Error(err),
		)
	}
	s.logger.Warn("fulfillment rolled back",
		zap.String("order_id", record.OrderID.String()),
		zap.String("error_code", record.ErrorCode),
		zap.Error(cause),
	)
}

// dispatchNotifications hands the accumulated low-stock events and the
// fulfillment-completed event to the Notification Dispatcher, outside the
// transaction and fire-and-forget: a dispatch failure is logged, never
// surfaced, because the ledger mutation is the transaction's real unit of
// atomicity.
func (s *Service) dispatchNotifications(ctx context.Context, record *fulfillment.Record, lowStock []*stock.LowStockDetectedEvent) {
	if s.publisher == nil {
		record.ClearDomainEvents()
		return
	}

	events := make([]shared.DomainEvent, 0, len(lowStock)+1)
	for _, e := range lowStock {
		events = append(events, e)
	}
	events = append(events, record.GetDomainEvents()...)
	record.ClearDomainEvents()

	if err := s.publisher.Publish(context.WithoutCancel(ctx), events...); err != nil {
		s.logger.Error("failed to dispatch fulfillment notifications",
			zap.String("order_id", record.OrderID.String()),
			zap.Error(err),
		)
	}
}
