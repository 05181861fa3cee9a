package sequence

import (
	"context"
	"errors"

	"github.com/factoryops/backend/internal/domain/fulfillment"
	"github.com/factoryops/backend/internal/domain/sequence"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PrivilegeTier is the actor's privilege level for sequence operations
type PrivilegeTier int

// Privilege tiers, lowest to highest
const (
	TierOperator PrivilegeTier = iota
	TierSupervisor
	TierAdministrator
)

// Actor identifies who is invoking an administrative operation
type Actor struct {
	Subject string
	Tier    PrivilegeTier
}

// Service exposes the Sequence Generator operations. Peek is open to any
// caller; Generate mints numbers through the atomic counter; Override and
// Reset are administrative escape hatches guarded by privilege tier and
// logged for audit.
type Service struct {
	counterRepo sequence.CounterRepository
	orderRepo   fulfillment.OrderRepository
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewService creates a new sequence Service
func NewService(counterRepo sequence.CounterRepository, orderRepo fulfillment.OrderRepository, logger *zap.Logger) *Service {
	return &Service{
		counterRepo: counterRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the publisher for audit events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Peek returns the current counter value and its formatted document number
// without mutating the counter. A counter that does not exist yet reads as 0.
func (s *Service) Peek(ctx context.Context, documentType sequence.DocumentType, scope string) (int64, sequence.DocumentNumber, error) {
	if !documentType.IsValid() {
		return 0, "", shared.NewValidationError("unknown document type")
	}
	value, err := s.counterRepo.Peek(ctx, documentType, scope)
	if err != nil {
		return 0, "", err
	}
	return value, sequence.FormatDocumentNumber(documentType, scope, value), nil
}

// Generate atomically advances the counter and returns the minted document
// number. Two concurrent calls for the same (document type, scope) can never
// return the same value.
func (s *Service) Generate(ctx context.Context, documentType sequence.DocumentType, scope string) (sequence.DocumentNumber, error) {
	if !documentType.IsValid() {
		return "", shared.NewValidationError("unknown document type")
	}
	value, err := s.counterRepo.IncrementAndGet(ctx, documentType, scope)
	if err != nil {
		return "", err
	}
	return sequence.FormatDocumentNumber(documentType, scope, value), nil
}

// Override attaches a caller-supplied document number to an order without
// consuming a sequence value. Duplicate numbers are permitted by design and
// the counter's trajectory is never touched; the override is audit-logged.
// Requires supervisor tier.
func (s *Service) Override(ctx context.Context, actor Actor, documentType sequence.DocumentType, recordID uuid.UUID, number sequence.DocumentNumber) error {
	if actor.Tier < TierSupervisor {
		return shared.ErrInsufficientAuth
	}
	if !documentType.IsValid() {
		return shared.NewValidationError("unknown document type")
	}
	if number.IsZero() {
		return shared.NewValidationError("override document number cannot be empty")
	}

	order, err := s.orderRepo.FindByID(ctx, recordID)
	if err != nil {
		return err
	}
	if err := order.OverrideDocumentNumber(number); err != nil {
		return err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return err
	}

	s.logger.Info("document number overridden",
		zap.String("actor", actor.Subject),
		zap.String("document_type", string(documentType)),
		zap.String("record_id", recordID.String()),
		zap.String("number", number.String()),
	)
	s.publishAudit(ctx, sequence.NewNumberOverriddenEvent(documentType, recordID, number, actor.Subject))
	return nil
}

// Reset sets the counter to an explicit value, bypassing increment semantics.
// Requires the highest privilege tier.
func (s *Service) Reset(ctx context.Context, actor Actor, documentType sequence.DocumentType, scope string, value int64) error {
	if actor.Tier < TierAdministrator {
		return shared.ErrInsufficientAuth
	}
	if !documentType.IsValid() {
		return shared.NewValidationError("unknown document type")
	}
	if value < 0 {
		return shared.NewValidationError("counter value cannot be negative")
	}

	if err := s.counterRepo.Reset(ctx, documentType, scope, value); err != nil {
		return err
	}

	s.logger.Info("sequence counter reset",
		zap.String("actor", actor.Subject),
		zap.String("document_type", string(documentType)),
		zap.String("scope", scope),
		zap.Int64("value", value),
	)
	return nil
}

// publishAudit publishes an audit event if a publisher is configured.
// Audit delivery failures are logged, never surfaced.
func (s *Service) publishAudit(ctx context.Context, event shared.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("failed to publish sequence audit event",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
}
