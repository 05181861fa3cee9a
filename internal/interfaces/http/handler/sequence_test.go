package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	appseq "github.com/factoryops/backend/internal/application/sequence"
	"github.com/factoryops/backend/internal/domain/fulfillment"
	"github.com/factoryops/backend/internal/domain/sequence"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/factoryops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCounterRepo is an in-memory counter table
type fakeCounterRepo struct {
	values map[string]int64
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{values: make(map[string]int64)}
}

func (r *fakeCounterRepo) key(documentType sequence.DocumentType, scope string) string {
	return string(documentType) + "/" + scope
}

func (r *fakeCounterRepo) Peek(_ context.Context, documentType sequence.DocumentType, scope string) (int64, error) {
	return r.values[r.key(documentType, scope)], nil
}

func (r *fakeCounterRepo) IncrementAndGet(_ context.Context, documentType sequence.DocumentType, scope string) (int64, error) {
	k := r.key(documentType, scope)
	r.values[k]++
	return r.values[k], nil
}

func (r *fakeCounterRepo) Reset(_ context.Context, documentType sequence.DocumentType, scope string, value int64) error {
	r.values[r.key(documentType, scope)] = value
	return nil
}

// fakeOrderRepo is an in-memory order table
type fakeOrderRepo struct {
	orders map[uuid.UUID]fulfillment.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]fulfillment.Order)}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*fulfillment.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := order
	return &copied, nil
}

func (r *fakeOrderRepo) FindForUpdate(ctx context.Context, id uuid.UUID) (*fulfillment.Order, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeOrderRepo) Save(_ context.Context, order *fulfillment.Order) error {
	r.orders[order.ID] = *order
	return nil
}

// newSequenceRouter wires the handler behind a test engine with the given tier
func newSequenceRouter(t *testing.T, tier string) (*gin.Engine, *fakeCounterRepo, *fakeOrderRepo) {
	t.Helper()
	counterRepo := newFakeCounterRepo()
	orderRepo := newFakeOrderRepo()
	service := appseq.NewService(counterRepo, orderRepo, zap.NewNop())

	engine := gin.New()
	group := engine.Group("/api/v1", actorMiddleware("test-user", tier))
	NewSequenceHandler(service).RegisterRoutes(group)
	return engine, counterRepo, orderRepo
}

func seedOrder(t *testing.T, repo *fakeOrderRepo) *fulfillment.Order {
	t.Helper()
	order, err := fulfillment.NewOrder("SO-1001", sequence.DocumentTypeFinishedGoodsReceipt)
	require.NoError(t, err)
	repo.orders[order.ID] = *order
	return order
}

func postJSON(engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSequenceHandler_Peek(t *testing.T) {
	t.Run("returns value and formatted number", func(t *testing.T) {
		engine, counterRepo, _ := newSequenceRouter(t, appseq.TierNameOperator)
		counterRepo.values["finished_goods_receipt/D1"] = 7

		req := httptest.NewRequest("GET", "/api/v1/sequences/peek?document_type=finished_goods_receipt&scope=D1", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		require.True(t, resp.Success)
		data := resp.Data.(map[string]any)
		assert.Equal(t, float64(7), data["value"])
		assert.Equal(t, "FG-D1-7", data["number"])
	})

	t.Run("does not consume a value", func(t *testing.T) {
		engine, counterRepo, _ := newSequenceRouter(t, appseq.TierNameOperator)

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest("GET", "/api/v1/sequences/peek?document_type=raw_material_receipt", nil)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
		assert.Equal(t, int64(0), counterRepo.values["raw_material_receipt/"])
	})

	t.Run("missing document type is a bad request", func(t *testing.T) {
		engine, _, _ := newSequenceRouter(t, appseq.TierNameOperator)

		req := httptest.NewRequest("GET", "/api/v1/sequences/peek", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown document type is rejected", func(t *testing.T) {
		engine, _, _ := newSequenceRouter(t, appseq.TierNameOperator)

		req := httptest.NewRequest("GET", "/api/v1/sequences/peek?document_type=invoice", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})
}

func TestSequenceHandler_Generate(t *testing.T) {
	t.Run("mints consecutive numbers", func(t *testing.T) {
		engine, _, _ := newSequenceRouter(t, appseq.TierNameOperator)

		body := GenerateRequest{DocumentType: "finished_goods_receipt", Scope: "D1"}

		w := postJSON(engine, "/api/v1/sequences/generate", body)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "FG-D1-1", decodeResponse(t, w).Data.(map[string]any)["number"])

		w = postJSON(engine, "/api/v1/sequences/generate", body)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "FG-D1-2", decodeResponse(t, w).Data.(map[string]any)["number"])
	})

	t.Run("missing document type is a bad request", func(t *testing.T) {
		engine, _, _ := newSequenceRouter(t, appseq.TierNameOperator)

		w := postJSON(engine, "/api/v1/sequences/generate", GenerateRequest{Scope: "D1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		engine, _, _ := newSequenceRouter(t, appseq.TierNameOperator)

		req := httptest.NewRequest("POST", "/api/v1/sequences/generate", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSequenceHandler_Override(t *testing.T) {
	t.Run("supervisor attaches a number", func(t *testing.T) {
		engine, counterRepo, orderRepo := newSequenceRouter(t, appseq.TierNameSupervisor)
		order := seedOrder(t, orderRepo)

		w := postJSON(engine, "/api/v1/sequences/override", OverrideRequest{
			DocumentType: "finished_goods_receipt",
			RecordID:     order.ID.String(),
			Number:       "FG-D1-999",
		})

		assert.Equal(t, http.StatusNoContent, w.Code)
		saved := orderRepo.orders[order.ID]
		assert.Equal(t, "FG-D1-999", saved.DocumentNumber.String())
		assert.True(t, saved.NumberOverridden)
		assert.Empty(t, counterRepo.values)
	})

	t.Run("operator tier is forbidden", func(t *testing.T) {
		engine, _, orderRepo := newSequenceRouter(t, appseq.TierNameOperator)
		order := seedOrder(t, orderRepo)

		w := postJSON(engine, "/api/v1/sequences/override", OverrideRequest{
			DocumentType: "finished_goods_receipt",
			RecordID:     order.ID.String(),
			Number:       "FG-D1-1",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInsufficientAuth, resp.Error.Code)
		assert.True(t, orderRepo.orders[order.ID].DocumentNumber.IsZero())
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		engine, _, _ := newSequenceRouter(t, appseq.TierNameSupervisor)

		w := postJSON(engine, "/api/v1/sequences/override", OverrideRequest{
			DocumentType: "finished_goods_receipt",
			RecordID:     uuid.New().String(),
			Number:       "FG-1",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed record ID is a bad request", func(t *testing.T) {
		engine, _, _ := newSequenceRouter(t, appseq.TierNameSupervisor)

		w := postJSON(engine, "/api/v1/sequences/override", OverrideRequest{
			DocumentType: "finished_goods_receipt",
			RecordID:     "not-a-uuid",
			Number:       "FG-1",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSequenceHandler_Reset(t *testing.T) {
	t.Run("administrator resets the counter", func(t *testing.T) {
		engine, counterRepo, _ := newSequenceRouter(t, appseq.TierNameAdministrator)
		counterRepo.values["finished_goods_receipt/D1"] = 40

		w := postJSON(engine, "/api/v1/sequences/reset", ResetRequest{
			DocumentType: "finished_goods_receipt",
			Scope:        "D1",
			Value:        100,
		})

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, int64(100), counterRepo.values["finished_goods_receipt/D1"])
	})

	t.Run("supervisor tier is forbidden", func(t *testing.T) {
		engine, counterRepo, _ := newSequenceRouter(t, appseq.TierNameSupervisor)

		w := postJSON(engine, "/api/v1/sequences/reset", ResetRequest{
			DocumentType: "finished_goods_receipt",
			Scope:        "D1",
			Value:        100,
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, counterRepo.values)
	})

	t.Run("negative value is a bad request", func(t *testing.T) {
		engine, _, _ := newSequenceRouter(t, appseq.TierNameAdministrator)

		w := postJSON(engine, "/api/v1/sequences/reset", ResetRequest{
			DocumentType: "finished_goods_receipt",
			Value:        -1,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
