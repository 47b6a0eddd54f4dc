package reviews

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httperr "github.com/aevon-lab/project-tally/internal/core/errors"
	"github.com/aevon-lab/project-tally/internal/core/rating"
	"github.com/aevon-lab/project-tally/internal/core/storage"
	"github.com/aevon-lab/project-tally/internal/engine"
	storagemocks "github.com/aevon-lab/project-tally/internal/mocks/storage"
	"github.com/aevon-lab/project-tally/internal/resilience"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, reviewStore storage.ReviewStore, aggStore storage.AggregateStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	retry := resilience.NewRetryExecutor(resilience.RetryPolicy{
		MaxAttempts: 2,
		BaseDelay:   time.Millisecond,
		IsRetryable: engine.IsRetryableStoreError,
	})
	breaker := resilience.NewCircuitBreaker("test-store", resilience.CircuitPolicy{
		FailureThreshold: 100,
		CooldownPeriod:   time.Minute,
		IsFailure:        engine.IsStoreFailure,
	})
	cache := engine.NewAggregateCache(time.Minute)
	maintainer := engine.NewMaintainer(aggStore, cache, retry, breaker, 3)
	dispatcher, err := engine.NewDispatcher(maintainer, engine.DispatcherOptions{Mode: engine.DispatchSync})
	require.NoError(t, err)

	r := gin.New()
	NewService(reviewStore, dispatcher, 1).RegisterRoutes(r)
	return r
}

// expectMaintenance wires a clean recompute pass on the aggregate mock.
func expectMaintenance(aggStore *storagemocks.AggregateStore, itemID string, count int64, sum decimal.Decimal) {
	aggStore.EXPECT().
		GetAggregate(mock.Anything, itemID).
		Return(nil, storage.ErrNotFound).
		Once()
	aggStore.EXPECT().
		ComputeCountAndSum(mock.Anything, itemID).
		Return(count, sum, nil).
		Once()
	aggStore.EXPECT().
		WriteAggregate(mock.Anything, mock.MatchedBy(func(a *rating.Aggregate) bool {
			return a.ItemID == itemID && a.SampleCount == count
		}), int64(0)).
		Return(nil).
		Once()
}

func TestCreateHandler_Success(t *testing.T) {
	reviewStore := storagemocks.NewReviewStore(t)
	reviewStore.EXPECT().
		SaveReview(mock.Anything, mock.MatchedBy(func(r *rating.Review) bool {
			return r.ItemID == "item-1" && r.AuthorID == "user-1" && r.ID != ""
		})).
		Return(nil).
		Once()

	aggStore := storagemocks.NewAggregateStore(t)
	expectMaintenance(aggStore, "item-1", 1, decimal.NewFromInt(5))

	router := newTestRouter(t, reviewStore, aggStore)

	body := []byte(`{"author_id": "user-1", "score": 5, "comment": "great"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/items/item-1/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)

	var created rating.Review
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "item-1", created.ItemID)
}

func TestCreateHandler_InvalidJSON(t *testing.T) {
	router := newTestRouter(t, storagemocks.NewReviewStore(t), storagemocks.NewAggregateStore(t))

	req := httptest.NewRequest(http.MethodPost, "/v1/items/item-1/reviews", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)

	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpInvalidJsonError, errResp.ErrorType)
}

func TestCreateHandler_ScoreOutOfRange(t *testing.T) {
	router := newTestRouter(t, storagemocks.NewReviewStore(t), storagemocks.NewAggregateStore(t))

	body := []byte(`{"author_id": "user-1", "score": 11}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/items/item-1/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)

	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpValidationError, errResp.ErrorType)
}

func TestCreateHandler_Duplicate(t *testing.T) {
	reviewStore := storagemocks.NewReviewStore(t)
	reviewStore.EXPECT().
		SaveReview(mock.Anything, mock.Anything).
		Return(storage.ErrDuplicate).
		Once()

	router := newTestRouter(t, reviewStore, storagemocks.NewAggregateStore(t))

	body := []byte(`{"author_id": "user-1", "score": 4}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/items/item-1/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusConflict, resp.Code)
}

func TestCreateHandler_MaintenanceFailureStillCreates(t *testing.T) {
	reviewStore := storagemocks.NewReviewStore(t)
	reviewStore.EXPECT().SaveReview(mock.Anything, mock.Anything).Return(nil).Once()

	// The engine cannot reach the store; the review write must still succeed.
	aggStore := storagemocks.NewAggregateStore(t)
	aggStore.EXPECT().
		GetAggregate(mock.Anything, "item-1").
		Return(nil, fmt.Errorf("%w: connection refused", storage.ErrTransient))

	router := newTestRouter(t, reviewStore, aggStore)

	body := []byte(`{"author_id": "user-1", "score": 3}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/items/item-1/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)
}

func TestUpdateHandler_NotFound(t *testing.T) {
	reviewStore := storagemocks.NewReviewStore(t)
	reviewStore.EXPECT().
		GetReview(mock.Anything, "item-1", "rev-404").
		Return(nil, storage.ErrNotFound).
		Once()

	router := newTestRouter(t, reviewStore, storagemocks.NewAggregateStore(t))

	body := []byte(`{"score": 2}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/items/item-1/reviews/rev-404", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusNotFound, resp.Code)

	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpReviewNotFoundError, errResp.ErrorType)
}

func TestUpdateHandler_Success(t *testing.T) {
	existing := &rating.Review{
		ID:        "rev-1",
		ItemID:    "item-1",
		AuthorID:  "user-1",
		Score:     decimal.NewFromInt(2),
		CreatedAt: time.Now().UTC().Add(-time.Hour),
		UpdatedAt: time.Now().UTC().Add(-time.Hour),
	}

	reviewStore := storagemocks.NewReviewStore(t)
	reviewStore.EXPECT().GetReview(mock.Anything, "item-1", "rev-1").Return(existing, nil).Once()
	reviewStore.EXPECT().
		UpdateReview(mock.Anything, mock.MatchedBy(func(r *rating.Review) bool {
			return r.ID == "rev-1" && r.Score.Equal(decimal.NewFromInt(4))
		})).
		Return(nil).
		Once()

	aggStore := storagemocks.NewAggregateStore(t)
	expectMaintenance(aggStore, "item-1", 1, decimal.NewFromInt(4))

	router := newTestRouter(t, reviewStore, aggStore)

	body := []byte(`{"score": 4, "comment": "better than I thought"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/items/item-1/reviews/rev-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
}

func TestDeleteHandler_Success(t *testing.T) {
	reviewStore := storagemocks.NewReviewStore(t)
	reviewStore.EXPECT().DeleteReview(mock.Anything, "item-1", "rev-1").Return(nil).Once()

	aggStore := storagemocks.NewAggregateStore(t)
	expectMaintenance(aggStore, "item-1", 0, decimal.Zero)

	router := newTestRouter(t, reviewStore, aggStore)

	req := httptest.NewRequest(http.MethodDelete, "/v1/items/item-1/reviews/rev-1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusNoContent, resp.Code)
}

func TestListHandler_Success(t *testing.T) {
	list := []*rating.Review{
		{ID: "rev-2", ItemID: "item-1", AuthorID: "user-2", Score: decimal.NewFromInt(5)},
		{ID: "rev-1", ItemID: "item-1", AuthorID: "user-1", Score: decimal.NewFromInt(3)},
	}

	reviewStore := storagemocks.NewReviewStore(t)
	reviewStore.EXPECT().ListReviews(mock.Anything, "item-1", defaultListLimit).Return(list, nil).Once()

	router := newTestRouter(t, reviewStore, storagemocks.NewAggregateStore(t))

	req := httptest.NewRequest(http.MethodGet, "/v1/items/item-1/reviews", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		Reviews []*rating.Review `json:"reviews"`
		Count   int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, 2, result.Count)
	require.Equal(t, "rev-2", result.Reviews[0].ID)
}
