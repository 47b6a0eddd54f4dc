package reviews

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	httperr "github.com/aevon-lab/project-tally/internal/core/errors"
	"github.com/aevon-lab/project-tally/internal/core/rating"
	"github.com/aevon-lab/project-tally/internal/core/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	msgInvalidJSON    = "Invalid JSON body"
	msgPersistFailed  = "Failed to persist review"
	msgReviewNotFound = "Review not found"
	msgDuplicate      = "Review already exists"
)

const defaultListLimit = 100

// reviewError carries the structured HTTP error shape from a helper back to
// the handler. Helpers return this instead of writing to gin.Context
// directly, keeping them decoupled from HTTP.
type reviewError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *reviewError) Error() string {
	return e.message
}

// reviewRequest is the write body for create and update.
type reviewRequest struct {
	AuthorID string          `json:"author_id"`
	Score    decimal.Decimal `json:"score"`
	Comment  string          `json:"comment"`
}

// CreateHandler handles HTTP POST requests creating a review.
func (s *Service) CreateHandler(c *gin.Context) {
	req, err := s.parseReview(c)
	if err != nil {
		writeError(c, err)
		return
	}

	now := time.Now().UTC()
	review := &rating.Review{
		ID:        uuid.NewString(),
		ItemID:    c.Param("item_id"),
		AuthorID:  req.AuthorID,
		Score:     req.Score,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if verr := review.Validate(); verr != nil {
		writeError(c, &reviewError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpValidationError,
			message:    verr.Error(),
		})
		return
	}

	if serr := s.store.SaveReview(c.Request.Context(), review); serr != nil {
		writeError(c, classifyStoreError(serr))
		return
	}

	slog.Info("Review created",
		"review_id", review.ID,
		"item_id", review.ItemID,
		"author_id", review.AuthorID,
		"score", review.Score)

	s.notify(c, review.ItemID, rating.OpInsert)
	c.JSON(http.StatusCreated, review)
}

// UpdateHandler handles HTTP PUT requests replacing a review's score and
// comment.
func (s *Service) UpdateHandler(c *gin.Context) {
	req, err := s.parseReview(c)
	if err != nil {
		writeError(c, err)
		return
	}

	itemID := c.Param("item_id")
	reviewID := c.Param("review_id")

	existing, gerr := s.store.GetReview(c.Request.Context(), itemID, reviewID)
	if gerr != nil {
		writeError(c, classifyStoreError(gerr))
		return
	}

	existing.Score = req.Score
	existing.Comment = req.Comment
	if req.AuthorID != "" {
		existing.AuthorID = req.AuthorID
	}
	existing.UpdatedAt = time.Now().UTC()

	if verr := existing.Validate(); verr != nil {
		writeError(c, &reviewError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpValidationError,
			message:    verr.Error(),
		})
		return
	}

	if serr := s.store.UpdateReview(c.Request.Context(), existing); serr != nil {
		writeError(c, classifyStoreError(serr))
		return
	}

	s.notify(c, itemID, rating.OpUpdate)
	c.JSON(http.StatusOK, existing)
}

// DeleteHandler handles HTTP DELETE requests removing a review.
func (s *Service) DeleteHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	reviewID := c.Param("review_id")

	if err := s.store.DeleteReview(c.Request.Context(), itemID, reviewID); err != nil {
		writeError(c, classifyStoreError(err))
		return
	}

	slog.Info("Review deleted", "review_id", reviewID, "item_id", itemID)

	s.notify(c, itemID, rating.OpDelete)
	c.Status(http.StatusNoContent)
}

// GetHandler returns one review.
func (s *Service) GetHandler(c *gin.Context) {
	review, err := s.store.GetReview(c.Request.Context(), c.Param("item_id"), c.Param("review_id"))
	if err != nil {
		writeError(c, classifyStoreError(err))
		return
	}
	c.JSON(http.StatusOK, review)
}

// ListHandler returns the reviews for an item, newest first.
func (s *Service) ListHandler(c *gin.Context) {
	list, err := s.store.ListReviews(c.Request.Context(), c.Param("item_id"), defaultListLimit)
	if err != nil {
		writeError(c, classifyStoreError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": list, "count": len(list)})
}

// parseReview reads the bounded request body and binds it into a
// reviewRequest.
func (s *Service) parseReview(c *gin.Context) (*reviewRequest, *reviewError) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(s.maxBodySizeBytes))

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &reviewError{
				statusCode: http.StatusRequestEntityTooLarge,
				errorType:  httperr.HttpInvalidJsonError,
				message:    "Request body exceeds maximum allowed size",
				details: map[string]interface{}{
					"max_size_bytes": s.maxBodySizeBytes,
				},
			}
		}
		slog.Warn("Invalid JSON body received", "error", err)
		return nil, &reviewError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}
	return &req, nil
}

// notify hands the mutation to the engine. The review row is already
// durable at this point; a maintenance failure leaves the item dirty for
// the reconciler and must not fail the client's write.
func (s *Service) notify(c *gin.Context, itemID string, op rating.MutationOp) {
	if err := s.dispatcher.NotifyMutation(c.Request.Context(), itemID, op); err != nil {
		slog.Warn("Aggregate maintenance deferred to reconciler",
			"item_id", itemID,
			"op", op,
			"error", err)
	}
}

// classifyStoreError maps store sentinels onto the HTTP error envelope.
func classifyStoreError(err error) *reviewError {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return &reviewError{
			statusCode: http.StatusNotFound,
			errorType:  httperr.HttpReviewNotFoundError,
			message:    msgReviewNotFound,
		}
	case errors.Is(err, storage.ErrDuplicate):
		return &reviewError{
			statusCode: http.StatusConflict,
			errorType:  httperr.HttpDuplicateReviewError,
			message:    msgDuplicate,
		}
	case storage.IsTransient(err):
		slog.Error("Store unavailable for review operation", "error", err)
		return &reviewError{
			statusCode: http.StatusServiceUnavailable,
			errorType:  httperr.HttpUnavailableError,
			message:    "Store temporarily unavailable",
		}
	default:
		slog.Error("Failed review store operation", "error", err)
		return &reviewError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}
}

// writeError serializes a reviewError as the JSON HTTP response.
func writeError(c *gin.Context, err *reviewError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
