package reviews

import (
	"github.com/aevon-lab/project-tally/internal/core/storage"
	"github.com/aevon-lab/project-tally/internal/engine"
	"github.com/gin-gonic/gin"
)

// Service owns the review CRUD surface. Every successful write notifies the
// engine dispatcher so the item's aggregate is brought back in step.
type Service struct {
	store            storage.ReviewStore
	dispatcher       *engine.Dispatcher
	maxBodySizeBytes int
}

func NewService(store storage.ReviewStore, dispatcher *engine.Dispatcher, maxBodySizeMB int) *Service {
	if store == nil {
		panic("reviews: store must not be nil")
	}
	if dispatcher == nil {
		panic("reviews: dispatcher must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            store,
		dispatcher:       dispatcher,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the review CRUD routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/items/:item_id/reviews", s.CreateHandler)
	r.GET("/v1/items/:item_id/reviews", s.ListHandler)
	r.GET("/v1/items/:item_id/reviews/:review_id", s.GetHandler)
	r.PUT("/v1/items/:item_id/reviews/:review_id", s.UpdateHandler)
	r.DELETE("/v1/items/:item_id/reviews/:review_id", s.DeleteHandler)
}
