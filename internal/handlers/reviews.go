package handlers

import (
	"context"
	"net/http"

	"github.com/BradenHooton/reviewhub/internal/query"
	"github.com/BradenHooton/reviewhub/internal/services"
	pkghttp "github.com/BradenHooton/reviewhub/pkg/http"
	"github.com/go-chi/chi/v5"
)

// ReviewServiceInterface defines the interface for review business logic
type ReviewServiceInterface interface {
	ListReviews(ctx context.Context, params query.Params) (query.Envelope[services.ReviewResponse], error)
	GetReview(ctx context.Context, id string) (*services.ReviewDetail, error)
	CreateReview(ctx context.Context, detail services.ReviewDetail) (*services.ReviewResponse, error)
	UpdateReview(ctx context.Context, id string, detail services.ReviewDetail) (*services.ReviewResponse, error)
	DeleteReview(ctx context.Context, id string) error
}

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	service ReviewServiceInterface
}

func NewReviewHandler(service ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// ReviewRequest is the body of review create and update
type ReviewRequest struct {
	ProductName string `json:"product_name" validate:"required,min=1,max=100"`
	Review      string `json:"review" validate:"required,min=1,max=100"`
	Star        int    `json:"star" validate:"required,min=1,max=5"`
}

func (req ReviewRequest) detail() services.ReviewDetail {
	return services.ReviewDetail{
		ProductName: req.ProductName,
		Review:      req.Review,
		Star:        req.Star,
	}
}

// MessageResponse carries a human-readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

func (h *ReviewHandler) RegisterRoutes(router chi.Router) {
	router.Route("/reviews", func(r chi.Router) {
		r.Get("/", h.ListReviews)
		r.Post("/", h.CreateReview)
		r.Get("/{id}", h.GetReview)
		r.Put("/{id}", h.UpdateReview)
		r.Delete("/{id}", h.DeleteReview)
	})
}

// ListReviews returns one page of reviews
//
// @Summary List reviews
// @Param sort query string false "product_name:asc|desc"
// @Param search query string false "field:term, field is product_name or review"
// @Param page_number query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 10)"
// @Produce json
// @Success 200 {object} query.Envelope[services.ReviewResponse]
// @Router /reviews [get]
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	envelope, err := h.service.ListReviews(r.Context(), query.ParamsFromValues(r.URL.Query()))
	if err != nil {
		writeServiceError(w, err, "Review not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, envelope)
}

func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Review not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, review)
}

// CreateReview stores a review and echoes the submitted fields
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if _, err := h.service.CreateReview(r.Context(), req.detail()); err != nil {
		writeServiceError(w, err, "Review not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, req.detail())
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ReviewRequest
	if err := decodeRequest(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if _, err := h.service.UpdateReview(r.Context(), id, req.detail()); err != nil {
		writeServiceError(w, err, "Review not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, IDResponse{ID: id})
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "Review not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Review deleted successfully"})
}
