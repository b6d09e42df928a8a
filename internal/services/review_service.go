package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BradenHooton/reviewhub/internal/models"
	"github.com/BradenHooton/reviewhub/internal/query"
)

// ReviewRepository defines the storage operations for reviews
type ReviewRepository interface {
	ListAll(ctx context.Context) ([]*models.Review, error)
	GetByID(ctx context.Context, id string) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	Update(ctx context.Context, id string, review *models.Review) (*models.Review, error)
	Delete(ctx context.Context, id string) error
}

// ReviewResponse is one entry of a review listing
type ReviewResponse struct {
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
	Review      string `json:"review"`
	Star        int    `json:"star"`
}

// ReviewDetail is the body of a single review and of a create echo
type ReviewDetail struct {
	ProductName string `json:"product_name"`
	Review      string `json:"review"`
	Star        int    `json:"star"`
}

func reviewModelToResponse(review *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:          review.ID,
		ProductName: review.ProductName,
		Review:      review.Review,
		Star:        review.Star,
	}
}

// ReviewResource describes how reviews are listed. An unusable page_size uses the default size.
func ReviewResource(defaultPageSize int) query.Resource[*models.Review, ReviewResponse] {
	productName := func(r *models.Review) string { return r.ProductName }

	return query.Resource[*models.Review, ReviewResponse]{
		Name: "reviews",
		Sortable: map[string]query.Field[*models.Review]{
			"product_name": productName,
		},
		Searchable: map[string]query.Field[*models.Review]{
			"product_name": productName,
			"review":       func(r *models.Review) string { return r.Review },
		},
		Page:    query.PagePolicy{DefaultSize: defaultPageSize, Fallback: query.FallbackDefault},
		Project: reviewModelToResponse,
	}
}

// ReviewService handles review business logic
type ReviewService struct {
	repo     ReviewRepository
	pipeline *query.Pipeline[*models.Review, ReviewResponse]
	logger   *slog.Logger
}

func NewReviewService(repo ReviewRepository, collation *query.Collation, defaultPageSize int, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:     repo,
		pipeline: query.NewPipeline(ReviewResource(defaultPageSize), collation),
		logger:   logger,
	}
}

// ListReviews fetches every review and applies sort, search and pagination
func (s *ReviewService) ListReviews(ctx context.Context, params query.Params) (query.Envelope[ReviewResponse], error) {
	reviews, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list reviews", slog.Any("error", err))
		return query.Envelope[ReviewResponse]{}, models.ErrInternalServer
	}

	return s.pipeline.Run(reviews, params), nil
}

func (s *ReviewService) GetReview(ctx context.Context, id string) (*ReviewDetail, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get review", slog.String("review_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return &ReviewDetail{
		ProductName: review.ProductName,
		Review:      review.Review,
		Star:        review.Star,
	}, nil
}

func (s *ReviewService) CreateReview(ctx context.Context, detail ReviewDetail) (*ReviewResponse, error) {
	review, err := s.repo.Create(ctx, &models.Review{
		ProductName: detail.ProductName,
		Review:      detail.Review,
		Star:        detail.Star,
	})
	if err != nil {
		return nil, s.writeError("create review", "", err)
	}

	s.logger.Info("review created", slog.String("review_id", review.ID))
	resp := reviewModelToResponse(review)
	return &resp, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, id string, detail ReviewDetail) (*ReviewResponse, error) {
	review, err := s.repo.Update(ctx, id, &models.Review{
		ProductName: detail.ProductName,
		Review:      detail.Review,
		Star:        detail.Star,
	})
	if err != nil {
		return nil, s.writeError("update review", id, err)
	}

	s.logger.Info("review updated", slog.String("review_id", id))
	resp := reviewModelToResponse(review)
	return &resp, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.writeError("delete review", id, err)
	}

	s.logger.Info("review deleted", slog.String("review_id", id))
	return nil
}

func (s *ReviewService) writeError(op, id string, err error) error {
	if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrUnprocessable) {
		return err
	}
	s.logger.Error("failed to "+op, slog.String("review_id", id), slog.Any("error", err))
	return models.ErrUnprocessable
}
