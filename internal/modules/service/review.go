package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/modules/model"
	"github.com/voyagevr/api/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReviewService interface {
	Create(ctx context.Context, in CreateReviewInput) (*model.Review, error)
	ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]model.Review, error)
}

type reviewService struct {
	r     repo.ReviewRepo
	dests repo.DestinationRepo
	log   *zap.Logger
}

func NewReviewService(r repo.ReviewRepo, dests repo.DestinationRepo, log *zap.Logger) ReviewService {
	return &reviewService{r: r, dests: dests, log: log}
}

type CreateReviewInput struct {
	UserID        uuid.UUID `json:"user_id"`
	DestinationID uuid.UUID `json:"destination_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	Experience    string    `json:"experience"`
}

func (s *reviewService) Create(ctx context.Context, in CreateReviewInput) (*model.Review, error) {
	if _, err := s.dests.GetByID(ctx, in.DestinationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}

	rv := &model.Review{
		UserID:        in.UserID,
		DestinationID: in.DestinationID,
		Rating:        in.Rating,
		Comment:       in.Comment,
		Experience:    in.Experience,
	}
	if err := s.r.Create(ctx, rv); err != nil {
		return nil, err
	}

	// refresh the destination's aggregate; an error here only staleness
	if avg, err := s.r.AverageRating(ctx, in.DestinationID); err != nil {
		s.log.Warn("failed to recompute destination rating", zap.Error(err), zap.String("destination_id", in.DestinationID.String()))
	} else {
		rounded := math.Round(avg*100) / 100
		if err := s.dests.SetRating(ctx, in.DestinationID, rounded); err != nil {
			s.log.Warn("failed to store destination rating", zap.Error(err), zap.String("destination_id", in.DestinationID.String()))
		}
	}

	return rv, nil
}

func (s *reviewService) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]model.Review, error) {
	return s.r.ListByDestination(ctx, destinationID)
}
