package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/modules/model"
	"github.com/voyagevr/api/internal/modules/repo"
	"gorm.io/gorm"
)

type FavoriteService interface {
	Toggle(ctx context.Context, userID, destinationID uuid.UUID) (favorited bool, err error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error)
}

type favoriteService struct {
	r     repo.FavoriteRepo
	dests repo.DestinationRepo
}

func NewFavoriteService(r repo.FavoriteRepo, dests repo.DestinationRepo) FavoriteService {
	return &favoriteService{r: r, dests: dests}
}

// Toggle flips the favorite state and reports the resulting state.
func (s *favoriteService) Toggle(ctx context.Context, userID, destinationID uuid.UUID) (bool, error) {
	if _, err := s.r.Get(ctx, userID, destinationID); err == nil {
		return false, s.r.Delete(ctx, userID, destinationID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if _, err := s.dests.GetByID(ctx, destinationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrDestinationNotFound
		}
		return false, err
	}

	err := s.r.Create(ctx, &model.Favorite{UserID: userID, DestinationID: destinationID})
	if err != nil {
		// concurrent toggle landed first
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (s *favoriteService) List(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	return s.r.ListByUser(ctx, userID)
}
