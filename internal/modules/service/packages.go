package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/modules/model"
	"github.com/voyagevr/api/internal/modules/repo"
	"gorm.io/gorm"
)

type PackageService interface {
	EnsureDefaultGroup(ctx context.Context, userID uuid.UUID) (*model.PackageGroup, error)
	CreateGroup(ctx context.Context, userID uuid.UUID, name string) (*model.PackageGroup, error)
	ListGroups(ctx context.Context, userID uuid.UUID) ([]model.PackageGroup, error)

	Add(ctx context.Context, in AddToPackageInput) (*AddToPackageOutput, error)
	Remove(ctx context.Context, userID, destinationID uuid.UUID) error
	Contains(ctx context.Context, userID, destinationID uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.PackageMembership, error)
	ListDestinationIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type packageService struct {
	r     repo.PackageRepo
	dests repo.DestinationRepo
}

func NewPackageService(r repo.PackageRepo, dests repo.DestinationRepo) PackageService {
	return &packageService{r: r, dests: dests}
}

// EnsureDefaultGroup returns the user's first group, creating one with the
// default label when the user owns none yet.
func (s *packageService) EnsureDefaultGroup(ctx context.Context, userID uuid.UUID) (*model.PackageGroup, error) {
	g, err := s.r.FirstGroup(ctx, userID)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	g = &model.PackageGroup{
		UserID: userID,
		Name:   model.DefaultGroupName,
	}
	if err := s.r.CreateGroup(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *packageService) CreateGroup(ctx context.Context, userID uuid.UUID, name string) (*model.PackageGroup, error) {
	g := &model.PackageGroup{
		UserID: userID,
		Name:   name,
	}
	if err := s.r.CreateGroup(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *packageService) ListGroups(ctx context.Context, userID uuid.UUID) ([]model.PackageGroup, error) {
	return s.r.ListGroups(ctx, userID)
}

type AddToPackageInput struct {
	UserID        uuid.UUID `json:"user_id"`
	DestinationID uuid.UUID `json:"destination_id"`
	GroupID       uuid.UUID `json:"group_id"` // uuid.Nil means the default group
	Label         string    `json:"label"`
}

type AddToPackageOutput struct {
	Membership     *model.PackageMembership `json:"membership"`
	AlreadyPresent bool                     `json:"already_present"`
}

// Add saves a destination into the user's package. A destination already in
// any of the user's groups is a no-op flagged through AlreadyPresent, not an
// error.
func (s *packageService) Add(ctx context.Context, in AddToPackageInput) (*AddToPackageOutput, error) {
	if _, err := s.dests.GetByID(ctx, in.DestinationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}

	if existing, err := s.r.GetMembership(ctx, in.UserID, in.DestinationID); err == nil {
		return &AddToPackageOutput{Membership: existing, AlreadyPresent: true}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	groupID := in.GroupID
	if groupID == uuid.Nil {
		g, err := s.EnsureDefaultGroup(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		groupID = g.ID
	} else {
		g, err := s.r.GetGroup(ctx, groupID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGroupNotFound
			}
			return nil, err
		}
		if g.UserID != in.UserID {
			return nil, ErrNotOwner
		}
	}

	m := &model.PackageMembership{
		UserID:        in.UserID,
		DestinationID: in.DestinationID,
		GroupID:       groupID,
		Label:         in.Label,
	}
	if err := s.r.CreateMembership(ctx, m); err != nil {
		// concurrent duplicate add collapsed by the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, getErr := s.r.GetMembership(ctx, in.UserID, in.DestinationID); getErr == nil {
				return &AddToPackageOutput{Membership: existing, AlreadyPresent: true}, nil
			}
		}
		return nil, err
	}

	return &AddToPackageOutput{Membership: m}, nil
}

// Remove deletes the membership. Removing an absent membership succeeds.
func (s *packageService) Remove(ctx context.Context, userID, destinationID uuid.UUID) error {
	return s.r.DeleteMembership(ctx, userID, destinationID)
}

func (s *packageService) Contains(ctx context.Context, userID, destinationID uuid.UUID) (bool, error) {
	_, err := s.r.GetMembership(ctx, userID, destinationID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (s *packageService) List(ctx context.Context, userID uuid.UUID) ([]model.PackageMembership, error) {
	return s.r.ListMemberships(ctx, userID)
}

func (s *packageService) ListDestinationIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.r.ListDestinationIDs(ctx, userID)
}
