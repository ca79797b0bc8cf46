package service

import (
	"context"
	"errors"

	"github.com/voyagevr/api/internal/modules/model"
	"github.com/voyagevr/api/internal/modules/repo"
	"gorm.io/gorm"
)

// AdminService owns the persisted admin allow-list. The list is the source
// of truth for admin privileges; per-user flags elsewhere are convenience
// only.
type AdminService interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
	Grant(ctx context.Context, email string) (*model.AdminEmail, error)
	Revoke(ctx context.Context, email string) error
	List(ctx context.Context) ([]model.AdminEmail, error)
}

type adminService struct {
	r repo.AdminRepo
}

func NewAdminService(r repo.AdminRepo) AdminService {
	return &adminService{r: r}
}

func (s *adminService) IsAdmin(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	return s.r.Exists(ctx, email)
}

// Grant adds an email to the allow-list. Granting an existing entry is
// idempotent.
func (s *adminService) Grant(ctx context.Context, email string) (*model.AdminEmail, error) {
	if existing, err := s.r.GetByEmail(ctx, email); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entry := &model.AdminEmail{Email: email}
	if err := s.r.Create(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.r.GetByEmail(ctx, email)
		}
		return nil, err
	}
	return entry, nil
}

// Revoke removes an email from the allow-list. The protected bootstrap entry
// cannot be revoked; revoking an absent entry succeeds.
func (s *adminService) Revoke(ctx context.Context, email string) error {
	entry, err := s.r.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if entry.Protected {
		return ErrProtectedAdmin
	}
	return s.r.DeleteByEmail(ctx, email)
}

func (s *adminService) List(ctx context.Context) ([]model.AdminEmail, error) {
	return s.r.List(ctx)
}
