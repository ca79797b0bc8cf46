package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/identity"
	"github.com/voyagevr/api/internal/modules/model"
	"github.com/voyagevr/api/internal/modules/repo"
	"github.com/voyagevr/api/internal/pkg/paging"
	"gorm.io/gorm"
)

type UserService interface {
	Provision(ctx context.Context, p *identity.Principal) (*model.User, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (*model.User, error)

	// admin-scoped
	List(ctx context.Context, in ListUsersInput) (*ListUsersOutput, error)
}

type userService struct {
	r      repo.UserRepo
	admins AdminService
}

func NewUserService(r repo.UserRepo, admins AdminService) UserService {
	return &userService{r: r, admins: admins}
}

// Provision maps an identity-provider principal to the local user row,
// creating it on first sight.
func (s *userService) Provision(ctx context.Context, p *identity.Principal) (*model.User, error) {
	if p == nil || p.ID == uuid.Nil {
		return nil, errors.New("principal is empty")
	}
	return s.r.GetOrCreate(ctx, &model.User{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		PhotoURL:    p.PhotoURL,
	})
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

type UpdateProfileInput struct {
	DisplayName *string `json:"display_name"`
	PhotoURL    *string `json:"photo_url"`
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (*model.User, error) {
	patch := map[string]interface{}{}
	if in.DisplayName != nil {
		patch["display_name"] = *in.DisplayName
	}
	if in.PhotoURL != nil {
		patch["photo_url"] = *in.PhotoURL
	}

	u, err := s.r.UpdateProfile(ctx, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

type ListUsersInput struct {
	Limit    int    `json:"limit"`
	Cursor   string `json:"cursor"`
	TimeDesc bool   `json:"time_desc"`
}

// UserListItem decorates a user with the derived admin flag for admin views.
type UserListItem struct {
	model.User
	IsAdmin bool `json:"is_admin"`
}

type ListUsersOutput struct {
	Items      []UserListItem `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
	HasMore    bool           `json:"has_more"`
}

func (s *userService) List(ctx context.Context, in ListUsersInput) (*ListUsersOutput, error) {
	var afterT time.Time
	var afterID uuid.UUID
	var err error
	if in.Cursor != "" {
		afterT, afterID, err = paging.DecodeCursor(in.Cursor)
		if err != nil {
			return nil, err
		}
	}

	users, err := s.r.List(ctx, afterT, afterID, in.Limit+1, in.TimeDesc)
	if err != nil {
		return nil, err
	}

	// one allow-list fetch instead of a lookup per row
	adminEmails := map[string]bool{}
	if entries, err := s.admins.List(ctx); err == nil {
		for _, e := range entries {
			adminEmails[e.Email] = true
		}
	}

	out := &ListUsersOutput{HasMore: false}
	page := users
	if in.Limit > 0 && len(users) > in.Limit {
		out.HasMore = true
		page = users[:in.Limit]
	}
	for _, u := range page {
		out.Items = append(out.Items, UserListItem{User: *u, IsAdmin: adminEmails[u.Email]})
	}
	if out.HasMore {
		last := page[len(page)-1]
		out.NextCursor = paging.EncodeCursor(last.CreatedAt, last.ID)
	}

	return out, nil
}
