package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/auth-go"
	"github.com/voyagevr/api/internal/config"
)

// ErrInvalidToken means the access token was rejected by the identity
// provider.
var ErrInvalidToken = errors.New("invalid access token")

// Principal is the authenticated caller as reported by the identity
// provider. The lifecycle service reads identity and never mutates
// authentication state.
type Principal struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	PhotoURL    string
}

// Provider resolves access tokens into principals.
type Provider interface {
	Resolve(ctx context.Context, accessToken string) (*Principal, error)
}

type supabaseProvider struct {
	client auth.Client
}

// NewSupabase builds a Provider backed by a Supabase auth server. AuthURL
// overrides the project-reference URL for self-hosted deployments.
func NewSupabase(cfg *config.Config) Provider {
	c := auth.New(cfg.Supabase.ProjectRef, cfg.Supabase.AnonKey)
	if cfg.Supabase.AuthURL != "" {
		c = c.WithCustomAuthURL(cfg.Supabase.AuthURL)
	}
	return &supabaseProvider{client: c}
}

func (p *supabaseProvider) Resolve(_ context.Context, accessToken string) (*Principal, error) {
	u, err := p.client.WithToken(accessToken).GetUser()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	pr := &Principal{
		ID:    u.ID,
		Email: u.Email,
	}
	if name, ok := u.UserMetadata["full_name"].(string); ok {
		pr.DisplayName = name
	} else if name, ok := u.UserMetadata["name"].(string); ok {
		pr.DisplayName = name
	}
	if photo, ok := u.UserMetadata["avatar_url"].(string); ok {
		pr.PhotoURL = photo
	}
	return pr, nil
}
