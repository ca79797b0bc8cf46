package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/config"
	"github.com/voyagevr/api/internal/infra/blob"
	"github.com/voyagevr/api/internal/modules/model"
	"github.com/voyagevr/api/internal/modules/repo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DestinationService interface {
	List(ctx context.Context, filter repo.DestinationFilter) ([]model.Destination, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Destination, error)

	// admin-scoped
	Create(ctx context.Context, in CreateDestinationInput) (*model.Destination, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateDestinationInput) (*model.Destination, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PresignMedia(ctx context.Context, in PresignMediaInput) (*PresignMediaOutput, error)
}

type destinationService struct {
	r   repo.DestinationRepo
	s3  *blob.S3Deps
	cfg *config.Config
}

func NewDestinationService(r repo.DestinationRepo, s3 *blob.S3Deps, cfg *config.Config) DestinationService {
	return &destinationService{r: r, s3: s3, cfg: cfg}
}

func (s *destinationService) List(ctx context.Context, filter repo.DestinationFilter) ([]model.Destination, error) {
	return s.r.List(ctx, filter)
}

func (s *destinationService) Get(ctx context.Context, id uuid.UUID) (*model.Destination, error) {
	d, err := s.r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return d, nil
}

type CreateDestinationInput struct {
	Name        string               `json:"name"`
	Location    string               `json:"location"`
	Description string               `json:"description"`
	ImageURL    string               `json:"image_url"`
	VideoURL    string               `json:"video_url"`
	PanoramaURL string               `json:"panorama_url"`
	Price       float64              `json:"price"`
	Duration    string               `json:"duration"`
	Itinerary   []model.ItineraryDay `json:"itinerary"`
	Inclusions  []string             `json:"inclusions"`
}

func (s *destinationService) Create(ctx context.Context, in CreateDestinationInput) (*model.Destination, error) {
	d := &model.Destination{
		Name:        in.Name,
		Location:    in.Location,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		VideoURL:    in.VideoURL,
		PanoramaURL: in.PanoramaURL,
		Price:       in.Price,
		Duration:    in.Duration,
		Itinerary:   in.Itinerary,
		Inclusions:  in.Inclusions,
	}
	if err := s.r.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateDestinationInput carries a partial update; nil fields are left
// untouched.
type UpdateDestinationInput struct {
	Name        *string               `json:"name"`
	Location    *string               `json:"location"`
	Description *string               `json:"description"`
	ImageURL    *string               `json:"image_url"`
	VideoURL    *string               `json:"video_url"`
	PanoramaURL *string               `json:"panorama_url"`
	Price       *float64              `json:"price"`
	Duration    *string               `json:"duration"`
	Itinerary   *[]model.ItineraryDay `json:"itinerary"`
	Inclusions  *[]string             `json:"inclusions"`
}

func (s *destinationService) Update(ctx context.Context, id uuid.UUID, in UpdateDestinationInput) (*model.Destination, error) {
	patch := map[string]interface{}{}
	if in.Name != nil {
		patch["name"] = *in.Name
	}
	if in.Location != nil {
		patch["location"] = *in.Location
	}
	if in.Description != nil {
		patch["description"] = *in.Description
	}
	if in.ImageURL != nil {
		patch["image_url"] = *in.ImageURL
	}
	if in.VideoURL != nil {
		patch["video_url"] = *in.VideoURL
	}
	if in.PanoramaURL != nil {
		patch["panorama_url"] = *in.PanoramaURL
	}
	if in.Price != nil {
		patch["price"] = *in.Price
	}
	if in.Duration != nil {
		patch["duration"] = *in.Duration
	}
	if in.Itinerary != nil {
		patch["itinerary"] = model.Itinerary(*in.Itinerary)
	}
	if in.Inclusions != nil {
		patch["inclusions"] = datatypes.NewJSONSlice(*in.Inclusions)
	}

	d, err := s.r.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *destinationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDestinationNotFound
		}
		return err
	}
	return nil
}

type PresignMediaInput struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type PresignMediaOutput struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	Key       string `json:"key"`
}

// PresignMedia issues a presigned PUT URL for one destination media object
// (image, video, or panorama). The object key is randomized; the original
// filename only contributes its extension.
func (s *destinationService) PresignMedia(ctx context.Context, in PresignMediaInput) (*PresignMediaOutput, error) {
	if s.s3 == nil {
		return nil, errors.New("media storage is not configured")
	}
	if !strings.HasPrefix(in.ContentType, "image/") && !strings.HasPrefix(in.ContentType, "video/") {
		return nil, fmt.Errorf("unsupported media content type %q", in.ContentType)
	}

	key := s.cfg.S3.MediaPrefix + uuid.NewString() + strings.ToLower(path.Ext(in.Filename))
	expire := time.Duration(s.cfg.S3.PresignExpireSec) * time.Second
	if expire <= 0 {
		expire = 15 * time.Minute
	}

	uploadURL, err := s.s3.PresignPut(ctx, key, in.ContentType, expire)
	if err != nil {
		return nil, err
	}

	return &PresignMediaOutput{
		UploadURL: uploadURL,
		PublicURL: s.s3.PublicURL(key),
		Key:       key,
	}, nil
}
