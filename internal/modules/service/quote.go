package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/config"
	mq "github.com/voyagevr/api/internal/infra/queue"
	"github.com/voyagevr/api/internal/modules/model"
	"github.com/voyagevr/api/internal/modules/repo"
	"github.com/voyagevr/api/internal/pkg/paging"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuoteService interface {
	Request(ctx context.Context, userID uuid.UUID) (*model.QuoteRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.QuoteRequest, error)

	// admin-scoped
	UpdateStatus(ctx context.Context, quoteID uuid.UUID, status string) (*model.QuoteRequest, error)
	ListAll(ctx context.Context, in ListQuotesInput) (*ListQuotesOutput, error)
}

type quoteService struct {
	r         repo.QuoteRepo
	packages  PackageService
	publisher *mq.Publisher
	cfg       *config.Config
	log       *zap.Logger
}

func NewQuoteService(r repo.QuoteRepo, packages PackageService, publisher *mq.Publisher, cfg *config.Config, log *zap.Logger) QuoteService {
	return &quoteService{
		r:         r,
		packages:  packages,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

// QuoteEvent is published to the events exchange on quote transitions.
type QuoteEvent struct {
	Event   string    `json:"event"`
	QuoteID uuid.UUID `json:"quote_id"`
	UserID  uuid.UUID `json:"user_id"`
	Status  string    `json:"status"`
}

// Request snapshots the user's current package destinations into a pending
// quote request. Fails with ErrEmptyPackage when the package holds nothing.
func (s *quoteService) Request(ctx context.Context, userID uuid.UUID) (*model.QuoteRequest, error) {
	ids, err := s.packages.ListDestinationIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrEmptyPackage
	}

	q := &model.QuoteRequest{
		UserID:         userID,
		DestinationIDs: datatypes.NewJSONSlice(ids),
		Status:         model.QuoteStatusPending,
	}
	if err := s.r.Create(ctx, q); err != nil {
		return nil, err
	}

	s.publish(ctx, QuoteEvent{Event: "quote.created", QuoteID: q.ID, UserID: q.UserID, Status: q.Status})
	return q, nil
}

func (s *quoteService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.QuoteRequest, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *quoteService) UpdateStatus(ctx context.Context, quoteID uuid.UUID, status string) (*model.QuoteRequest, error) {
	updated, err := s.r.UpdateStatus(ctx, quoteID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}

	s.publish(ctx, QuoteEvent{Event: "quote.status_changed", QuoteID: updated.ID, UserID: updated.UserID, Status: updated.Status})
	return updated, nil
}

type ListQuotesInput struct {
	Limit    int    `json:"limit"`
	Cursor   string `json:"cursor"`
	TimeDesc bool   `json:"time_desc"`
}

type ListQuotesOutput struct {
	Items      []model.QuoteRequest `json:"items"`
	NextCursor string               `json:"next_cursor,omitempty"`
	HasMore    bool                 `json:"has_more"`
}

func (s *quoteService) ListAll(ctx context.Context, in ListQuotesInput) (*ListQuotesOutput, error) {
	var afterT time.Time
	var afterID uuid.UUID
	var err error
	if in.Cursor != "" {
		afterT, afterID, err = paging.DecodeCursor(in.Cursor)
		if err != nil {
			return nil, err
		}
	}

	quotes, err := s.r.List(ctx, afterT, afterID, in.Limit+1, in.TimeDesc)
	if err != nil {
		return nil, err
	}

	out := &ListQuotesOutput{
		Items:   quotes,
		HasMore: false,
	}
	if len(quotes) > in.Limit {
		out.HasMore = true
		out.Items = quotes[:in.Limit]
		last := out.Items[len(out.Items)-1]
		out.NextCursor = paging.EncodeCursor(last.CreatedAt, last.ID)
	}

	return out, nil
}

func (s *quoteService) publish(ctx context.Context, ev QuoteEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishJSON(ctx, s.cfg.RabbitMQ.ExchangeName, s.cfg.RabbitMQ.RoutingKey.QuoteEvents, ev); err != nil {
		s.log.Error("failed to publish quote event", zap.Error(err), zap.String("event", ev.Event), zap.String("quote_id", ev.QuoteID.String()))
	}
}
