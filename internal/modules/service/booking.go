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
	"github.com/voyagevr/api/internal/pkg/userlock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BookingService interface {
	Create(ctx context.Context, in CreateBookingInput) (*model.VRBooking, error)
	Cancel(ctx context.Context, userID, bookingID uuid.UUID) (*model.VRBooking, error)
	HasActive(ctx context.Context, userID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.VRBooking, error)

	// admin-scoped
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status string) (*model.VRBooking, error)
	ListAll(ctx context.Context, in ListBookingsInput) (*ListBookingsOutput, error)
}

type bookingService struct {
	r         repo.BookingRepo
	locks     *userlock.Locker
	publisher *mq.Publisher
	cfg       *config.Config
	log       *zap.Logger
}

func NewBookingService(r repo.BookingRepo, locks *userlock.Locker, publisher *mq.Publisher, cfg *config.Config, log *zap.Logger) BookingService {
	return &bookingService{
		r:         r,
		locks:     locks,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

type CreateBookingInput struct {
	UserID   uuid.UUID `json:"user_id"`
	Date     time.Time `json:"date"`
	TimeSlot string    `json:"time_slot"`
	Address  string    `json:"address"`
	Notes    string    `json:"notes"`
}

// BookingEvent is published to the events exchange on booking transitions.
type BookingEvent struct {
	Event     string    `json:"event"`
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	Status    string    `json:"status"`
}

// Create inserts a new booking for the user. Self-service bookings start as
// confirmed: there is no approval step in the consumer flow. Fails with
// ErrActiveBookingExists while the user holds a non-terminal booking.
//
// The check-then-insert runs under a per-user lock, and the partial unique
// index on active bookings catches whatever slips through it.
func (s *bookingService) Create(ctx context.Context, in CreateBookingInput) (*model.VRBooking, error) {
	if s.locks != nil {
		release, err := s.locks.Acquire(ctx, in.UserID)
		switch {
		case err == nil:
			defer release()
		case errors.Is(err, userlock.ErrLocked):
			return nil, ErrBookingInProgress
		default:
			// lock service unavailable; the unique index still holds the
			// invariant, so proceed
			s.log.Warn("booking lock unavailable", zap.Error(err), zap.String("user_id", in.UserID.String()))
		}
	}

	count, err := s.r.CountActive(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrActiveBookingExists
	}

	b := &model.VRBooking{
		UserID:   in.UserID,
		Date:     in.Date,
		TimeSlot: in.TimeSlot,
		Address:  in.Address,
		Notes:    in.Notes,
		Status:   model.BookingStatusConfirmed,
	}
	if err := s.r.Create(ctx, b); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrActiveBookingExists
		}
		return nil, err
	}

	s.publish(ctx, BookingEvent{Event: "booking.created", BookingID: b.ID, UserID: b.UserID, Status: b.Status})
	return b, nil
}

// Cancel moves the caller's booking to cancelled. Cancelling a booking that
// is already terminal is a no-op.
func (s *bookingService) Cancel(ctx context.Context, userID, bookingID uuid.UUID) (*model.VRBooking, error) {
	b, err := s.r.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if b.UserID != userID {
		return nil, ErrNotOwner
	}

	if b.Terminal() {
		return b, nil
	}

	updated, err := s.r.UpdateStatus(ctx, bookingID, model.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, BookingEvent{Event: "booking.cancelled", BookingID: updated.ID, UserID: updated.UserID, Status: updated.Status})
	return updated, nil
}

func (s *bookingService) HasActive(ctx context.Context, userID uuid.UUID) (bool, error) {
	count, err := s.r.CountActive(ctx, userID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *bookingService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.VRBooking, error) {
	return s.r.ListByUser(ctx, userID)
}

// UpdateStatus sets any status without an ownership check. Admin only; the
// router gates it behind the allow-list.
func (s *bookingService) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status string) (*model.VRBooking, error) {
	updated, err := s.r.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	s.publish(ctx, BookingEvent{Event: "booking.status_changed", BookingID: updated.ID, UserID: updated.UserID, Status: updated.Status})
	return updated, nil
}

type ListBookingsInput struct {
	Limit    int    `json:"limit"`
	Cursor   string `json:"cursor"`
	TimeDesc bool   `json:"time_desc"`
}

type ListBookingsOutput struct {
	Items      []model.VRBooking `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
	HasMore    bool              `json:"has_more"`
}

func (s *bookingService) ListAll(ctx context.Context, in ListBookingsInput) (*ListBookingsOutput, error) {
	var afterT time.Time
	var afterID uuid.UUID
	var err error
	if in.Cursor != "" {
		afterT, afterID, err = paging.DecodeCursor(in.Cursor)
		if err != nil {
			return nil, err
		}
	}

	bookings, err := s.r.List(ctx, afterT, afterID, in.Limit+1, in.TimeDesc)
	if err != nil {
		return nil, err
	}

	out := &ListBookingsOutput{
		Items:   bookings,
		HasMore: false,
	}
	if len(bookings) > in.Limit {
		out.HasMore = true
		out.Items = bookings[:in.Limit]
		last := out.Items[len(out.Items)-1]
		out.NextCursor = paging.EncodeCursor(last.CreatedAt, last.ID)
	}

	return out, nil
}

// publish is fire-and-forget; a broker outage never fails the request.
func (s *bookingService) publish(ctx context.Context, ev BookingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishJSON(ctx, s.cfg.RabbitMQ.ExchangeName, s.cfg.RabbitMQ.RoutingKey.BookingEvents, ev); err != nil {
		s.log.Error("failed to publish booking event", zap.Error(err), zap.String("event", ev.Event), zap.String("booking_id", ev.BookingID.String()))
	}
}
