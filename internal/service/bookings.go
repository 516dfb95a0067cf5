package service

import (
	"context"
	"strings"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// допуск на округление при сверке суммы, присланной клиентом
var totalTolerance = decimal.NewFromFloat(0.01)

type CustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (c CustomerInput) model() models.Customer {
	return models.Customer{
		FirstName: strings.TrimSpace(c.FirstName),
		LastName:  strings.TrimSpace(c.LastName),
		Email:     strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:     strings.TrimSpace(c.Phone),
	}
}

type BookingInput struct {
	ClassID    uuid.UUID
	Customer   CustomerInput
	CustomerID *uuid.UUID // уже сверен с токеном
	Attendees  int
	TotalPrice *decimal.Decimal
	Notes      string
}

type BookingPatch struct {
	Status   *models.BookingStatus
	Notes    *string
	Date     *string
	Time     *string
	Customer *CustomerInput
}

type BookingService struct {
	store    Store
	notifier Notifier
	log      *zap.Logger
}

func NewBookingService(store Store, notifier Notifier, log *zap.Logger) *BookingService {
	return &BookingService{store: store, notifier: notifier, log: log}
}

func totalsMatch(client, server decimal.Decimal) bool {
	return client.Sub(server).Abs().LessThanOrEqual(totalTolerance)
}

// CreateBooking списывает места условным UPDATE и вставляет бронь в одной транзакции.
func (s *BookingService) CreateBooking(ctx context.Context, in BookingInput) (*models.Booking, error) {
	attendees := in.Attendees
	if attendees <= 0 {
		attendees = 1
	}

	var b *models.Booking
	err := s.store.WithTx(ctx, func(tx Repos) error {
		class, err := tx.Classes.GetByID(ctx, in.ClassID)
		if err != nil {
			return err
		}
		if class == nil {
			return ErrClassNotFound
		}

		total := class.Price.Mul(decimal.NewFromInt(int64(attendees))).Round(2)
		if in.TotalPrice != nil && !totalsMatch(*in.TotalPrice, total) {
			return ErrTotalMismatch
		}

		ok, err := tx.Classes.TryTakeSpots(ctx, class.ID, attendees)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotEnoughSpots
		}

		b = &models.Booking{
			ClassID:    class.ID,
			ClassName:  class.Title,
			Customer:   in.Customer.model(),
			CustomerID: in.CustomerID,
			Date:       class.Date,
			Time:       class.Time,
			Attendees:  attendees,
			TotalPrice: total,
			Status:     models.BookingPending,
			Notes:      strings.TrimSpace(in.Notes),
		}
		return tx.Bookings.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		zap.String("booking_id", b.ID.String()),
		zap.String("class_id", b.ClassID.String()),
		zap.Int("attendees", b.Attendees),
	)
	s.notifier.BookingCreated(ctx, b)
	return b, nil
}

func (s *BookingService) ListBookings(ctx context.Context, f OwnerFilter) ([]models.Booking, error) {
	return s.store.Repos().Bookings.List(ctx, f)
}

func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, err := s.store.Repos().Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// UpdateBooking: отмена возвращает места в класс, любой переход из отмены снова их занимает.
func (s *BookingService) UpdateBooking(ctx context.Context, id uuid.UUID, patch BookingPatch) (*models.Booking, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	fields := map[string]any{}
	setTrimmed(fields, "notes", patch.Notes)
	setTrimmed(fields, "time", patch.Time)
	if patch.Date != nil {
		if !validDate(*patch.Date) {
			return nil, ErrInvalidDate
		}
		fields["date"] = *patch.Date
	}
	if patch.Customer != nil {
		setCustomer(fields, patch.Customer.model())
	}

	var (
		out     *models.Booking
		changed bool
	)
	err := s.store.WithTx(ctx, func(tx Repos) error {
		cur, err := tx.Bookings.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrBookingNotFound
		}

		if patch.Status != nil && *patch.Status != cur.Status {
			next := *patch.Status
			switch {
			case cur.Status.HoldsSpots() && next == models.BookingCancelled:
				if _, err := tx.Classes.ReleaseSpots(ctx, cur.ClassID, cur.Attendees); err != nil {
					return err
				}
			case cur.Status == models.BookingCancelled:
				// выход из отмены, в том числе сразу в completed, снова занимает места
				ok, err := tx.Classes.TryTakeSpots(ctx, cur.ClassID, cur.Attendees)
				if err != nil {
					return err
				}
				if !ok {
					return ErrNotEnoughSpots
				}
			}
			fields["status"] = string(next)
			changed = true
		}

		b, err := tx.Bookings.Update(ctx, id, fields)
		if err != nil {
			return err
		}
		if b == nil {
			return ErrBookingNotFound
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.notifier.BookingStatusChanged(ctx, out)
	}
	return out, nil
}

// DeleteBooking удаляет бронь; если она занимала места, они возвращаются.
func (s *BookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	return s.store.WithTx(ctx, func(tx Repos) error {
		cur, err := tx.Bookings.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrBookingNotFound
		}
		if cur.Status.HoldsSpots() {
			if _, err := tx.Classes.ReleaseSpots(ctx, cur.ClassID, cur.Attendees); err != nil {
				return err
			}
		}
		ok, err := tx.Bookings.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrBookingNotFound
		}
		return nil
	})
}

func setCustomer(fields map[string]any, c models.Customer) {
	if c.FirstName != "" {
		fields["customer_first_name"] = c.FirstName
	}
	if c.LastName != "" {
		fields["customer_last_name"] = c.LastName
	}
	if c.Email != "" {
		fields["customer_email"] = c.Email
	}
	if c.Phone != "" {
		fields["customer_phone"] = c.Phone
	}
}
