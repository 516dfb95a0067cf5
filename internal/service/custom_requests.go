package service

import (
	"context"
	"strings"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CustomRequestInput struct {
	Customer       CustomerInput
	CustomerID     *uuid.UUID
	Description    string
	Specifications map[string]any
	Images         []string
}

type QuotePatch struct {
	Price        *decimal.Decimal
	DeliveryTime *string
	Notes        *string
}

type CustomRequestPatch struct {
	Status         *models.CustomRequestStatus
	Description    *string
	Specifications map[string]any // nil — не менять
	Images         []string
	Quote          *QuotePatch
}

type CustomRequestService struct {
	store    Store
	notifier Notifier
	log      *zap.Logger
}

func NewCustomRequestService(store Store, notifier Notifier, log *zap.Logger) *CustomRequestService {
	return &CustomRequestService{store: store, notifier: notifier, log: log}
}

func (s *CustomRequestService) CreateCustomRequest(ctx context.Context, in CustomRequestInput) (*models.CustomRequest, error) {
	if err := requireText("description", in.Description); err != nil {
		return nil, err
	}
	r := &models.CustomRequest{
		Customer:       in.Customer.model(),
		CustomerID:     in.CustomerID,
		Description:    strings.TrimSpace(in.Description),
		Specifications: models.NewJSONB(in.Specifications),
		Images:         pq.StringArray(cleanList(in.Images)),
		Status:         models.CustomRequestPending,
	}
	if err := s.store.Repos().CustomRequests.Create(ctx, r); err != nil {
		return nil, err
	}

	s.log.Info("custom request created", zap.String("request_id", r.ID.String()))
	s.notifier.CustomRequestCreated(ctx, r)
	return r, nil
}

func (s *CustomRequestService) ListCustomRequests(ctx context.Context, f OwnerFilter) ([]models.CustomRequest, error) {
	return s.store.Repos().CustomRequests.List(ctx, f)
}

func (s *CustomRequestService) GetCustomRequest(ctx context.Context, id uuid.UUID) (*models.CustomRequest, error) {
	r, err := s.store.Repos().CustomRequests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrCustomRequestNotFound
	}
	return r, nil
}

func (s *CustomRequestService) UpdateCustomRequest(ctx context.Context, id uuid.UUID, patch CustomRequestPatch) (*models.CustomRequest, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := requireTextPatch("description", patch.Description); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	setTrimmed(fields, "description", patch.Description)
	if patch.Specifications != nil {
		fields["specifications"] = models.NewJSONB(patch.Specifications)
	}
	if patch.Images != nil {
		fields["images"] = pq.StringArray(cleanList(patch.Images))
	}
	if q := patch.Quote; q != nil {
		if q.Price != nil {
			if q.Price.IsNegative() {
				return nil, ErrInvalidPrice
			}
			fields["quote_price"] = decimal.NewNullDecimal(q.Price.Round(2))
		}
		setTrimmed(fields, "quote_delivery_time", q.DeliveryTime)
		setTrimmed(fields, "quote_notes", q.Notes)
	}

	var (
		out     *models.CustomRequest
		changed bool
	)
	err := s.store.WithTx(ctx, func(tx Repos) error {
		cur, err := tx.CustomRequests.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrCustomRequestNotFound
		}
		if patch.Status != nil && *patch.Status != cur.Status {
			fields["status"] = string(*patch.Status)
			changed = true
		}

		r, err := tx.CustomRequests.Update(ctx, id, fields)
		if err != nil {
			return err
		}
		if r == nil {
			return ErrCustomRequestNotFound
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.notifier.CustomRequestStatusChanged(ctx, out)
	}
	return out, nil
}

func (s *CustomRequestService) DeleteCustomRequest(ctx context.Context, id uuid.UUID) error {
	ok, err := s.store.Repos().CustomRequests.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCustomRequestNotFound
	}
	return nil
}
