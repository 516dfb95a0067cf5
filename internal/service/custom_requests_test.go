package service_test

import (
	"context"
	"testing"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomRequest_QuoteAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := service.NewCustomRequestService(f.store, f.notifier, zapNop())

	r, err := svc.CreateCustomRequest(ctx, service.CustomRequestInput{
		Customer:       customer("Bride@Example.com"),
		Description:    " Pearl necklace for a wedding ",
		Specifications: map[string]any{"length": "45cm"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.CustomRequestPending, r.Status)
	assert.Equal(t, "Pearl necklace for a wedding", r.Description)
	assert.Equal(t, "bride@example.com", r.Customer.Email)
	assert.False(t, r.Quote.Price.Valid)

	quoted := models.CustomRequestQuoted
	r, err = svc.UpdateCustomRequest(ctx, r.ID, service.CustomRequestPatch{
		Status: &quoted,
		Quote: &service.QuotePatch{
			Price:        decPtr("120"),
			DeliveryTime: ptr("2 weeks"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.CustomRequestQuoted, r.Status)
	require.True(t, r.Quote.Price.Valid)
	assert.Equal(t, "120.00", r.Quote.Price.Decimal.StringFixed(2))
	assert.Equal(t, "2 weeks", r.Quote.DeliveryTime)
	assert.Equal(t, "45cm", r.Specifications.Val["length"])

	// правка без статуса не шлёт письмо
	_, err = svc.UpdateCustomRequest(ctx, r.ID, service.CustomRequestPatch{Quote: &service.QuotePatch{Notes: ptr("gold clasp")}})
	require.NoError(t, err)

	assert.Equal(t, []string{"custom_request.created", "custom_request.status"}, f.notifier.Events())
}

func TestCustomRequest_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := service.NewCustomRequestService(f.store, f.notifier, zapNop())

	bogus := models.CustomRequestStatus("shipped")
	_, err := svc.UpdateCustomRequest(ctx, uuid.New(), service.CustomRequestPatch{Status: &bogus})
	require.ErrorIs(t, err, service.ErrInvalidStatus)

	_, err = svc.UpdateCustomRequest(ctx, uuid.New(), service.CustomRequestPatch{Quote: &service.QuotePatch{Price: decPtr("-5")}})
	require.ErrorIs(t, err, service.ErrInvalidPrice)

	_, err = svc.UpdateCustomRequest(ctx, uuid.New(), service.CustomRequestPatch{Description: ptr("x")})
	require.ErrorIs(t, err, service.ErrCustomRequestNotFound)

	_, err = svc.GetCustomRequest(ctx, uuid.New())
	require.ErrorIs(t, err, service.ErrCustomRequestNotFound)
	require.ErrorIs(t, svc.DeleteCustomRequest(ctx, uuid.New()), service.ErrCustomRequestNotFound)
}

func TestCustomRequest_ListByOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := service.NewCustomRequestService(f.store, f.notifier, zapNop())
	owner := uuid.New()

	_, err := svc.CreateCustomRequest(ctx, service.CustomRequestInput{Customer: customer("a@example.com"), CustomerID: &owner, Description: "ring"})
	require.NoError(t, err)
	_, err = svc.CreateCustomRequest(ctx, service.CustomRequestInput{Customer: customer("b@example.com"), Description: "bracelet"})
	require.NoError(t, err)

	mine, err := svc.ListCustomRequests(ctx, service.OwnerFilter{CustomerID: &owner})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "ring", mine[0].Description)

	all, err := svc.ListCustomRequests(ctx, service.OwnerFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "bracelet", all[0].Description, "newest first")
}
