package service_test

import (
	"context"
	"testing"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service/memstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func ptr[T any](v T) *T { return &v }

func zapNop() *zap.Logger { return zap.NewNop() }

type fixture struct {
	store    *memstore.Store
	notifier *memstore.Recorder
	catalog  *service.CatalogService
	bookings *service.BookingService
	orders   *service.OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	rec := &memstore.Recorder{}
	log := zapNop()
	return &fixture{
		store:    store,
		notifier: rec,
		catalog:  service.NewCatalogService(store, log),
		bookings: service.NewBookingService(store, rec, log),
		orders: service.NewOrderService(store, rec, map[string]decimal.Decimal{
			"standard": dec("5.00"),
			"pickup":   decimal.Zero,
		}, log),
	}
}

func (f *fixture) class(t *testing.T, price string, spots int) *models.ClassOffering {
	t.Helper()
	c, err := f.catalog.CreateClass(context.Background(), service.ClassInput{
		Title: "Beading Basics",
		Price: dec(price),
		Spots: spots,
		Date:  "2030-05-01",
		Time:  "10:00",
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, name, price string, stock int) *models.Product {
	t.Helper()
	p, err := f.catalog.CreateProduct(context.Background(), service.ProductInput{
		Name:  name,
		Price: dec(price),
		Stock: stock,
	})
	require.NoError(t, err)
	return p
}

func customer(email string) service.CustomerInput {
	return service.CustomerInput{FirstName: "Ann", LastName: "Lee", Email: email}
}
