//go:build integration

package repository_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/migrate"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/repository"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/pkg/testutil"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	ctx := context.Background()
	if err := migrate.MigrateShopDB(ctx, db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate shop: %v", err)
	}
	if err := migrate.MigrateIdentityDB(ctx, db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate identity: %v", err)
	}
	return db
}

func newClass(t *testing.T, repo repository.ClassRepo, spots int) *models.ClassOffering {
	t.Helper()
	c := &models.ClassOffering{
		Title:     "Beading Basics",
		Price:     decimal.RequireFromString("25.00"),
		Spots:     spots,
		SpotsLeft: spots,
		Date:      "2030-05-01",
		Time:      "10:00",
		Type:      "workshop",
	}
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("Create class: %v", err)
	}
	return c
}

func TestClassRepo_TryTakeSpotsConcurrent(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewClassRepo(db)
	c := newClass(t, repo, 3)

	var wg sync.WaitGroup
	var taken int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.TryTakeSpots(context.Background(), c.ID, 1)
			if err != nil {
				t.Errorf("TryTakeSpots: %v", err)
				return
			}
			if ok {
				atomic.AddInt32(&taken, 1)
			}
		}()
	}
	wg.Wait()

	if taken != 3 {
		t.Fatalf("Expected 3 successful takes, got %d", taken)
	}
	got, err := repo.GetByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.SpotsLeft != 0 {
		t.Fatalf("Expected spots_left 0, got %d", got.SpotsLeft)
	}
}

func TestClassRepo_ReleaseAndResize(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewClassRepo(db)
	ctx := context.Background()
	c := newClass(t, repo, 10)

	if ok, err := repo.TryTakeSpots(ctx, c.ID, 4); err != nil || !ok {
		t.Fatalf("TryTakeSpots: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.TryTakeSpots(ctx, c.ID, 7); err != nil || ok {
		t.Fatalf("Expected take of 7 to fail, ok=%v err=%v", ok, err)
	}

	// Возврат не поднимает spots_left выше spots
	if _, err := repo.ReleaseSpots(ctx, c.ID, 100); err != nil {
		t.Fatalf("ReleaseSpots: %v", err)
	}
	got, _ := repo.GetByID(ctx, c.ID)
	if got.SpotsLeft != 10 {
		t.Fatalf("Expected spots_left 10, got %d", got.SpotsLeft)
	}

	if _, err := repo.TryTakeSpots(ctx, c.ID, 2); err != nil {
		t.Fatalf("TryTakeSpots: %v", err)
	}
	if _, err := repo.Resize(ctx, c.ID, 12); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	got, _ = repo.GetByID(ctx, c.ID)
	if got.Spots != 12 || got.SpotsLeft != 10 {
		t.Fatalf("Expected 12/10 after resize, got %d/%d", got.Spots, got.SpotsLeft)
	}

	if _, err := repo.Resize(ctx, c.ID, 1); err != nil {
		t.Fatalf("Resize down: %v", err)
	}
	got, _ = repo.GetByID(ctx, c.ID)
	if got.Spots != 1 || got.SpotsLeft != 0 {
		t.Fatalf("Expected 1/0 after shrink, got %d/%d", got.Spots, got.SpotsLeft)
	}

	_, err := repo.Update(ctx, c.ID, map[string]any{"spots_left": 5})
	if !repository.IsCheckViolation(err) {
		t.Fatalf("Expected check violation, got %v", err)
	}
}

func TestProductRepo_StockAndFilters(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewProductRepo(db)
	ctx := context.Background()

	chain := &models.Product{Name: "Silver Chain", Price: decimal.RequireFromString("12.00"), Category: "Chains", Stock: 2, Images: pq.StringArray{}}
	bead := &models.Product{Name: "Glass Bead", Description: "Blue glass", Price: decimal.RequireFromString("0.50"), Category: "Beads", Stock: 0, Images: pq.StringArray{"a.png"}}
	for _, p := range []*models.Product{chain, bead} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create product: %v", err)
		}
	}

	if ok, err := repo.TryTakeStock(ctx, chain.ID, 3); err != nil || ok {
		t.Fatalf("Expected take of 3 to fail, ok=%v err=%v", ok, err)
	}
	if ok, err := repo.TryTakeStock(ctx, chain.ID, 2); err != nil || !ok {
		t.Fatalf("TryTakeStock: ok=%v err=%v", ok, err)
	}
	if _, err := repo.RestoreStock(ctx, chain.ID, 1); err != nil {
		t.Fatalf("RestoreStock: %v", err)
	}

	inStock := true
	list, err := repo.List(ctx, repository.ProductListFilter{InStock: &inStock})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != chain.ID || list[0].Stock != 1 {
		t.Fatalf("Expected only the chain with stock 1, got %+v", list)
	}

	list, err = repo.List(ctx, repository.ProductListFilter{Category: "beads", Query: "BLUE"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != bead.ID || len(list[0].Images) != 1 {
		t.Fatalf("Expected the bead, got %+v", list)
	}

	got, err := repo.BatchGetByIDs(ctx, []uuid.UUID{chain.ID, bead.ID, uuid.New()})
	if err != nil || len(got) != 2 {
		t.Fatalf("BatchGetByIDs: %d rows, err=%v", len(got), err)
	}
}

func TestCategoryRepo_UniqueNameIgnoringCase(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewCategoryRepo(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &models.Category{Name: "Necklaces"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, &models.Category{Name: "necklaces"})
	if !repository.IsUniqueViolation(err) {
		t.Fatalf("Expected unique violation, got %v", err)
	}
	got, err := repo.GetByName(ctx, "NECKLACES")
	if err != nil || got == nil {
		t.Fatalf("GetByName: %v %v", got, err)
	}
}

func TestBookingRepo_OwnerFilterAndTx(t *testing.T) {
	db := setupDB(t)
	repos := repository.New(db)
	ctx := context.Background()
	c := newClass(t, repos.Classes, 5)
	owner := uuid.New()

	err := repos.WithTx(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Classes.TryTakeSpots(ctx, c.ID, 2); err != nil {
			return err
		}
		return tx.Bookings.Create(ctx, &models.Booking{
			ClassID:    c.ID,
			ClassName:  c.Title,
			Customer:   models.Customer{FirstName: "Ann", Email: "Ann@Example.com"},
			CustomerID: &owner,
			Attendees:  2,
			TotalPrice: decimal.RequireFromString("50.00"),
			Status:     models.BookingPending,
		})
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}

	// Откат транзакции возвращает места
	_ = repos.WithTx(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Classes.TryTakeSpots(ctx, c.ID, 1); err != nil {
			return err
		}
		return errors.New("abort")
	})
	got, _ := repos.Classes.GetByID(ctx, c.ID)
	if got.SpotsLeft != 3 {
		t.Fatalf("Expected spots_left 3, got %d", got.SpotsLeft)
	}

	byEmail, err := repos.Bookings.List(ctx, repository.OwnerFilter{Email: "ann@example.com"})
	if err != nil || len(byEmail) != 1 {
		t.Fatalf("List by email: %d, err=%v", len(byEmail), err)
	}
	byID, err := repos.Bookings.List(ctx, repository.OwnerFilter{CustomerID: &owner})
	if err != nil || len(byID) != 1 {
		t.Fatalf("List by id: %d, err=%v", len(byID), err)
	}
	other := uuid.New()
	none, err := repos.Bookings.List(ctx, repository.OwnerFilter{CustomerID: &other})
	if err != nil || len(none) != 0 {
		t.Fatalf("Expected no bookings, got %d, err=%v", len(none), err)
	}

	updated, err := repos.Bookings.Update(ctx, byID[0].ID, map[string]any{"status": string(models.BookingCancelled)})
	if err != nil || updated == nil || updated.Status != models.BookingCancelled {
		t.Fatalf("Update: %+v %v", updated, err)
	}
}

func TestUserRepo_EmailIgnoringCase(t *testing.T) {
	db := setupDB(t)
	ids := repository.NewIdentity(db)
	ctx := context.Background()

	u := &models.User{Email: "owner@shop.test", PasswordHash: "hash"}
	if err := ids.Users.Create(ctx, u); err != nil {
		t.Fatalf("Create user: %v", err)
	}
	if err := ids.Users.Create(ctx, &models.User{Email: "OWNER@shop.test", PasswordHash: "x"}); !repository.IsUniqueViolation(err) {
		t.Fatalf("Expected unique violation, got %v", err)
	}

	exists, err := ids.Users.ExistsByEmail(ctx, "Owner@Shop.Test")
	if err != nil || !exists {
		t.Fatalf("ExistsByEmail: %v %v", exists, err)
	}

	if p, err := ids.Profiles.Get(ctx, u.ID); err != nil || p != nil {
		t.Fatalf("Expected no profile yet, got %+v %v", p, err)
	}
	if err := ids.Profiles.Upsert(ctx, &models.Profile{ID: u.ID, Role: models.RoleCustomer}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := ids.Profiles.SetRole(ctx, u.ID, models.RoleAdmin); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	p, err := ids.Profiles.Get(ctx, u.ID)
	if err != nil || p == nil || p.Role != models.RoleAdmin {
		t.Fatalf("Expected admin profile, got %+v %v", p, err)
	}
}
