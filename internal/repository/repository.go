package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository — набор репозиториев торгового хранилища.
type Repository struct {
	DB              *gorm.DB
	Categories      CategoryRepo
	Products        ProductRepo
	Classes         ClassRepo
	Bookings        BookingRepo
	Orders          OrderRepo
	CustomRequests  CustomRequestRepo
	ContactMessages ContactMessageRepo
	Uploads         UploadRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:              db,
		Categories:      NewCategoryRepo(db),
		Products:        NewProductRepo(db),
		Classes:         NewClassRepo(db),
		Bookings:        NewBookingRepo(db),
		Orders:          NewOrderRepo(db),
		CustomRequests:  NewCustomRequestRepo(db),
		ContactMessages: NewContactMessageRepo(db),
		Uploads:         NewUploadRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// Глобальная транзакция на весь набор репо
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}

// Identity — хранилище учётных записей, может жить в отдельной БД.
type Identity struct {
	DB       *gorm.DB
	Users    UserRepo
	Profiles ProfileRepo
}

func NewIdentity(db *gorm.DB) *Identity {
	return &Identity{
		DB:       db,
		Users:    NewUserRepo(db),
		Profiles: NewProfileRepo(db),
	}
}

func (r *Identity) WithTx(ctx context.Context, fn func(tx *Identity) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewIdentity(tx))
	})
}
