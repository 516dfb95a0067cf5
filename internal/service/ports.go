package service

import (
	"context"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/producer"
	repo "github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/repository"
)

// Репозиторные интерфейсы переиспользуются как есть, чтобы *repository.Repository
// подходил без адаптеров, а тесты подставляли свои реализации.
type (
	CategoryRepo       = repo.CategoryRepo
	ProductRepo        = repo.ProductRepo
	ClassRepo          = repo.ClassRepo
	BookingRepo        = repo.BookingRepo
	OrderRepo          = repo.OrderRepo
	CustomRequestRepo  = repo.CustomRequestRepo
	ContactMessageRepo = repo.ContactMessageRepo
	UploadRepo         = repo.UploadRepo

	ProductListFilter    = repo.ProductListFilter
	ClassListFilter      = repo.ClassListFilter
	OwnerFilter          = repo.OwnerFilter
	ContactMessageFilter = repo.ContactMessageFilter
)

type Repos struct {
	Categories      CategoryRepo
	Products        ProductRepo
	Classes         ClassRepo
	Bookings        BookingRepo
	Orders          OrderRepo
	CustomRequests  CustomRequestRepo
	ContactMessages ContactMessageRepo
	Uploads         UploadRepo
}

// Store даёт доступ к репозиториям вне и внутри транзакции.
type Store interface {
	Repos() Repos
	WithTx(ctx context.Context, fn func(tx Repos) error) error
}

type EmailProducer interface {
	SendEmail(ctx context.Context, key string, msg producer.EmailMessage) error
}

type Notifier interface {
	BookingCreated(ctx context.Context, b *models.Booking)
	BookingStatusChanged(ctx context.Context, b *models.Booking)
	OrderCreated(ctx context.Context, o *models.Order)
	OrderStatusChanged(ctx context.Context, o *models.Order)
	CustomRequestCreated(ctx context.Context, r *models.CustomRequest)
	CustomRequestStatusChanged(ctx context.Context, r *models.CustomRequest)
	ContactMessageReceived(ctx context.Context, m *models.ContactMessage)
}
