package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"type:text;not null"` // уникальность через индекс lower(name)
	Description string    `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string              `gorm:"type:text;not null"`
	Description   string              `gorm:"type:text"`
	Price         decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	OriginalPrice decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	Category      string              `gorm:"type:text;index"`
	Material      string              `gorm:"type:text"`
	Color         string              `gorm:"type:text"`
	Size          string              `gorm:"type:text"`
	Quantity      string              `gorm:"type:text"` // фасовка, например "50 шт."
	Stock         int                 `gorm:"not null;default:0"`
	Images        pq.StringArray      `gorm:"type:text[];not null;default:'{}'"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Product) TableName() string { return "products" }

// InStock выводится из остатка, отдельного флага в БД нет.
func (p Product) InStock() bool { return p.Stock > 0 }

type ClassOffering struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string          `gorm:"type:text;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Spots       int             `gorm:"not null;default:0"`
	SpotsLeft   int             `gorm:"not null;default:0"`
	Date        string          `gorm:"type:text;index"` // YYYY-MM-DD
	Time        string          `gorm:"type:text"`
	Duration    string          `gorm:"type:text"`
	Type        string          `gorm:"type:text;not null;default:'workshop'"`
	Image       string          `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (ClassOffering) TableName() string { return "classes" }

// Customer — контактные данные покупателя, хранятся плоскими колонками customer_*.
type Customer struct {
	FirstName string `gorm:"type:text"`
	LastName  string `gorm:"type:text"`
	Email     string `gorm:"type:text;not null;index"`
	Phone     string `gorm:"type:text"`
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// HoldsSpots: занимает ли бронь места в классе.
func (s BookingStatus) HoldsSpots() bool {
	return s == BookingPending || s == BookingConfirmed
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClassID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClassName  string          `gorm:"type:text;not null"`
	Customer   Customer        `gorm:"embedded;embeddedPrefix:customer_"`
	CustomerID *uuid.UUID      `gorm:"type:uuid;index"` // без FK: пользователи живут в другом хранилище
	Date       string          `gorm:"type:text"`
	Time       string          `gorm:"type:text"`
	Attendees  int             `gorm:"not null;default:1"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Status     BookingStatus   `gorm:"type:text;not null;default:'pending';index"`
	Notes      string          `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Booking) TableName() string { return "bookings" }

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// InWarehouse — товар ещё не отгружен, при удалении заказа остаток возвращается.
func (s OrderStatus) InWarehouse() bool {
	return s == OrderPending || s == OrderConfirmed || s == OrderProcessing
}

type OrderItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

type Order struct {
	ID              uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string             `gorm:"type:text;not null;uniqueIndex"`
	Customer        Customer           `gorm:"embedded;embeddedPrefix:customer_"`
	CustomerID      *uuid.UUID         `gorm:"type:uuid;index"`
	Items           JSONB[[]OrderItem] `gorm:"type:jsonb;not null"`
	Subtotal        decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0"`
	ShippingCost    decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0"`
	Total           decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0"`
	Status          OrderStatus        `gorm:"type:text;not null;default:'pending';index"`
	ShippingMethod  string             `gorm:"type:text;not null;default:'standard'"`
	ShippingAddress JSONB[*Address]    `gorm:"type:jsonb"`
	PaymentMethod   string             `gorm:"type:text;not null;default:'card'"`
	Notes           string             `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Order) TableName() string { return "orders" }

type CustomRequestStatus string

const (
	CustomRequestPending      CustomRequestStatus = "pending"
	CustomRequestReviewing    CustomRequestStatus = "reviewing"
	CustomRequestQuoted       CustomRequestStatus = "quoted"
	CustomRequestApproved     CustomRequestStatus = "approved"
	CustomRequestInProduction CustomRequestStatus = "in_production"
	CustomRequestCompleted    CustomRequestStatus = "completed"
	CustomRequestCancelled    CustomRequestStatus = "cancelled"
)

func (s CustomRequestStatus) Valid() bool {
	switch s {
	case CustomRequestPending, CustomRequestReviewing, CustomRequestQuoted, CustomRequestApproved,
		CustomRequestInProduction, CustomRequestCompleted, CustomRequestCancelled:
		return true
	}
	return false
}

type Quote struct {
	Price        decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	DeliveryTime string              `gorm:"type:text"`
	Notes        string              `gorm:"type:text"`
}

type CustomRequest struct {
	ID             uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Customer       Customer              `gorm:"embedded;embeddedPrefix:customer_"`
	CustomerID     *uuid.UUID            `gorm:"type:uuid;index"`
	Description    string                `gorm:"type:text;not null"`
	Specifications JSONB[map[string]any] `gorm:"type:jsonb"`
	Images         pq.StringArray        `gorm:"type:text[];not null;default:'{}'"`
	Status         CustomRequestStatus   `gorm:"type:text;not null;default:'pending';index"`
	Quote          Quote                 `gorm:"embedded;embeddedPrefix:quote_"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (CustomRequest) TableName() string { return "custom_requests" }

type ContactMessage struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name    string    `gorm:"type:text;not null"`
	Email   string    `gorm:"type:text;not null;index"`
	Subject string    `gorm:"type:text"`
	Message string    `gorm:"type:text;not null"`
	IsRead  bool      `gorm:"not null;default:false;index"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (ContactMessage) TableName() string { return "contact_messages" }

// Upload — загруженный файл (картинка товара, эскиз для заказа).
type Upload struct {
	Name        string    `gorm:"type:text;primaryKey"`
	ContentType string    `gorm:"type:text;not null"`
	Size        int64     `gorm:"not null"`
	Data        []byte    `gorm:"type:bytea;not null"`
	CreatedAt   time.Time `gorm:"not null;default:now()"`
}

func (Upload) TableName() string { return "uploads" }
