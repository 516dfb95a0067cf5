package dto

import (
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
}

func (c CustomerDTO) input() service.CustomerInput {
	return service.CustomerInput{FirstName: c.FirstName, LastName: c.LastName, Email: c.Email, Phone: c.Phone}
}

func newCustomerDTO(c models.Customer) CustomerDTO {
	return CustomerDTO{FirstName: c.FirstName, LastName: c.LastName, Email: c.Email, Phone: c.Phone}
}

// CustomerPatchDTO: пустые поля не трогаются.
type CustomerPatchDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
}

func (c *CustomerPatchDTO) input() *service.CustomerInput {
	if c == nil {
		return nil
	}
	return &service.CustomerInput{FirstName: c.FirstName, LastName: c.LastName, Email: c.Email, Phone: c.Phone}
}

// ---- bookings ----

// CreateBookingRequest: className/date/time клиента игнорируются, они копируются из занятия.
type CreateBookingRequest struct {
	ClassID    uuid.UUID        `json:"classId" binding:"required"`
	ClassName  string           `json:"className"`
	Customer   *CustomerDTO     `json:"customer" binding:"required"`
	CustomerID *uuid.UUID       `json:"customerId"`
	Date       string           `json:"date"`
	Time       string           `json:"time"`
	Attendees  int              `json:"attendees" binding:"min=0,max=100"`
	TotalPrice *decimal.Decimal `json:"totalPrice"`
	Notes      string           `json:"notes"`
}

func (CreateBookingRequest) RequiredMessage() string { return "Class ID and customer are required" }

func (r CreateBookingRequest) Input(customerID *uuid.UUID) service.BookingInput {
	return service.BookingInput{
		ClassID:    r.ClassID,
		Customer:   r.Customer.input(),
		CustomerID: customerID,
		Attendees:  r.Attendees,
		TotalPrice: r.TotalPrice,
		Notes:      r.Notes,
	}
}

type UpdateBookingRequest struct {
	Status   *string           `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	Notes    *string           `json:"notes"`
	Date     *string           `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time     *string           `json:"time"`
	Customer *CustomerPatchDTO `json:"customer"`
}

func (r UpdateBookingRequest) Patch() service.BookingPatch {
	p := service.BookingPatch{Notes: r.Notes, Date: r.Date, Time: r.Time, Customer: r.Customer.input()}
	if r.Status != nil {
		st := models.BookingStatus(*r.Status)
		p.Status = &st
	}
	return p
}

type BookingResponse struct {
	ID         uuid.UUID   `json:"id"`
	ClassID    uuid.UUID   `json:"classId"`
	ClassName  string      `json:"className"`
	Customer   CustomerDTO `json:"customer"`
	CustomerID *uuid.UUID  `json:"customerId"`
	Date       string      `json:"date"`
	Time       string      `json:"time"`
	Attendees  int         `json:"attendees"`
	TotalPrice float64     `json:"totalPrice"`
	Status     string      `json:"status"`
	Notes      string      `json:"notes"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

func NewBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		ClassID:    b.ClassID,
		ClassName:  b.ClassName,
		Customer:   newCustomerDTO(b.Customer),
		CustomerID: b.CustomerID,
		Date:       b.Date,
		Time:       b.Time,
		Attendees:  b.Attendees,
		TotalPrice: money(b.TotalPrice),
		Status:     string(b.Status),
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func NewBookingList(list []models.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(list))
	for i := range list {
		out = append(out, NewBookingResponse(&list[i]))
	}
	return out
}

// ---- orders ----

// OrderItemDTO: name/price/image клиента игнорируются, цена берётся из каталога.
type OrderItemDTO struct {
	ProductID uuid.UUID        `json:"productId" binding:"required"`
	Name      string           `json:"name"`
	Price     *decimal.Decimal `json:"price"`
	Quantity  int              `json:"quantity" binding:"required,min=1"`
	Image     string           `json:"image"`
}

type AddressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

func (a *AddressDTO) model() *models.Address {
	if a == nil {
		return nil
	}
	return &models.Address{Street: a.Street, City: a.City, State: a.State, Zip: a.Zip, Country: a.Country}
}

type CreateOrderRequest struct {
	Customer        *CustomerDTO     `json:"customer" binding:"required"`
	CustomerID      *uuid.UUID       `json:"customerId"`
	Items           []OrderItemDTO   `json:"items" binding:"required,min=1,dive"`
	Subtotal        *decimal.Decimal `json:"subtotal"`
	ShippingCost    *decimal.Decimal `json:"shippingCost"`
	Total           *decimal.Decimal `json:"total" binding:"required"`
	ShippingMethod  string           `json:"shippingMethod"`
	ShippingAddress *AddressDTO      `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
	Notes           string           `json:"notes"`
}

func (CreateOrderRequest) RequiredMessage() string { return "Customer, items, and total are required" }

func (r CreateOrderRequest) Input(customerID *uuid.UUID) service.OrderInput {
	items := make([]service.OrderItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, service.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return service.OrderInput{
		Customer:        r.Customer.input(),
		CustomerID:      customerID,
		Items:           items,
		Total:           *r.Total,
		ShippingMethod:  r.ShippingMethod,
		ShippingAddress: r.ShippingAddress.model(),
		PaymentMethod:   r.PaymentMethod,
		Notes:           r.Notes,
	}
}

type UpdateOrderRequest struct {
	Status          *string           `json:"status" binding:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
	Notes           *string           `json:"notes"`
	ShippingAddress *AddressDTO       `json:"shippingAddress"`
	Customer        *CustomerPatchDTO `json:"customer"`
}

func (r UpdateOrderRequest) Patch() service.OrderPatch {
	p := service.OrderPatch{Notes: r.Notes, ShippingAddress: r.ShippingAddress.model(), Customer: r.Customer.input()}
	if r.Status != nil {
		st := models.OrderStatus(*r.Status)
		p.Status = &st
	}
	return p
}

type OrderItemResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Image     string    `json:"image,omitempty"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	Customer        CustomerDTO         `json:"customer"`
	CustomerID      *uuid.UUID          `json:"customerId"`
	Items           []OrderItemResponse `json:"items"`
	Subtotal        float64             `json:"subtotal"`
	ShippingCost    float64             `json:"shippingCost"`
	Total           float64             `json:"total"`
	Status          string              `json:"status"`
	ShippingMethod  string              `json:"shippingMethod"`
	ShippingAddress *models.Address     `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	Notes           string              `json:"notes"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func NewOrderResponse(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items.Val))
	for _, it := range o.Items.Val {
		items = append(items, OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     money(it.Price),
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}
	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		Customer:        newCustomerDTO(o.Customer),
		CustomerID:      o.CustomerID,
		Items:           items,
		Subtotal:        money(o.Subtotal),
		ShippingCost:    money(o.ShippingCost),
		Total:           money(o.Total),
		Status:          string(o.Status),
		ShippingMethod:  o.ShippingMethod,
		ShippingAddress: o.ShippingAddress.Val,
		PaymentMethod:   o.PaymentMethod,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func NewOrderList(list []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for i := range list {
		out = append(out, NewOrderResponse(&list[i]))
	}
	return out
}

// ---- custom requests ----

type CreateCustomRequestRequest struct {
	Customer       *CustomerDTO   `json:"customer" binding:"required"`
	CustomerID     *uuid.UUID     `json:"customerId"`
	Description    string         `json:"description" binding:"required,notblank"`
	Specifications map[string]any `json:"specifications"`
	Images         []string       `json:"images"`
}

func (CreateCustomRequestRequest) RequiredMessage() string {
	return "Customer and description are required"
}

func (r CreateCustomRequestRequest) Input(customerID *uuid.UUID) service.CustomRequestInput {
	return service.CustomRequestInput{
		Customer:       r.Customer.input(),
		CustomerID:     customerID,
		Description:    r.Description,
		Specifications: r.Specifications,
		Images:         r.Images,
	}
}

type QuoteDTO struct {
	Price        *decimal.Decimal `json:"price"`
	DeliveryTime *string          `json:"deliveryTime"`
	Notes        *string          `json:"notes"`
}

type UpdateCustomRequestRequest struct {
	Status         *string        `json:"status" binding:"omitempty,oneof=pending reviewing quoted approved in_production completed cancelled"`
	Description    *string        `json:"description" binding:"omitempty,min=1"`
	Specifications map[string]any `json:"specifications"`
	Images         []string       `json:"images"`
	Quote          *QuoteDTO      `json:"quote"`
}

func (r UpdateCustomRequestRequest) Patch() service.CustomRequestPatch {
	p := service.CustomRequestPatch{
		Description:    r.Description,
		Specifications: r.Specifications,
		Images:         r.Images,
	}
	if r.Status != nil {
		st := models.CustomRequestStatus(*r.Status)
		p.Status = &st
	}
	if r.Quote != nil {
		p.Quote = &service.QuotePatch{Price: r.Quote.Price, DeliveryTime: r.Quote.DeliveryTime, Notes: r.Quote.Notes}
	}
	return p
}

type QuoteResponse struct {
	Price        *float64 `json:"price"`
	DeliveryTime string   `json:"deliveryTime"`
	Notes        string   `json:"notes"`
}

type CustomRequestResponse struct {
	ID             uuid.UUID      `json:"id"`
	Customer       CustomerDTO    `json:"customer"`
	CustomerID     *uuid.UUID     `json:"customerId"`
	Description    string         `json:"description"`
	Specifications map[string]any `json:"specifications"`
	Images         []string       `json:"images"`
	Status         string         `json:"status"`
	Quote          *QuoteResponse `json:"quote"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func NewCustomRequestResponse(r *models.CustomRequest) CustomRequestResponse {
	resp := CustomRequestResponse{
		ID:             r.ID,
		Customer:       newCustomerDTO(r.Customer),
		CustomerID:     r.CustomerID,
		Description:    r.Description,
		Specifications: r.Specifications.Val,
		Images:         strs(r.Images),
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if q := r.Quote; q.Price.Valid || q.DeliveryTime != "" || q.Notes != "" {
		resp.Quote = &QuoteResponse{Price: nullMoney(q.Price), DeliveryTime: q.DeliveryTime, Notes: q.Notes}
	}
	return resp
}

func NewCustomRequestList(list []models.CustomRequest) []CustomRequestResponse {
	out := make([]CustomRequestResponse, 0, len(list))
	for i := range list {
		out = append(out, NewCustomRequestResponse(&list[i]))
	}
	return out
}

// ---- contact messages ----

type CreateContactMessageRequest struct {
	Name    string `json:"name" binding:"required,notblank"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required,notblank"`
}

func (CreateContactMessageRequest) RequiredMessage() string {
	return "Name, email, and message are required"
}

func (r CreateContactMessageRequest) Input() service.ContactMessageInput {
	return service.ContactMessageInput{Name: r.Name, Email: r.Email, Subject: r.Subject, Message: r.Message}
}

type UpdateContactMessageRequest struct {
	IsRead *bool `json:"isRead"`
}

type ContactMessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewContactMessageResponse(m *models.ContactMessage) ContactMessageResponse {
	return ContactMessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewContactMessageList(list []models.ContactMessage) []ContactMessageResponse {
	out := make([]ContactMessageResponse, 0, len(list))
	for i := range list {
		out = append(out, NewContactMessageResponse(&list[i]))
	}
	return out
}
