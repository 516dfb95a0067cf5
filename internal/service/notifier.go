package service

import (
	"context"
	"strings"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/producer"

	"go.uber.org/zap"
)

const (
	tmplBookingConfirmation = "booking_confirmation"
	tmplOrderConfirmation   = "order_confirmation"
	tmplCustomRequest       = "custom_request_received"
	tmplContactReceived     = "contact_received"
	tmplStatusUpdate        = "status_update"
	tmplAdminAlert          = "admin_alert"
)

// EmailNotifier превращает события магазина в письма покупателю и администратору.
// Отправка best effort: ошибки только логируются.
type EmailNotifier struct {
	producer   EmailProducer
	adminEmail string
	log        *zap.Logger
}

func NewEmailNotifier(p EmailProducer, adminEmail string, log *zap.Logger) *EmailNotifier {
	return &EmailNotifier{producer: p, adminEmail: strings.TrimSpace(adminEmail), log: log}
}

func (n *EmailNotifier) send(ctx context.Context, key string, msg producer.EmailMessage) {
	if msg.To == "" {
		return
	}
	if err := n.producer.SendEmail(ctx, key, msg); err != nil {
		n.log.Warn("failed to publish email event",
			zap.String("key", key),
			zap.String("template", msg.Template),
			zap.Error(err),
		)
	}
}

func (n *EmailNotifier) alertAdmin(ctx context.Context, key, subject string, data map[string]any) {
	if n.adminEmail == "" {
		return
	}
	n.send(ctx, key, producer.EmailMessage{
		To:       n.adminEmail,
		Subject:  subject,
		Template: tmplAdminAlert,
		Data:     data,
	})
}

func customerName(c models.Customer) string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (n *EmailNotifier) BookingCreated(ctx context.Context, b *models.Booking) {
	data := map[string]any{
		"Name":       customerName(b.Customer),
		"ClassName":  b.ClassName,
		"Date":       b.Date,
		"Time":       b.Time,
		"Attendees":  b.Attendees,
		"TotalPrice": b.TotalPrice.StringFixed(2),
		"Reference":  b.ID.String(),
	}
	n.send(ctx, b.ID.String(), producer.EmailMessage{
		To:       b.Customer.Email,
		Subject:  "Your class booking: " + b.ClassName,
		Template: tmplBookingConfirmation,
		Data:     data,
	})
	n.alertAdmin(ctx, b.ID.String(), "New class booking", data)
}

func (n *EmailNotifier) BookingStatusChanged(ctx context.Context, b *models.Booking) {
	n.send(ctx, b.ID.String(), producer.EmailMessage{
		To:       b.Customer.Email,
		Subject:  "Booking update: " + b.ClassName,
		Template: tmplStatusUpdate,
		Data: map[string]any{
			"Name":      customerName(b.Customer),
			"Kind":      "booking",
			"Reference": b.ClassName,
			"Status":    string(b.Status),
		},
	})
}

func (n *EmailNotifier) OrderCreated(ctx context.Context, o *models.Order) {
	items := make([]map[string]any, 0, len(o.Items.Val))
	for _, it := range o.Items.Val {
		items = append(items, map[string]any{
			"Name":     it.Name,
			"Quantity": it.Quantity,
			"Price":    it.Price.StringFixed(2),
		})
	}
	data := map[string]any{
		"Name":         customerName(o.Customer),
		"OrderNumber":  o.OrderNumber,
		"Items":        items,
		"Subtotal":     o.Subtotal.StringFixed(2),
		"ShippingCost": o.ShippingCost.StringFixed(2),
		"Total":        o.Total.StringFixed(2),
	}
	n.send(ctx, o.OrderNumber, producer.EmailMessage{
		To:       o.Customer.Email,
		Subject:  "Order confirmation " + o.OrderNumber,
		Template: tmplOrderConfirmation,
		Data:     data,
	})
	n.alertAdmin(ctx, o.OrderNumber, "New order "+o.OrderNumber, data)
}

func (n *EmailNotifier) OrderStatusChanged(ctx context.Context, o *models.Order) {
	n.send(ctx, o.OrderNumber, producer.EmailMessage{
		To:       o.Customer.Email,
		Subject:  "Order " + o.OrderNumber + " is " + string(o.Status),
		Template: tmplStatusUpdate,
		Data: map[string]any{
			"Name":      customerName(o.Customer),
			"Kind":      "order",
			"Reference": o.OrderNumber,
			"Status":    string(o.Status),
		},
	})
}

func (n *EmailNotifier) CustomRequestCreated(ctx context.Context, r *models.CustomRequest) {
	data := map[string]any{
		"Name":        customerName(r.Customer),
		"Description": r.Description,
		"Reference":   r.ID.String(),
	}
	n.send(ctx, r.ID.String(), producer.EmailMessage{
		To:       r.Customer.Email,
		Subject:  "We received your custom request",
		Template: tmplCustomRequest,
		Data:     data,
	})
	n.alertAdmin(ctx, r.ID.String(), "New custom request", data)
}

func (n *EmailNotifier) CustomRequestStatusChanged(ctx context.Context, r *models.CustomRequest) {
	data := map[string]any{
		"Name":      customerName(r.Customer),
		"Kind":      "custom request",
		"Reference": r.ID.String(),
		"Status":    string(r.Status),
	}
	if r.Quote.Price.Valid {
		data["QuotePrice"] = r.Quote.Price.Decimal.StringFixed(2)
		data["DeliveryTime"] = r.Quote.DeliveryTime
		data["QuoteNotes"] = r.Quote.Notes
	}
	n.send(ctx, r.ID.String(), producer.EmailMessage{
		To:       r.Customer.Email,
		Subject:  "Custom request update",
		Template: tmplStatusUpdate,
		Data:     data,
	})
}

func (n *EmailNotifier) ContactMessageReceived(ctx context.Context, m *models.ContactMessage) {
	data := map[string]any{
		"Name":    m.Name,
		"Email":   m.Email,
		"Subject": m.Subject,
		"Message": m.Message,
	}
	n.send(ctx, m.ID.String(), producer.EmailMessage{
		To:       m.Email,
		Subject:  "Thanks for getting in touch",
		Template: tmplContactReceived,
		Data:     data,
	})
	n.alertAdmin(ctx, m.ID.String(), "New contact message: "+m.Subject, data)
}
