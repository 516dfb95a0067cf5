package memstore

import (
	"context"
	"sync"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"
)

// Recorder запоминает имена событий, отправленных в Notifier.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

var _ service.Notifier = (*Recorder)(nil)

func (r *Recorder) add(ev string) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *Recorder) BookingCreated(context.Context, *models.Booking)       { r.add("booking.created") }
func (r *Recorder) BookingStatusChanged(context.Context, *models.Booking) { r.add("booking.status") }
func (r *Recorder) OrderCreated(context.Context, *models.Order)           { r.add("order.created") }
func (r *Recorder) OrderStatusChanged(context.Context, *models.Order)     { r.add("order.status") }
func (r *Recorder) CustomRequestCreated(context.Context, *models.CustomRequest) {
	r.add("custom_request.created")
}
func (r *Recorder) CustomRequestStatusChanged(context.Context, *models.CustomRequest) {
	r.add("custom_request.status")
}
func (r *Recorder) ContactMessageReceived(context.Context, *models.ContactMessage) {
	r.add("contact.received")
}
