package handlers

import (
	"net/http"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/dto"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/middleware"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	bookings *service.BookingService
	gate     *middleware.Gate
	log      *zap.Logger
}

func NewBookingHandler(bookings *service.BookingService, gate *middleware.Gate, log *zap.Logger) *BookingHandler {
	return &BookingHandler{bookings: bookings, gate: gate, log: log}
}

// ListBookings godoc
// @Summary Список бронирований
// @Description Админ видит все; покупатель — только свои, передав customer_id или email из своего токена
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param customer_id query string false "ID покупателя"
// @Param email query string false "Email покупателя"
// @Param status query string false "Статус"
// @Success 200 {array} dto.BookingResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /api/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	f, ok := h.gate.OwnerScope(c)
	if !ok {
		return
	}
	list, err := h.bookings.ListBookings(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBookingList(list))
}

// GetBooking godoc
// @Summary Бронирование по id (владелец или админ)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID бронирования"
// @Success 200 {object} dto.BookingResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "Booking not found")
	if !ok {
		return
	}
	b, err := h.bookings.GetBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if !middleware.CanAccess(middleware.PrincipalFrom(c), b.CustomerID, b.Customer.Email) {
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("Booking not found"))
		return
	}
	c.JSON(http.StatusOK, dto.NewBookingResponse(b))
}

// CreateBooking godoc
// @Summary Бронирование занятия
// @Description Места списываются атомарно; при нехватке — 409, бронь не создаётся
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body dto.CreateBookingRequest true "Бронирование"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Занятие не найдено"
// @Failure 409 {object} dto.ConflictErrorResponse "Недостаточно мест"
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	customerID := h.gate.VerifiedCustomerID(c, req.CustomerID)

	b, err := h.bookings.CreateBooking(c.Request.Context(), req.Input(customerID))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewBookingResponse(b))
}

// UpdateBooking godoc
// @Summary Изменение бронирования
// @Description Отмена возвращает места в занятие
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID бронирования"
// @Param booking body dto.UpdateBookingRequest true "Изменения"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "Booking not found")
	if !ok {
		return
	}
	var req dto.UpdateBookingRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	b, err := h.bookings.UpdateBooking(c.Request.Context(), id, req.Patch())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBookingResponse(b))
}

// DeleteBooking godoc
// @Summary Удаление бронирования
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID бронирования"
// @Success 200 {object} dto.DeletedResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "Booking not found")
	if !ok {
		return
	}
	if err := h.bookings.DeleteBooking(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeletedResponse{Deleted: true})
}
