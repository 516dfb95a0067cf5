package handlers

import (
	"net/http"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/dto"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/middleware"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders *service.OrderService
	gate   *middleware.Gate
	log    *zap.Logger
}

func NewOrderHandler(orders *service.OrderService, gate *middleware.Gate, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, gate: gate, log: log}
}

// ListOrders godoc
// @Summary Список заказов
// @Description Админ видит все; покупатель — только свои (customer_id или email должны совпасть с токеном)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param customer_id query string false "ID покупателя"
// @Param email query string false "Email покупателя"
// @Param status query string false "Статус"
// @Success 200 {array} dto.OrderResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /api/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	f, ok := h.gate.OwnerScope(c)
	if !ok {
		return
	}
	list, err := h.orders.ListOrders(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderList(list))
}

// GetOrder godoc
// @Summary Заказ по id (владелец или админ)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "Order not found")
	if !ok {
		return
	}
	o, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if !middleware.CanAccess(middleware.PrincipalFrom(c), o.CustomerID, o.Customer.Email) {
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("Order not found"))
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(o))
}

// CreateOrder godoc
// @Summary Оформление заказа
// @Description Цены и доставка пересчитываются на сервере; total клиента сверяется с точностью до цента
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Заказ"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Недостаточно товара"
// @Router /api/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	customerID := h.gate.VerifiedCustomerID(c, req.CustomerID)

	o, err := h.orders.CreateOrder(c.Request.Context(), req.Input(customerID))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewOrderResponse(o))
}

// UpdateOrder godoc
// @Summary Изменение заказа
// @Description Отмена возвращает товар на склад
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Param order body dto.UpdateOrderRequest true "Изменения"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "Order not found")
	if !ok {
		return
	}
	var req dto.UpdateOrderRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	o, err := h.orders.UpdateOrder(c.Request.Context(), id, req.Patch())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(o))
}

// DeleteOrder godoc
// @Summary Удаление заказа
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Success 200 {object} dto.DeletedResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "Order not found")
	if !ok {
		return
	}
	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeletedResponse{Deleted: true})
}
