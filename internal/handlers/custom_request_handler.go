package handlers

import (
	"net/http"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/dto"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/middleware"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CustomRequestHandler struct {
	requests *service.CustomRequestService
	gate     *middleware.Gate
	log      *zap.Logger
}

func NewCustomRequestHandler(requests *service.CustomRequestService, gate *middleware.Gate, log *zap.Logger) *CustomRequestHandler {
	return &CustomRequestHandler{requests: requests, gate: gate, log: log}
}

// ListCustomRequests godoc
// @Summary Список индивидуальных заявок
// @Tags custom-requests
// @Produce json
// @Security BearerAuth
// @Param customer_id query string false "ID покупателя"
// @Param email query string false "Email покупателя"
// @Param status query string false "Статус"
// @Success 200 {array} dto.CustomRequestResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /api/custom-requests [get]
func (h *CustomRequestHandler) List(c *gin.Context) {
	f, ok := h.gate.OwnerScope(c)
	if !ok {
		return
	}
	list, err := h.requests.ListCustomRequests(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCustomRequestList(list))
}

// GetCustomRequest godoc
// @Summary Заявка по id (владелец или админ)
// @Tags custom-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заявки"
// @Success 200 {object} dto.CustomRequestResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/custom-requests/{id} [get]
func (h *CustomRequestHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "Custom request not found")
	if !ok {
		return
	}
	r, err := h.requests.GetCustomRequest(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if !middleware.CanAccess(middleware.PrincipalFrom(c), r.CustomerID, r.Customer.Email) {
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("Custom request not found"))
		return
	}
	c.JSON(http.StatusOK, dto.NewCustomRequestResponse(r))
}

// CreateCustomRequest godoc
// @Summary Индивидуальная заявка
// @Tags custom-requests
// @Accept json
// @Produce json
// @Param request body dto.CreateCustomRequestRequest true "Заявка"
// @Success 201 {object} dto.CustomRequestResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/custom-requests [post]
func (h *CustomRequestHandler) Create(c *gin.Context) {
	var req dto.CreateCustomRequestRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	customerID := h.gate.VerifiedCustomerID(c, req.CustomerID)

	r, err := h.requests.CreateCustomRequest(c.Request.Context(), req.Input(customerID))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCustomRequestResponse(r))
}

// UpdateCustomRequest godoc
// @Summary Изменение заявки (статус, смета)
// @Tags custom-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заявки"
// @Param request body dto.UpdateCustomRequestRequest true "Изменения"
// @Success 200 {object} dto.CustomRequestResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/custom-requests/{id} [put]
func (h *CustomRequestHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "Custom request not found")
	if !ok {
		return
	}
	var req dto.UpdateCustomRequestRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	r, err := h.requests.UpdateCustomRequest(c.Request.Context(), id, req.Patch())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCustomRequestResponse(r))
}

// DeleteCustomRequest godoc
// @Summary Удаление заявки
// @Tags custom-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заявки"
// @Success 200 {object} dto.DeletedResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/custom-requests/{id} [delete]
func (h *CustomRequestHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "Custom request not found")
	if !ok {
		return
	}
	if err := h.requests.DeleteCustomRequest(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeletedResponse{Deleted: true})
}
