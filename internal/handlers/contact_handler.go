package handlers

import (
	"net/http"
	"strconv"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/dto"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/middleware"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContactHandler struct {
	contact *service.ContactService
	gate    *middleware.Gate
	log     *zap.Logger
}

func NewContactHandler(contact *service.ContactService, gate *middleware.Gate, log *zap.Logger) *ContactHandler {
	return &ContactHandler{contact: contact, gate: gate, log: log}
}

// ListContactMessages godoc
// @Summary Сообщения обратной связи
// @Description Админ видит все; покупатель — только отправленные со своего email
// @Tags contact-messages
// @Produce json
// @Security BearerAuth
// @Param email query string false "Email отправителя"
// @Param isRead query bool false "Прочитано"
// @Success 200 {array} dto.ContactMessageResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /api/contact-messages [get]
func (h *ContactHandler) List(c *gin.Context) {
	scope, ok := h.gate.OwnerScope(c)
	if !ok {
		return
	}
	f := service.ContactMessageFilter{Email: scope.Email}
	// у сообщений нет customer_id, поэтому не-админ всегда ограничен своим email
	if p := middleware.PrincipalFrom(c); !p.IsAdmin() {
		f.Email = p.Email
	}
	if raw := c.Query("isRead"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewBadRequestError("Invalid isRead"))
			return
		}
		f.IsRead = &v
	}

	list, err := h.contact.ListMessages(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewContactMessageList(list))
}

// GetContactMessage godoc
// @Summary Сообщение по id
// @Tags contact-messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID сообщения"
// @Success 200 {object} dto.ContactMessageResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/contact-messages/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "Contact message not found")
	if !ok {
		return
	}
	m, err := h.contact.GetMessage(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewContactMessageResponse(m))
}

// CreateContactMessage godoc
// @Summary Отправка сообщения
// @Tags contact-messages
// @Accept json
// @Produce json
// @Param message body dto.CreateContactMessageRequest true "Сообщение"
// @Success 201 {object} dto.ContactMessageResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/contact-messages [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var req dto.CreateContactMessageRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	m, err := h.contact.CreateMessage(c.Request.Context(), req.Input())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewContactMessageResponse(m))
}

// UpdateContactMessage godoc
// @Summary Отметка о прочтении
// @Tags contact-messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID сообщения"
// @Param message body dto.UpdateContactMessageRequest true "Изменения"
// @Success 200 {object} dto.ContactMessageResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/contact-messages/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "Contact message not found")
	if !ok {
		return
	}
	var req dto.UpdateContactMessageRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	m, err := h.contact.MarkRead(c.Request.Context(), id, req.IsRead)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewContactMessageResponse(m))
}

// DeleteContactMessage godoc
// @Summary Удаление сообщения
// @Tags contact-messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID сообщения"
// @Success 200 {object} dto.DeletedResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/contact-messages/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "Contact message not found")
	if !ok {
		return
	}
	if err := h.contact.DeleteMessage(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeletedResponse{Deleted: true})
}
