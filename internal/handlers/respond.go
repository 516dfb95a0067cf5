package handlers

import (
	"errors"
	"net/http"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/dto"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type errMapping struct {
	err     error
	status  int
	message string
}

var errTable = []errMapping{
	{service.ErrCategoryNotFound, http.StatusNotFound, "Category not found"},
	{service.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{service.ErrClassNotFound, http.StatusNotFound, "Class not found"},
	{service.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{service.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
	{service.ErrCustomRequestNotFound, http.StatusNotFound, "Custom request not found"},
	{service.ErrContactMessageNotFound, http.StatusNotFound, "Contact message not found"},
	{service.ErrUploadNotFound, http.StatusNotFound, "File not found"},
	{identity.ErrUserNotFound, http.StatusNotFound, "User not found"},

	{service.ErrCategoryExists, http.StatusBadRequest, "Category with this name already exists"},
	{identity.ErrEmailExists, http.StatusBadRequest, "User with this email already exists"},
	{service.ErrNotEnoughSpots, http.StatusConflict, "Not enough spots available"},

	{service.ErrTotalMismatch, http.StatusBadRequest, "Total does not match calculated price"},
	{service.ErrUnknownShippingMethod, http.StatusBadRequest, "Unknown shipping method"},
	{service.ErrInvalidStatus, http.StatusBadRequest, "Invalid status"},
	{service.ErrInvalidPrice, http.StatusBadRequest, "Price must not be negative"},
	{service.ErrInvalidStock, http.StatusBadRequest, "Stock must not be negative"},
	{service.ErrInvalidSpots, http.StatusBadRequest, "Spots left must be between 0 and total spots"},
	{service.ErrInvalidDate, http.StatusBadRequest, "Date must be in YYYY-MM-DD format"},
	{service.ErrEmptyItems, http.StatusBadRequest, "Order must contain at least one item"},
	{service.ErrInvalidQuantity, http.StatusBadRequest, "Item quantity must be positive"},
	{service.ErrBlankField, http.StatusBadRequest, "Required fields must not be blank"},
	{service.ErrEmptyUpload, http.StatusBadRequest, "No file data received"},
	{service.ErrUploadTooLarge, http.StatusBadRequest, "File is too large"},
	{service.ErrUnsupportedUpload, http.StatusBadRequest, "Only image uploads are allowed"},
	{identity.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
	{identity.ErrPasswordTooLong, http.StatusBadRequest, "Password must be at most 72 bytes"},

	{identity.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
}

// writeError отвечает клиенту по таблице; всё неизвестное отдаётся как 500 без деталей.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		log.Warn("insufficient stock", zap.String("product", stockErr.Name))
		c.JSON(http.StatusConflict, dto.NewConflictError("Insufficient stock for "+stockErr.Name))
		return
	}

	for _, m := range errTable {
		if errors.Is(err, m.err) {
			log.Warn("request rejected", zap.String("path", c.FullPath()), zap.Int("status", m.status), zap.Error(err))
			c.JSON(m.status, dto.ErrorResponse{Error: m.message, Code: codeFor(m.status)})
			return
		}
	}

	log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, dto.NewInternalError())
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	default:
		return ""
	}
}

// bindJSON: при false ответ 400 уже записан.
func bindJSON(c *gin.Context, log *zap.Logger, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.BindError(req, err))
		return false
	}
	return true
}

func parseID(c *gin.Context, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// невалидный id не может существовать в БД
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(notFound))
		return uuid.Nil, false
	}
	return id, true
}
