package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCategoryNotFound       = errors.New("category not found")
	ErrProductNotFound        = errors.New("product not found")
	ErrClassNotFound          = errors.New("class not found")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrOrderNotFound          = errors.New("order not found")
	ErrCustomRequestNotFound  = errors.New("custom request not found")
	ErrContactMessageNotFound = errors.New("contact message not found")
	ErrUploadNotFound         = errors.New("upload not found")

	ErrCategoryExists        = errors.New("category already exists")
	ErrNotEnoughSpots        = errors.New("not enough spots available")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrTotalMismatch         = errors.New("total does not match server calculation")
	ErrUnknownShippingMethod = errors.New("unknown shipping method")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidPrice          = errors.New("price must not be negative")
	ErrInvalidStock          = errors.New("stock must not be negative")
	ErrInvalidSpots          = errors.New("spots left must be between 0 and spots")
	ErrInvalidDate           = errors.New("date must be YYYY-MM-DD")
	ErrEmptyItems            = errors.New("order has no items")
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrBlankField            = errors.New("required field is blank")

	ErrEmptyUpload       = errors.New("empty upload")
	ErrUploadTooLarge    = errors.New("upload too large")
	ErrUnsupportedUpload = errors.New("unsupported content type")
)

// requireText: обязательное строковое поле не может состоять из одних пробелов.
func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s", ErrBlankField, field)
	}
	return nil
}

// requireTextPatch: nil означает "не менять".
func requireTextPatch(field string, v *string) error {
	if v == nil {
		return nil
	}
	return requireText(field, *v)
}

// InsufficientStockError называет товар, которого не хватило.
type InsufficientStockError struct {
	Name string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.Name)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }
