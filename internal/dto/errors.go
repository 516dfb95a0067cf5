package dto

// ErrorResponse — единый формат ошибки API.
// Error — человеко-читаемое сообщение, его показывает клиент.
// Code — машинно-ориентированный код (snake_case).
// Fields — для валидационных ошибок (имя поля + текст).
type ErrorResponse struct {
	Error  string       `json:"error"`
	Code   string       `json:"code,omitempty"`
	Fields []FieldError `json:"fields,omitempty"`
}

// FieldError отдельная ошибка по конкретному полю
// Field: путь к полю в JSON (например: "email" или "customer.email")
// Tag: исходный тег валидатора (required/email/min)
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// Семантические обёртки для swagger, JSON у всех одинаковый.
type (
	ValidationErrorResponse   ErrorResponse // 400
	UnauthorizedErrorResponse ErrorResponse // 401
	ForbiddenErrorResponse    ErrorResponse // 403
	NotFoundErrorResponse     ErrorResponse // 404
	ConflictErrorResponse     ErrorResponse // 409
	InternalErrorResponse     ErrorResponse // 500
)

func NewValidationError(msg string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse{Error: msg, Code: "validation_error", Fields: fields}
}
func NewBadRequestError(msg string) ValidationErrorResponse {
	return ValidationErrorResponse{Error: msg, Code: "bad_request"}
}
func NewUnauthorizedError(msg string) UnauthorizedErrorResponse {
	return UnauthorizedErrorResponse{Error: msg, Code: "unauthorized"}
}
func NewForbiddenError(msg string) ForbiddenErrorResponse {
	return ForbiddenErrorResponse{Error: msg, Code: "forbidden"}
}
func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse{Error: msg, Code: "not_found"}
}
func NewConflictError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse{Error: msg, Code: "conflict"}
}

// NewInternalError никогда не раскрывает причину клиенту.
func NewInternalError() InternalErrorResponse {
	return InternalErrorResponse{Error: "Server error", Code: "internal_error"}
}

func NewMethodNotAllowedError() ErrorResponse {
	return ErrorResponse{Error: "Method not allowed", Code: "method_not_allowed"}
}

type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
