package dto

import (
	"bytes"
	"strings"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bind[T any](t *testing.T, body string) (*T, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Setup()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	req := new(T)
	return req, c.ShouldBindJSON(req)
}

func TestBindError_RequiredMessage(t *testing.T) {
	req, err := bind[CreateBookingRequest](t, `{"customer":{"email":"a@example.com"}}`)
	require.Error(t, err)

	resp := BindError(req, err)
	assert.Equal(t, "Class ID and customer are required", resp.Error)
	assert.Equal(t, "validation_error", resp.Code)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "classId", resp.Fields[0].Field)
	assert.Equal(t, "is required", resp.Fields[0].Message)
}

func TestBindError_NestedFieldPath(t *testing.T) {
	req, err := bind[CreateBookingRequest](t, `{"classId":"7f1c1f4e-1c39-4a4e-bb1e-6e1c3cb8e0a1","customer":{"email":"nope"}}`)
	require.Error(t, err)

	resp := BindError(req, err)
	assert.Equal(t, "Validation failed", resp.Error)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "customer.email", resp.Fields[0].Field)
	assert.Equal(t, "must be a valid email", resp.Fields[0].Message)
}

func TestBindError_MalformedBody(t *testing.T) {
	req, err := bind[LoginRequest](t, `{"email":`)
	require.Error(t, err)
	assert.Equal(t, "Invalid request body", BindError(req, err).Error)

	req, err = bind[LoginRequest](t, `{"email":"a@example.com","password":"x","extra":1}`)
	require.Error(t, err, "unknown fields are rejected")
	assert.Equal(t, "Invalid request body", BindError(req, err).Error)
}

func TestPriceAcceptsStringOrNumber(t *testing.T) {
	for _, body := range []string{`{"name":"Beads","price":"19.99"}`, `{"name":"Beads","price":19.99}`} {
		req, err := bind[CreateProductRequest](t, body)
		require.NoError(t, err, body)
		assert.Equal(t, "19.99", req.Price.StringFixed(2))
	}
}

func TestBindError_BlankRequiredString(t *testing.T) {
	for _, body := range []string{`{"name":"   "}`, `{"name":"\t"}`} {
		req, err := bind[CreateCategoryRequest](t, body)
		require.Error(t, err, body)

		resp := BindError(req, err)
		assert.Equal(t, "Name is required", resp.Error)
		require.Len(t, resp.Fields, 1)
		assert.Equal(t, "name", resp.Fields[0].Field)
		assert.Equal(t, "notblank", resp.Fields[0].Tag)
	}

	req, err := bind[CreateContactMessageRequest](t, `{"name":"Bob","email":"bob@example.com","message":"  "}`)
	require.Error(t, err)
	assert.Equal(t, "Name, email, and message are required", BindError(req, err).Error)
}

func TestBindError_SignUpPasswordOverBcryptLimit(t *testing.T) {
	body := `{"email":"a@example.com","password":"` + strings.Repeat("p", 73) + `"}`
	req, err := bind[SignUpRequest](t, body)
	require.Error(t, err)

	resp := BindError(req, err)
	assert.Equal(t, "Validation failed", resp.Error)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "password", resp.Fields[0].Field)
	assert.Equal(t, "must be at most 72", resp.Fields[0].Message)

	_, err = bind[SignUpRequest](t, `{"email":"a@example.com","password":"`+strings.Repeat("p", 72)+`"}`)
	require.NoError(t, err)
}
