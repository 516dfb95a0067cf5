package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/dto"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{service.ErrClassNotFound, http.StatusNotFound, "Class not found"},
		{fmt.Errorf("create booking: %w", service.ErrNotEnoughSpots), http.StatusConflict, "Not enough spots available"},
		{&service.InsufficientStockError{Name: "Charm"}, http.StatusConflict, "Insufficient stock for Charm"},
		{identity.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{service.ErrCategoryExists, http.StatusBadRequest, "Category with this name already exists"},
		{errors.New("pq: connection reset"), http.StatusInternalServerError, "Server error"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			writeError(c, zap.NewNop(), tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.msg, body.Error)
			assert.NotContains(t, w.Body.String(), "pq:")
		})
	}
}
