package middleware

import (
	"net/http"
	"strings"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/dto"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OwnerScope строит фильтр списка заявок покупателя.
// Админ получает фильтр из query как есть (пустой — вся коллекция). Остальным нужен
// customer_id или email, совпадающий с их собственной личностью, иначе запрос прерывается.
func (g *Gate) OwnerScope(c *gin.Context) (repository.OwnerFilter, bool) {
	p := g.resolve(c)

	f := repository.OwnerFilter{
		Email:  strings.TrimSpace(c.Query("email")),
		Status: strings.TrimSpace(c.Query("status")),
	}
	if raw := strings.TrimSpace(c.Query("customer_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewBadRequestError("Invalid customer_id"))
			return f, false
		}
		f.CustomerID = &id
	}

	if p.IsAdmin() {
		return f, true
	}

	if p == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("Access token required"))
		return f, false
	}
	if f.CustomerID == nil && f.Email == "" {
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewForbiddenError("Admin access required"))
		return f, false
	}
	if (f.CustomerID != nil && *f.CustomerID != p.ID) || (f.Email != "" && !strings.EqualFold(f.Email, p.Email)) {
		g.log.Warn("owner scope mismatch", zap.String("principal", p.ID.String()), zap.String("path", c.FullPath()))
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("Not authorized to view these records"))
		return f, false
	}
	return f, true
}

// CanAccess — админ или владелец записи (по id или email).
func CanAccess(p *identity.Principal, customerID *uuid.UUID, email string) bool {
	if p == nil {
		return false
	}
	if p.IsAdmin() {
		return true
	}
	if customerID != nil && *customerID == p.ID {
		return true
	}
	return email != "" && strings.EqualFold(email, p.Email)
}

// VerifiedCustomerID принимает customerId клиента, только если он совпадает с токеном.
func (g *Gate) VerifiedCustomerID(c *gin.Context, claimed *uuid.UUID) *uuid.UUID {
	if claimed == nil {
		return nil
	}
	p := g.resolve(c)
	if p == nil || p.ID != *claimed {
		g.log.Warn("ignoring unverified customerId", zap.String("claimed", claimed.String()))
		return nil
	}
	id := p.ID
	return &id
}
