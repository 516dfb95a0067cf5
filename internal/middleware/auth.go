package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/dto"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ctxPrincipal = "principal"
	ctxResolved  = "principal_resolved"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*identity.Principal, error)
}

// Gate — три охранника запросов: необязательная, обязательная и админская аутентификация.
type Gate struct {
	auth Authenticator
	log  *zap.Logger
}

func NewGate(auth Authenticator, log *zap.Logger) *Gate {
	return &Gate{auth: auth, log: log}
}

// resolve выполняется не больше одного раза за запрос, ошибка означает анонимный вызов.
func (g *Gate) resolve(c *gin.Context) *identity.Principal {
	if c.GetBool(ctxResolved) {
		return PrincipalFrom(c)
	}
	c.Set(ctxResolved, true)

	token, ok := ExtractBearerToken(c.GetHeader("Authorization"))
	if !ok || token == "" {
		return nil
	}

	p, err := g.auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, identity.ErrInvalidToken) {
			g.log.Warn("authentication failed", zap.Error(err))
		}
		return nil
	}
	c.Set(ctxPrincipal, p)
	return p
}

func (g *Gate) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		g.resolve(c)
		c.Next()
	}
}

func (g *Gate) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if g.resolve(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("Access token required"))
			return
		}
		c.Next()
	}
}

func (g *Gate) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := g.resolve(c)
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("Access token required"))
			return
		}
		if !p.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewForbiddenError("Admin access required"))
			return
		}
		c.Next()
	}
}

// PrincipalFrom возвращает nil для анонимного запроса.
func PrincipalFrom(c *gin.Context) *identity.Principal {
	v, ok := c.Get(ctxPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*identity.Principal)
	return p
}

// ExtractBearerToken извлекает токен из заголовка Authorization, устойчиво к лишним символам
// Примеры допустимых значений:
// - "Bearer abc.def.ghi"
// - "Bearer \"abc.def.ghi\""
// - "Bearer abc.def.ghi, extra"
func ExtractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	scheme, rest, ok := strings.Cut(strings.TrimSpace(authz), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	t := strings.Trim(strings.TrimSpace(rest), " \"'")
	if i := strings.IndexAny(t, ", "); i >= 0 {
		t = t[:i]
	}
	return strings.Trim(t, " \"'"), true
}
