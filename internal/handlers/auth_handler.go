package handlers

import (
	"context"
	"net/http"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/dto"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/middleware"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountService — часть identity.Service, нужная ручкам /api/auth.
type AccountService interface {
	SignUp(ctx context.Context, in identity.SignUpInput) (*identity.Principal, error)
	SignIn(ctx context.Context, email, password string, want models.Role) (*identity.Session, error)
}

type AuthHandler struct {
	accounts AccountService
	log      *zap.Logger
}

func NewAuthHandler(accounts AccountService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, log: log}
}

// Login godoc
// @Summary Вход администратора
// @Description Выдаёт токен только учётке с ролью admin; чужая роль — как неверный пароль
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Данные авторизации"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Ошибка авторизации"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	h.signIn(c, models.RoleAdmin)
}

// CustomerLogin godoc
// @Summary Вход покупателя
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Данные авторизации"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Ошибка авторизации"
// @Router /api/auth/customer-login [post]
func (h *AuthHandler) CustomerLogin(c *gin.Context) {
	h.signIn(c, models.RoleCustomer)
}

func (h *AuthHandler) signIn(c *gin.Context, role models.Role) {
	var req dto.LoginRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	sess, err := h.accounts.SignIn(c.Request.Context(), req.Email, req.Password, role)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSessionResponse(sess))
}

// Register godoc
// @Summary Создание администратора
// @Description Доступно только администратору
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param register body dto.SignUpRequest true "Данные нового администратора"
// @Success 201 {object} dto.UserEnvelope
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные или email занят"
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.SignUpRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	p, err := h.accounts.SignUp(c.Request.Context(), identity.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.log.Info("admin created", zap.String("user_id", p.ID.String()),
		zap.String("by", middleware.PrincipalFrom(c).ID.String()))
	c.JSON(http.StatusCreated, dto.UserEnvelope{User: dto.NewUserResponse(p)})
}

// CustomerSignUp godoc
// @Summary Регистрация покупателя
// @Description Создаёт покупателя и сразу выдаёт токен
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.SignUpRequest true "Данные регистрации"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные или email занят"
// @Router /api/auth/customer-signup [post]
func (h *AuthHandler) CustomerSignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.accounts.SignUp(ctx, identity.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     models.RoleCustomer,
	}); err != nil {
		writeError(c, h.log, err)
		return
	}
	sess, err := h.accounts.SignIn(ctx, req.Email, req.Password, models.RoleCustomer)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSessionResponse(sess))
}

// Me godoc
// @Summary Текущий пользователь
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserEnvelope
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/auth/me [get]
// @Router /api/auth/customer-me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("Access token required"))
		return
	}
	c.JSON(http.StatusOK, dto.UserEnvelope{User: dto.NewUserResponse(p)})
}
