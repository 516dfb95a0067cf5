package dto

import (
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (LoginRequest) RequiredMessage() string { return "Email and password are required" }

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

func (SignUpRequest) RequiredMessage() string { return "Email and password are required" }

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
	Name  string    `json:"name,omitempty"`
	Phone string    `json:"phone,omitempty"`
}

func NewUserResponse(p *identity.Principal) UserResponse {
	return UserResponse{ID: p.ID, Email: p.Email, Role: string(p.Role), Name: p.Name, Phone: p.Phone}
}

type UserEnvelope struct {
	User UserResponse `json:"user"`
}

type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

func NewSessionResponse(s *identity.Session) SessionResponse {
	return SessionResponse{Token: s.AccessToken, ExpiresAt: s.ExpiresAt, User: NewUserResponse(s.Principal)}
}

type UploadResponse struct {
	URL string `json:"url"`
}
