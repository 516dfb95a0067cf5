package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool { return r == RoleCustomer || r == RoleAdmin }

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"not null"` // уникальность обеспечим функциональным индексом lower(email)
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;default:now()"`
	UpdatedAt    time.Time `gorm:"not null;default:now()"`
}

func (User) TableName() string { return "users" }

// Profile хранится отдельно от User; отсутствие строки трактуется как роль customer.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"` // = users.id
	Role      Role      `gorm:"type:text;not null;default:'customer';index"`
	Name      string    `gorm:"type:text"`
	Phone     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Profile) TableName() string { return "profiles" }
