package hashing

import (
	"sync"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/identity"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes: bcrypt смотрит только на первые 72 байта.
const maxPasswordBytes = 72

type Bcrypt struct {
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

// NewBcrypt: при cost 0 берётся bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", identity.ErrPasswordTooLong
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Compare с пустым hash (пользователь не найден) всё равно гоняет bcrypt,
// чтобы ответ по несуществующему email занимал столько же времени.
func (b *Bcrypt) Compare(hash, password string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(b.dummyHash(), []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (b *Bcrypt) dummyHash() []byte {
	b.dummyOnce.Do(func() {
		b.dummy, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), b.cost)
	})
	return b.dummy
}
