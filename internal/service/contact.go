package service

import (
	"context"
	"strings"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContactMessageInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type ContactService struct {
	store    Store
	notifier Notifier
	log      *zap.Logger
}

func NewContactService(store Store, notifier Notifier, log *zap.Logger) *ContactService {
	return &ContactService{store: store, notifier: notifier, log: log}
}

func (s *ContactService) CreateMessage(ctx context.Context, in ContactMessageInput) (*models.ContactMessage, error) {
	if err := requireText("name", in.Name); err != nil {
		return nil, err
	}
	if err := requireText("message", in.Message); err != nil {
		return nil, err
	}
	m := &models.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if err := s.store.Repos().ContactMessages.Create(ctx, m); err != nil {
		return nil, err
	}
	s.notifier.ContactMessageReceived(ctx, m)
	return m, nil
}

func (s *ContactService) ListMessages(ctx context.Context, f ContactMessageFilter) ([]models.ContactMessage, error) {
	return s.store.Repos().ContactMessages.List(ctx, f)
}

func (s *ContactService) GetMessage(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	m, err := s.store.Repos().ContactMessages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrContactMessageNotFound
	}
	return m, nil
}

// MarkRead меняет единственное изменяемое поле сообщения.
func (s *ContactService) MarkRead(ctx context.Context, id uuid.UUID, isRead *bool) (*models.ContactMessage, error) {
	fields := map[string]any{}
	if isRead != nil {
		fields["is_read"] = *isRead
	}
	m, err := s.store.Repos().ContactMessages.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrContactMessageNotFound
	}
	return m, nil
}

func (s *ContactService) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	ok, err := s.store.Repos().ContactMessages.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrContactMessageNotFound
	}
	return nil
}
