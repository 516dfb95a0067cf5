package service

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"

	"github.com/nanorand/nanorand"
	"go.uber.org/zap"
)

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

type UploadService struct {
	store    Store
	baseURL  string
	maxBytes int64
	now      func() time.Time
	log      *zap.Logger
}

func NewUploadService(store Store, baseURL string, maxBytes int64, log *zap.Logger) *UploadService {
	return &UploadService{
		store:    store,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		now:      time.Now,
		log:      log,
	}
}

// Save сохраняет картинку под новым именем и возвращает её публичный URL.
func (s *UploadService) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", ErrUploadTooLarge
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExt[contentType]
	if !ok {
		return "", ErrUnsupportedUpload
	}

	rnd, err := nanorand.Gen(8)
	if err != nil {
		return "", err
	}

	base := sanitizeName(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	name := strings.ToLower(rnd)
	if base != "" {
		name += "-" + base
	}
	name = s.now().UTC().Format("20060102") + "-" + name + ext

	u := &models.Upload{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}
	if err := s.store.Repos().Uploads.Create(ctx, u); err != nil {
		return "", err
	}

	s.log.Info("upload stored", zap.String("name", name), zap.Int64("size", u.Size))
	return s.URL(name), nil
}

func (s *UploadService) URL(name string) string {
	return s.baseURL + "/api/uploads/" + name
}

func (s *UploadService) Get(ctx context.Context, name string) (*models.Upload, error) {
	u, err := s.store.Repos().Uploads.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUploadNotFound
	}
	return u, nil
}

// sanitizeName оставляет латиницу, цифры, '-' и '_', не длиннее 40 символов.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('-')
		}
		if b.Len() >= 40 {
			break
		}
	}
	return strings.Trim(b.String(), "-_")
}
