package service

import (
	"context"
	"strings"
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type CategoryInput struct {
	Name        string
	Description string
}

type CategoryPatch struct {
	Name        *string
	Description *string
}

type ProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Category      string
	Material      string
	Color         string
	Size          string
	Quantity      string
	Stock         int
	Images        []string
}

type ProductPatch struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	OriginalPrice *decimal.Decimal
	Category      *string
	Material      *string
	Color         *string
	Size          *string
	Quantity      *string
	Stock         *int
	Images        []string // nil — не менять
}

type ClassInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Spots       int
	SpotsLeft   *int // по умолчанию = Spots
	Date        string
	Time        string
	Duration    string
	Type        string
	Image       string
}

type ClassPatch struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Spots       *int
	SpotsLeft   *int
	Date        *string
	Time        *string
	Duration    *string
	Type        *string
	Image       *string
}

// CatalogService — категории, товары и занятия.
type CatalogService struct {
	store Store
	now   func() time.Time
	log   *zap.Logger
}

func NewCatalogService(store Store, log *zap.Logger) *CatalogService {
	return &CatalogService{store: store, now: time.Now, log: log}
}

func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// ---- categories ----

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.Repos().Categories.List(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.store.Repos().Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if err := requireText("name", in.Name); err != nil {
		return nil, err
	}
	c := &models.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}

	categories := s.store.Repos().Categories
	if existing, err := categories.GetByName(ctx, c.Name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrCategoryExists
	}

	if err := categories.Create(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error) {
	if err := requireTextPatch("name", patch.Name); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	categories := s.store.Repos().Categories

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		existing, err := categories.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrCategoryExists
		}
		fields["name"] = name
	}
	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}

	c, err := categories.Update(ctx, id, fields)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	ok, err := s.store.Repos().Categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}

// ---- products ----

func (s *CatalogService) ListProducts(ctx context.Context, f ProductListFilter) ([]models.Product, error) {
	return s.store.Repos().Products.List(ctx, f)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.store.Repos().Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := requireText("name", in.Name); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() || (in.OriginalPrice != nil && in.OriginalPrice.IsNegative()) {
		return nil, ErrInvalidPrice
	}
	if in.Stock < 0 {
		return nil, ErrInvalidStock
	}

	p := &models.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price.Round(2),
		Category:    strings.TrimSpace(in.Category),
		Material:    strings.TrimSpace(in.Material),
		Color:       strings.TrimSpace(in.Color),
		Size:        strings.TrimSpace(in.Size),
		Quantity:    strings.TrimSpace(in.Quantity),
		Stock:       in.Stock,
		Images:      pq.StringArray(cleanList(in.Images)),
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = decimal.NewNullDecimal(in.OriginalPrice.Round(2))
	}

	if err := s.store.Repos().Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error) {
	if err := requireTextPatch("name", patch.Name); err != nil {
		return nil, err
	}
	fields := map[string]any{}

	setTrimmed(fields, "name", patch.Name)
	setTrimmed(fields, "description", patch.Description)
	setTrimmed(fields, "category", patch.Category)
	setTrimmed(fields, "material", patch.Material)
	setTrimmed(fields, "color", patch.Color)
	setTrimmed(fields, "size", patch.Size)
	setTrimmed(fields, "quantity", patch.Quantity)

	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return nil, ErrInvalidPrice
		}
		fields["price"] = patch.Price.Round(2)
	}
	if patch.OriginalPrice != nil {
		if patch.OriginalPrice.IsNegative() {
			return nil, ErrInvalidPrice
		}
		fields["original_price"] = decimal.NewNullDecimal(patch.OriginalPrice.Round(2))
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, ErrInvalidStock
		}
		fields["stock"] = *patch.Stock
	}
	if patch.Images != nil {
		fields["images"] = pq.StringArray(cleanList(patch.Images))
	}

	p, err := s.store.Repos().Products.Update(ctx, id, fields)
	if err != nil {
		if repository.IsCheckViolation(err) {
			return nil, ErrInvalidStock
		}
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	ok, err := s.store.Repos().Products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}

// ---- classes ----

// ListClasses: upcoming оставляет занятия начиная с сегодняшней даты.
func (s *CatalogService) ListClasses(ctx context.Context, classType string, upcoming bool) ([]models.ClassOffering, error) {
	f := ClassListFilter{Type: classType}
	if upcoming {
		f.FromDate = s.now().Format(dateLayout)
	}
	return s.store.Repos().Classes.List(ctx, f)
}

func (s *CatalogService) GetClass(ctx context.Context, id uuid.UUID) (*models.ClassOffering, error) {
	c, err := s.store.Repos().Classes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrClassNotFound
	}
	return c, nil
}

func (s *CatalogService) CreateClass(ctx context.Context, in ClassInput) (*models.ClassOffering, error) {
	if err := requireText("title", in.Title); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if !validDate(in.Date) {
		return nil, ErrInvalidDate
	}

	spotsLeft := in.Spots
	if in.SpotsLeft != nil {
		spotsLeft = *in.SpotsLeft
	}
	if in.Spots < 0 || spotsLeft < 0 || spotsLeft > in.Spots {
		return nil, ErrInvalidSpots
	}

	classType := strings.TrimSpace(in.Type)
	if classType == "" {
		classType = "workshop"
	}

	c := &models.ClassOffering{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price.Round(2),
		Spots:       in.Spots,
		SpotsLeft:   spotsLeft,
		Date:        in.Date,
		Time:        strings.TrimSpace(in.Time),
		Duration:    strings.TrimSpace(in.Duration),
		Type:        classType,
		Image:       strings.TrimSpace(in.Image),
	}

	if err := s.store.Repos().Classes.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateClass: новое spots без spotsLeft сдвигает свободные места на ту же разницу.
func (s *CatalogService) UpdateClass(ctx context.Context, id uuid.UUID, patch ClassPatch) (*models.ClassOffering, error) {
	if err := requireTextPatch("title", patch.Title); err != nil {
		return nil, err
	}
	fields := map[string]any{}

	setTrimmed(fields, "title", patch.Title)
	setTrimmed(fields, "description", patch.Description)
	setTrimmed(fields, "time", patch.Time)
	setTrimmed(fields, "duration", patch.Duration)
	setTrimmed(fields, "type", patch.Type)
	setTrimmed(fields, "image", patch.Image)

	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return nil, ErrInvalidPrice
		}
		fields["price"] = patch.Price.Round(2)
	}
	if patch.Date != nil {
		if !validDate(*patch.Date) {
			return nil, ErrInvalidDate
		}
		fields["date"] = *patch.Date
	}
	if (patch.Spots != nil && *patch.Spots < 0) || (patch.SpotsLeft != nil && *patch.SpotsLeft < 0) {
		return nil, ErrInvalidSpots
	}

	var out *models.ClassOffering
	err := s.store.WithTx(ctx, func(tx Repos) error {
		if patch.Spots != nil && patch.SpotsLeft == nil {
			ok, err := tx.Classes.Resize(ctx, id, *patch.Spots)
			if err != nil {
				return err
			}
			if !ok {
				return ErrClassNotFound
			}
		} else {
			if patch.Spots != nil {
				fields["spots"] = *patch.Spots
			}
			if patch.SpotsLeft != nil {
				fields["spots_left"] = *patch.SpotsLeft
			}
		}

		c, err := tx.Classes.Update(ctx, id, fields)
		if err != nil {
			return err
		}
		if c == nil {
			return ErrClassNotFound
		}
		out = c
		return nil
	})
	if err != nil {
		if repository.IsCheckViolation(err) {
			return nil, ErrInvalidSpots
		}
		return nil, err
	}
	return out, nil
}

func (s *CatalogService) DeleteClass(ctx context.Context, id uuid.UUID) error {
	ok, err := s.store.Repos().Classes.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrClassNotFound
	}
	return nil
}

func setTrimmed(fields map[string]any, column string, v *string) {
	if v != nil {
		fields[column] = strings.TrimSpace(*v)
	}
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
