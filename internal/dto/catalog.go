package dto

import (
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Цены принимаются и строкой ("19.99"), и числом (19.99).

// ---- categories ----

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,notblank"`
	Description string `json:"description"`
}

func (CreateCategoryRequest) RequiredMessage() string { return "Name is required" }

func (r CreateCategoryRequest) Input() service.CategoryInput {
	return service.CategoryInput{Name: r.Name, Description: r.Description}
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
}

func (r UpdateCategoryRequest) Patch() service.CategoryPatch {
	return service.CategoryPatch{Name: r.Name, Description: r.Description}
}

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewCategoryList(list []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for i := range list {
		out = append(out, NewCategoryResponse(&list[i]))
	}
	return out
}

// ---- products ----

type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required,notblank"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price" binding:"required"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Category      string           `json:"category"`
	Material      string           `json:"material"`
	Color         string           `json:"color"`
	Size          string           `json:"size"`
	Quantity      string           `json:"quantity"`
	Stock         int              `json:"stock" binding:"min=0"`
	InStock       *bool            `json:"inStock"` // выводится из stock, значение клиента игнорируется
	Images        []string         `json:"images"`
}

func (CreateProductRequest) RequiredMessage() string { return "Name and price are required" }

func (r CreateProductRequest) Input() service.ProductInput {
	return service.ProductInput{
		Name:          r.Name,
		Description:   r.Description,
		Price:         *r.Price,
		OriginalPrice: r.OriginalPrice,
		Category:      r.Category,
		Material:      r.Material,
		Color:         r.Color,
		Size:          r.Size,
		Quantity:      r.Quantity,
		Stock:         r.Stock,
		Images:        r.Images,
	}
}

type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Category      *string          `json:"category"`
	Material      *string          `json:"material"`
	Color         *string          `json:"color"`
	Size          *string          `json:"size"`
	Quantity      *string          `json:"quantity"`
	Stock         *int             `json:"stock" binding:"omitempty,min=0"`
	InStock       *bool            `json:"inStock"`
	Images        []string         `json:"images"`
}

func (r UpdateProductRequest) Patch() service.ProductPatch {
	return service.ProductPatch{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Category:      r.Category,
		Material:      r.Material,
		Color:         r.Color,
		Size:          r.Size,
		Quantity:      r.Quantity,
		Stock:         r.Stock,
		Images:        r.Images,
	}
}

type ProductResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"originalPrice"`
	Category      string    `json:"category"`
	Material      string    `json:"material"`
	Color         string    `json:"color"`
	Size          string    `json:"size"`
	Quantity      string    `json:"quantity"`
	Stock         int       `json:"stock"`
	InStock       bool      `json:"inStock"`
	Images        []string  `json:"images"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func money(d decimal.Decimal) float64 { return d.Round(2).InexactFloat64() }

func nullMoney(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	v := money(d.Decimal)
	return &v
}

func strs(a []string) []string {
	if a == nil {
		return []string{}
	}
	return a
}

func NewProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         money(p.Price),
		OriginalPrice: nullMoney(p.OriginalPrice),
		Category:      p.Category,
		Material:      p.Material,
		Color:         p.Color,
		Size:          p.Size,
		Quantity:      p.Quantity,
		Stock:         p.Stock,
		InStock:       p.InStock(),
		Images:        strs(p.Images),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func NewProductList(list []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for i := range list {
		out = append(out, NewProductResponse(&list[i]))
	}
	return out
}

// ---- classes ----

type CreateClassRequest struct {
	Title       string           `json:"title" binding:"required,notblank"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Spots       int              `json:"spots" binding:"min=0"`
	SpotsLeft   *int             `json:"spotsLeft" binding:"omitempty,min=0"`
	Date        string           `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time        string           `json:"time"`
	Duration    string           `json:"duration"`
	Type        string           `json:"type"`
	Image       string           `json:"image"`
}

func (CreateClassRequest) RequiredMessage() string { return "Title and price are required" }

func (r CreateClassRequest) Input() service.ClassInput {
	return service.ClassInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       *r.Price,
		Spots:       r.Spots,
		SpotsLeft:   r.SpotsLeft,
		Date:        r.Date,
		Time:        r.Time,
		Duration:    r.Duration,
		Type:        r.Type,
		Image:       r.Image,
	}
}

type UpdateClassRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Spots       *int             `json:"spots" binding:"omitempty,min=0"`
	SpotsLeft   *int             `json:"spotsLeft" binding:"omitempty,min=0"`
	Date        *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time        *string          `json:"time"`
	Duration    *string          `json:"duration"`
	Type        *string          `json:"type"`
	Image       *string          `json:"image"`
}

func (r UpdateClassRequest) Patch() service.ClassPatch {
	return service.ClassPatch{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Spots:       r.Spots,
		SpotsLeft:   r.SpotsLeft,
		Date:        r.Date,
		Time:        r.Time,
		Duration:    r.Duration,
		Type:        r.Type,
		Image:       r.Image,
	}
}

type ClassResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Spots       int       `json:"spots"`
	SpotsLeft   int       `json:"spotsLeft"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Duration    string    `json:"duration"`
	Type        string    `json:"type"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewClassResponse(c *models.ClassOffering) ClassResponse {
	return ClassResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Price:       money(c.Price),
		Spots:       c.Spots,
		SpotsLeft:   c.SpotsLeft,
		Date:        c.Date,
		Time:        c.Time,
		Duration:    c.Duration,
		Type:        c.Type,
		Image:       c.Image,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewClassList(list []models.ClassOffering) []ClassResponse {
	out := make([]ClassResponse, 0, len(list))
	for i := range list {
		out = append(out, NewClassResponse(&list[i]))
	}
	return out
}
