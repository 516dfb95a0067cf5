package handlers

import (
	"net/http"
	"strconv"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/dto"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog *service.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(catalog *service.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// ---- categories ----

// ListCategories godoc
// @Summary Список категорий
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	list, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryList(list))
}

// GetCategory godoc
// @Summary Категория по id
// @Tags categories
// @Produce json
// @Param id path string true "ID категории"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseID(c, "Category not found")
	if !ok {
		return
	}
	cat, err := h.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryResponse(cat))
}

// CreateCategory godoc
// @Summary Создание категории
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body dto.CreateCategoryRequest true "Категория"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Нет имени или имя занято"
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	cat, err := h.catalog.CreateCategory(c.Request.Context(), req.Input())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCategoryResponse(cat))
}

// UpdateCategory godoc
// @Summary Частичное изменение категории
// @Description Не переданные поля сохраняют текущее значение
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID категории"
// @Param category body dto.UpdateCategoryRequest true "Изменения"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "Category not found")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	cat, err := h.catalog.UpdateCategory(c.Request.Context(), id, req.Patch())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryResponse(cat))
}

// DeleteCategory godoc
// @Summary Удаление категории
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID категории"
// @Success 200 {object} dto.DeletedResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "Category not found")
	if !ok {
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeletedResponse{Deleted: true})
}

// ---- products ----

// ListProducts godoc
// @Summary Каталог товаров
// @Tags products
// @Produce json
// @Param category query string false "Категория"
// @Param search query string false "Поиск по названию, описанию, материалу"
// @Param inStock query bool false "Только в наличии / только без остатка"
// @Param limit query int false "Лимит"
// @Param offset query int false "Смещение"
// @Success 200 {array} dto.ProductResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	f := service.ProductListFilter{
		Category: c.Query("category"),
		Query:    c.Query("search"),
	}
	if raw := c.Query("inStock"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewBadRequestError("inStock must be true or false"))
			return
		}
		f.InStock = &v
	}
	f.Limit, _ = strconv.Atoi(c.Query("limit"))
	f.Offset, _ = strconv.Atoi(c.Query("offset"))

	list, err := h.catalog.ListProducts(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductList(list))
}

// GetProduct godoc
// @Summary Товар по id
// @Tags products
// @Produce json
// @Param id path string true "ID товара"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "Product not found")
	if !ok {
		return
	}
	p, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(p))
}

// CreateProduct godoc
// @Summary Создание товара
// @Description price принимается строкой или числом; inStock вычисляется из stock
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body dto.CreateProductRequest true "Товар"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /api/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	p, err := h.catalog.CreateProduct(c.Request.Context(), req.Input())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewProductResponse(p))
}

// UpdateProduct godoc
// @Summary Частичное изменение товара
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Param product body dto.UpdateProductRequest true "Изменения"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "Product not found")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	p, err := h.catalog.UpdateProduct(c.Request.Context(), id, req.Patch())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(p))
}

// DeleteProduct godoc
// @Summary Удаление товара
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Success 200 {object} dto.DeletedResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "Product not found")
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeletedResponse{Deleted: true})
}

// ---- classes ----

// ListClasses godoc
// @Summary Расписание занятий
// @Description Сортировка по дате по возрастанию
// @Tags classes
// @Produce json
// @Param type query string false "Тип занятия"
// @Param upcoming query bool false "Только с сегодняшней даты"
// @Success 200 {array} dto.ClassResponse
// @Router /api/classes [get]
func (h *CatalogHandler) ListClasses(c *gin.Context) {
	upcoming, _ := strconv.ParseBool(c.Query("upcoming"))
	list, err := h.catalog.ListClasses(c.Request.Context(), c.Query("type"), upcoming)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewClassList(list))
}

// GetClass godoc
// @Summary Занятие по id
// @Tags classes
// @Produce json
// @Param id path string true "ID занятия"
// @Success 200 {object} dto.ClassResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/classes/{id} [get]
func (h *CatalogHandler) GetClass(c *gin.Context) {
	id, ok := parseID(c, "Class not found")
	if !ok {
		return
	}
	cl, err := h.catalog.GetClass(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewClassResponse(cl))
}

// CreateClass godoc
// @Summary Создание занятия
// @Description spotsLeft по умолчанию равно spots
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param class body dto.CreateClassRequest true "Занятие"
// @Success 201 {object} dto.ClassResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/classes [post]
func (h *CatalogHandler) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	cl, err := h.catalog.CreateClass(c.Request.Context(), req.Input())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewClassResponse(cl))
}

// UpdateClass godoc
// @Summary Частичное изменение занятия
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID занятия"
// @Param class body dto.UpdateClassRequest true "Изменения"
// @Success 200 {object} dto.ClassResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/classes/{id} [put]
func (h *CatalogHandler) UpdateClass(c *gin.Context) {
	id, ok := parseID(c, "Class not found")
	if !ok {
		return
	}
	var req dto.UpdateClassRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	cl, err := h.catalog.UpdateClass(c.Request.Context(), id, req.Patch())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewClassResponse(cl))
}

// DeleteClass godoc
// @Summary Удаление занятия
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID занятия"
// @Success 200 {object} dto.DeletedResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/classes/{id} [delete]
func (h *CatalogHandler) DeleteClass(c *gin.Context) {
	id, ok := parseID(c, "Class not found")
	if !ok {
		return
	}
	if err := h.catalog.DeleteClass(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeletedResponse{Deleted: true})
}
