package router

import (
	"net/http"
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/dto"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/handlers"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/middleware"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// IdentityService реализуется *identity.Service.
type IdentityService interface {
	middleware.Authenticator
	handlers.AccountService
}

// Services нужны HTTP-слою.
type Services struct {
	Identity       IdentityService
	Catalog        *service.CatalogService
	Bookings       *service.BookingService
	Orders         *service.OrderService
	CustomRequests *service.CustomRequestService
	Contact        *service.ContactService
	Uploads        *service.UploadService
}

type Options struct {
	CORSOrigins    []string
	UploadMaxBytes int64
	HealthDeps     map[string]handlers.Pinger
	Swagger        bool
}

func Router(svc Services, opt Options, log *zap.Logger) *gin.Engine {
	dto.Setup()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestLogger(log), gin.Recovery())
	r.Use(cors.New(corsConfig(opt.CORSOrigins)))

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewMethodNotAllowedError())
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("Not found"))
	})

	if opt.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	r.GET("/health", handlers.NewHealthHandler(opt.HealthDeps, log).Health)

	gate := middleware.NewGate(svc.Identity, log)
	admin := gate.RequireAdmin()

	api := r.Group("/api")

	authHandler := handlers.NewAuthHandler(svc.Identity, log)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", admin, authHandler.Me)
		auth.POST("/register", admin, authHandler.Register)
		auth.POST("/customer-signup", authHandler.CustomerSignUp)
		auth.POST("/customer-login", authHandler.CustomerLogin)
		auth.GET("/customer-me", gate.RequireAuth(), authHandler.Me)
	}

	catalog := handlers.NewCatalogHandler(svc.Catalog, log)
	categories := api.Group("/categories")
	{
		categories.GET("", catalog.ListCategories)
		categories.POST("", admin, catalog.CreateCategory)
		categories.GET("/:id", catalog.GetCategory)
		categories.PUT("/:id", admin, catalog.UpdateCategory)
		categories.DELETE("/:id", admin, catalog.DeleteCategory)
	}
	products := api.Group("/products")
	{
		products.GET("", catalog.ListProducts)
		products.POST("", admin, catalog.CreateProduct)
		products.GET("/:id", catalog.GetProduct)
		products.PUT("/:id", admin, catalog.UpdateProduct)
		products.DELETE("/:id", admin, catalog.DeleteProduct)
	}
	classes := api.Group("/classes")
	{
		classes.GET("", catalog.ListClasses)
		classes.POST("", admin, catalog.CreateClass)
		classes.GET("/:id", catalog.GetClass)
		classes.PUT("/:id", admin, catalog.UpdateClass)
		classes.DELETE("/:id", admin, catalog.DeleteClass)
	}

	mountOwned(api.Group("/bookings"), gate, handlers.NewBookingHandler(svc.Bookings, gate, log))
	mountOwned(api.Group("/orders"), gate, handlers.NewOrderHandler(svc.Orders, gate, log))
	mountOwned(api.Group("/custom-requests"), gate, handlers.NewCustomRequestHandler(svc.CustomRequests, gate, log))

	contact := handlers.NewContactHandler(svc.Contact, gate, log)
	messages := api.Group("/contact-messages")
	{
		messages.GET("", contact.List)
		messages.POST("", contact.Create)
		messages.GET("/:id", admin, contact.Get)
		messages.PUT("/:id", admin, contact.Update)
		messages.DELETE("/:id", admin, contact.Delete)
	}

	uploads := handlers.NewUploadHandler(svc.Uploads, opt.UploadMaxBytes, log)
	// картинки прикладывают и покупатели (эскизы к индивидуальным заказам)
	api.POST("/upload", gate.RequireAuth(), uploads.Upload)
	api.GET("/uploads/:name", uploads.Serve)

	return r
}

// ownedResource — заявки покупателя: список по владельцу, создание гостем,
// чтение владельцем, изменение и удаление только админом.
type ownedResource interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func mountOwned(g *gin.RouterGroup, gate *middleware.Gate, h ownedResource) {
	g.GET("", h.List)
	g.POST("", gate.Optional(), h.Create)
	g.GET("/:id", gate.RequireAuth(), h.Get)
	g.PUT("/:id", gate.RequireAdmin(), h.Update)
	g.DELETE("/:id", gate.RequireAdmin(), h.Delete)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
