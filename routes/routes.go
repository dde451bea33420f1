package routes

import (
	"posbackend/configs"
	"posbackend/controllers"
	"posbackend/metrics"
	"posbackend/middlewares"
	"posbackend/remote"
	"posbackend/repository"
	"posbackend/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, rc *remote.Client) {
	r.Use(middlewares.CORSMiddleware())
	r.Use(metrics.PrometheusMiddleware())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Repositories
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	tableRepo := repository.NewTableRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	cartSvc := services.NewCartService(db, cartRepo, menuRepo, cfg)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, tableRepo, rc, cfg)
	menuSvc := services.NewMenuService(menuRepo)
	authSvc := services.NewAuthService(userRepo, cfg)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	tableCtrl := controllers.NewTableController(tableRepo)
	adminCtrl := controllers.NewAdminController(orderRepo, rc)

	// Auth (public)
	r.POST("/auth/login", authCtrl.Login)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)

	// Menu
	r.GET("/menu", menuCtrl.List)
	r.GET("/menu/:id", menuCtrl.Detail)
	menuAdmin := r.Group("/menu", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		menuAdmin.POST("", menuCtrl.Create)
		menuAdmin.PATCH("/:id", menuCtrl.Update)
		menuAdmin.DELETE("/:id", menuCtrl.Delete)
	}

	// Carts (one per terminal session)
	carts := r.Group("/carts/:sid", auth)
	{
		carts.GET("", cartCtrl.Get)
		carts.DELETE("", cartCtrl.Clear)
		carts.PUT("/customer", cartCtrl.SetCustomer)
		carts.POST("/items", cartCtrl.Add)
		carts.PATCH("/items/qty", cartCtrl.UpdateQty)
		carts.DELETE("/items", cartCtrl.RemoveItem)
		carts.POST("/items/:itemId/increment", cartCtrl.Increment)
		carts.POST("/items/:itemId/decrement", cartCtrl.Decrement)
		carts.POST("/checkout", orderCtrl.Checkout)
	}

	// Orders
	orders := r.Group("/orders", auth)
	{
		orders.GET("", orderCtrl.List)
		orders.GET("/:id", orderCtrl.Detail)
		orders.PATCH("/:id/status", orderCtrl.UpdateStatus)
		orders.PATCH("/:id/payment", orderCtrl.ConfirmPayment)
	}

	// Tables
	tables := r.Group("/tables", auth)
	{
		tables.GET("", tableCtrl.List)
		tables.PATCH("/:id/status", tableCtrl.UpdateStatus)
	}

	// Admin (admin only)
	admin := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		admin.GET("/dashboard", adminCtrl.Dashboard)
	}
}
