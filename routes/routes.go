package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tech-shop/config"
	"tech-shop/controllers"
	"tech-shop/middleware"
	"tech-shop/repositories"
	"tech-shop/services"
)

func SetupRoutes(router *gin.Engine, mailer services.Mailer) {
	userRepo := repositories.NewUserRepository()
	productRepo := repositories.NewProductRepository()
	cartRepo := repositories.NewCartRepository()
	orderRepo := repositories.NewOrderRepository()
	dashboardRepo := repositories.NewDashboardRepository()
	resetTokenRepo := repositories.NewResetTokenRepository()

	authCtrl := controllers.NewAuthController(services.NewAuthService(userRepo, resetTokenRepo, mailer))
	userCtrl := controllers.NewUserController(services.NewUserService(userRepo))
	productCtrl := controllers.NewProductController(services.NewProductService(productRepo))
	cartCtrl := controllers.NewCartController(services.NewCartService(cartRepo, productRepo))
	orderCtrl := controllers.NewOrderController(services.NewOrderService(orderRepo, cartRepo, userRepo, mailer))
	dashboardCtrl := controllers.NewDashboardController(services.NewDashboardService(dashboardRepo, config.RedisClient))
	uploadCtrl := controllers.NewUploadController()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := router.Group("/api")

	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)
	api.POST("/auth/forgot-password", authCtrl.ForgotPassword)
	api.POST("/auth/reset-password", authCtrl.ResetPassword)

	api.GET("/products", productCtrl.GetProducts)
	api.GET("/products/search", productCtrl.SearchProducts)
	api.GET("/products/:id", productCtrl.GetProductByID)

	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/account", authCtrl.GetAccount)
		auth.POST("/auth/change-password", authCtrl.ChangePassword)

		auth.GET("/users/:id", userCtrl.GetUserByID)
		auth.PUT("/users/update-profile", userCtrl.UpdateProfile)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.DELETE("/cart", cartCtrl.ClearCart)
		auth.POST("/cart/add", cartCtrl.AddToCart)
		auth.PUT("/cart/items/:id", cartCtrl.UpdateCartItem)
		auth.DELETE("/cart/items/:id", cartCtrl.RemoveCartItem)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetOrders)
		auth.GET("/orders/:id", orderCtrl.GetOrderByID)
		auth.PUT("/orders/:id/cancel", orderCtrl.CancelOrder)

		auth.POST("/upload/img", uploadCtrl.UploadImages)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", dashboardCtrl.GetDashboard)

		admin.GET("/users", userCtrl.GetUsers)
		admin.POST("/users", userCtrl.CreateUser)
		admin.PUT("/users", userCtrl.UpdateUser)
		admin.DELETE("/users/:id", userCtrl.DeleteUser)
	}

	adminOrders := api.Group("/orders")
	adminOrders.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		adminOrders.GET("/all", orderCtrl.GetAllOrders)
		adminOrders.PUT("/:id/status", orderCtrl.UpdateOrderStatus)
	}

	adminProducts := api.Group("/products")
	adminProducts.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		adminProducts.POST("", productCtrl.CreateProduct)
		adminProducts.PUT("/:id", productCtrl.UpdateProduct)
		adminProducts.DELETE("/:id", productCtrl.DeleteProduct)
	}

	router.Static("/uploads", config.AppConfig.UploadDir)
}
