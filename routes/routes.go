package routes

import (
	"net/http"

	"storefront/controllers"
	"storefront/metrics"
	"storefront/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Tokens    middleware.TokenValidator
	Auth      controllers.AuthService
	Users     controllers.UserService
	Products  controllers.ProductService
	Favorites controllers.FavoriteService
	Carts     controllers.CartService
	Checkout  controllers.CheckoutService
	Orders    controllers.OrderService

	OriginURL string
	// UploadDir is served under /uploads when set.
	UploadDir string
}

func NewRouter(deps Dependencies) *gin.Engine {
	controllers.RegisterValidation()

	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.CORSMiddleware(deps.OriginURL),
	)

	SetupRoutes(router, deps)
	return router
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authCtrl := controllers.NewAuthController(deps.Auth)
	userCtrl := controllers.NewUserController(deps.Users)
	productCtrl := controllers.NewProductController(deps.Products)
	favoriteCtrl := controllers.NewFavoriteController(deps.Favorites)
	cartCtrl := controllers.NewCartController(deps.Carts)
	checkoutCtrl := controllers.NewCheckoutController(deps.Checkout)
	orderCtrl := controllers.NewOrderController(deps.Orders)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.POST("/register", authCtrl.Register)
	router.POST("/login", authCtrl.Login)
	router.GET("/users", userCtrl.GetAllUsers)
	router.GET("/users/:id", userCtrl.GetUserByID)
	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)
	router.POST("/webhooks/stripe", checkoutCtrl.StripeWebhook)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware(deps.Tokens))
	{
		auth.PUT("/user/:id", userCtrl.UpdateUser)
		auth.DELETE("/user/:id", userCtrl.DeleteUser)

		auth.POST("/products", productCtrl.CreateProduct)
		auth.PUT("/products/:id", productCtrl.UpdateProduct)
		auth.DELETE("/products/:id", productCtrl.DeleteProduct)
		auth.POST("/products/:id/image", productCtrl.UploadProductImage)

		auth.GET("/favorites", favoriteCtrl.GetFavorites)
		auth.POST("/favorites", favoriteCtrl.ToggleFavorite)
		auth.DELETE("/favorites/:product_id", favoriteCtrl.RemoveFavorite)

		auth.GET("/shopping-cart", cartCtrl.GetCart)
		auth.POST("/shopping-cart", cartCtrl.AddToCart)
		auth.PUT("/shopping-cart/:product_id", cartCtrl.UpdateCartItem)
		auth.DELETE("/shopping-cart/:product_id", cartCtrl.RemoveCartItem)

		auth.POST("/create-checkout-session", checkoutCtrl.CreateCheckoutSession)

		auth.GET("/orders", orderCtrl.GetOrders)
		auth.GET("/orders/:id", orderCtrl.GetOrderByID)
		auth.PATCH("/checkouts/:id/status", orderCtrl.UpdateCheckoutStatus)
	}

	if deps.UploadDir != "" {
		router.Static("/uploads", deps.UploadDir)
	}
}
