package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pirate444/food-order-app/config"
	"github.com/pirate444/food-order-app/controllers"
	"github.com/pirate444/food-order-app/middleware"
)

// Register wires every endpoint under /api. User routes require a bearer
// token; administrative routes are gated only when ADMIN_ENFORCE is set.
func Register(
	r *gin.Engine,
	cfg config.Config,
	foodController *controllers.FoodController,
	cartController *controllers.CartController,
	orderController *controllers.OrderController,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	api.Use(middleware.RateLimit())

	auth := middleware.AuthMiddleware(cfg.JWTSecret)
	admin := middleware.RequireRole("admin", cfg.JWTSecret, cfg.AdminEnforce)

	foods := api.Group("/foods")
	{
		foods.GET("", foodController.GetAllFoods)
		foods.GET("/:id", foodController.GetFoodByID)
		foods.POST("", admin, foodController.CreateFood)
		foods.PUT("/:id", admin, foodController.UpdateFood)
		foods.DELETE("/:id", admin, foodController.DeleteFood)
	}

	cart := api.Group("/cart")
	cart.Use(auth)
	{
		cart.GET("", cartController.GetCart)
		cart.POST("/add", cartController.AddToCart)
		cart.POST("/remove", cartController.RemoveFromCart)
		cart.POST("/update", cartController.UpdateCartItem)
		cart.POST("/clear", cartController.ClearCart)
	}

	orders := api.Group("/orders")
	{
		orders.POST("", auth, orderController.CreateOrder)
		orders.GET("", auth, orderController.GetUserOrders)
		orders.GET("/admin/all", admin, orderController.GetAllOrders)
		orders.GET("/:id", auth, orderController.GetOrderByID)
		orders.PUT("/:id", admin, orderController.UpdateOrderStatus)
	}

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Server is running"})
	})
}
