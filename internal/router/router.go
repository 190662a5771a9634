package router

import (
	"github.com/gin-gonic/gin"

	"github.com/skillora/skillora-backend/config"
	"github.com/skillora/skillora-backend/internal/app/controller"
	"github.com/skillora/skillora-backend/internal/middleware"
)

type Router struct {
	authController    *controller.AuthController
	profileController *controller.ProfileController
	offerController   *controller.OfferController
	orderController   *controller.OrderController
	reviewController  *controller.ReviewController
	statsController   *controller.StatsController
	uploadController  *controller.UploadController
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	profileController *controller.ProfileController,
	offerController *controller.OfferController,
	orderController *controller.OrderController,
	reviewController *controller.ReviewController,
	statsController *controller.StatsController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:    authController,
		profileController: profileController,
		offerController:   offerController,
		orderController:   orderController,
		reviewController:  reviewController,
		statsController:   statsController,
		uploadController:  uploadController,
		authMiddleware:    authMiddleware,
		config:            cfg,
	}
}

// Setup registers all routes. Paths keep the trailing slash the
// frontend was written against; gin redirects the slashless variants.
func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Skillora API is running",
		})
	})

	api := router.Group("/api")
	{
		api.POST("/registration/", r.authController.Register)
		api.POST("/login/", r.authController.Login)

		profile := api.Group("/profile")
		profile.Use(r.authMiddleware.Authenticate())
		{
			profile.GET("/:pk/", r.profileController.GetProfile)
			profile.PATCH("/:pk/", r.profileController.UpdateProfile)
		}

		profiles := api.Group("/profiles")
		profiles.Use(r.authMiddleware.Authenticate())
		{
			profiles.GET("/business/", r.profileController.ListBusinessProfiles)
			profiles.GET("/customer/", r.profileController.ListCustomerProfiles)
		}

		offers := api.Group("/offers")
		{
			// Browsing the catalog is public; everything else needs a token.
			offers.GET("/", r.offerController.GetAllOffers)
			offers.POST("/", r.authMiddleware.Authenticate(), r.offerController.CreateOffer)
			offers.GET("/:id/", r.authMiddleware.Authenticate(), r.offerController.GetOfferByID)
			offers.PATCH("/:id/", r.authMiddleware.Authenticate(), r.offerController.UpdateOffer)
			offers.DELETE("/:id/", r.authMiddleware.Authenticate(), r.offerController.DeleteOffer)
		}

		api.GET("/offerdetails/:id/",
			r.authMiddleware.Authenticate(),
			r.offerController.GetOfferDetailByID,
		)

		orders := api.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("/", r.orderController.GetAllOrders)
			orders.POST("/", r.orderController.CreateOrder)
			orders.GET("/:id/", r.orderController.GetOrderByID)
			orders.PATCH("/:id/", r.orderController.UpdateOrder)
		}

		api.GET("/order-count/:business_user_id/",
			r.authMiddleware.Authenticate(),
			r.orderController.GetOrderCount,
		)
		api.GET("/completed-order-count/:business_user_id/",
			r.authMiddleware.Authenticate(),
			r.orderController.GetCompletedOrderCount,
		)

		reviews := api.Group("/reviews")
		reviews.Use(r.authMiddleware.Authenticate())
		{
			reviews.GET("/", r.reviewController.GetAllReviews)
			reviews.POST("/", r.reviewController.CreateReview)
			reviews.PATCH("/:id/", r.reviewController.UpdateReview)
			reviews.DELETE("/:id/", r.reviewController.DeleteReview)
		}

		api.GET("/base-info/", r.statsController.GetBaseInfo)

		uploads := api.Group("/uploads")
		uploads.Use(r.authMiddleware.Authenticate())
		{
			uploads.POST("/presigned-url/", r.uploadController.PresignUpload)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
