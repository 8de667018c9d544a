package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"drivo-backend/internal/shared/middleware"
	"drivo-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupDriverRoutes(v1, c)
		setupClientRoutes(v1, c)
		setupRideRoutes(v1, c)
		setupPaymentRoutes(v1, c)
		setupReviewRoutes(v1, c)
		setupGeocodeRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.UserHandler.Signup)
		auth.POST("/verify-otp", c.UserHandler.VerifyOTP)
		auth.POST("/resend-otp", c.UserHandler.ResendOTP)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.RefreshToken)

		// availability probes used by the signup form
		auth.GET("/check-email", c.UserHandler.CheckEmail)
		auth.GET("/check-cnic", c.ProfileHandler.CheckCNIC)
		auth.GET("/check-license", c.ProfileHandler.CheckLicense)

		authed := auth.Group("", middleware.AuthMiddleware(c.JWTManager))
		{
			authed.PUT("/role", c.UserHandler.SetRole)
			authed.GET("/me", c.UserHandler.GetMe)
		}
	}
}

// ========================================
// PROFILE ROUTES (role-guarded)
// ========================================
func setupDriverRoutes(v1 *gin.RouterGroup, c *container.Container) {
	drivers := v1.Group("/drivers")
	{
		// public driver reputation
		drivers.GET("/:id/reviews", c.ReviewHandler.GetDriverReviews)

		me := drivers.Group("/me",
			middleware.AuthMiddleware(c.JWTManager),
			middleware.RequireRole("driver"),
		)
		{
			me.GET("", c.ProfileHandler.GetDriverMe)
			me.PUT("", c.ProfileHandler.UpdateDriverMe)
			me.PUT("/location", c.ProfileHandler.UpdateDriverLocation)
		}
	}
}

func setupClientRoutes(v1 *gin.RouterGroup, c *container.Container) {
	me := v1.Group("/clients/me",
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequireRole("client"),
	)
	{
		me.GET("", c.ProfileHandler.GetClientMe)
		me.PUT("", c.ProfileHandler.UpdateClientMe)
		me.PUT("/location", c.ProfileHandler.UpdateClientLocation)
	}
}

// ========================================
// RIDE / PAYMENT / REVIEW ROUTES
// ========================================
func setupRideRoutes(v1 *gin.RouterGroup, c *container.Container) {
	rides := v1.Group("/rides", middleware.AuthMiddleware(c.JWTManager))
	{
		rides.POST("", c.RideHandler.CreateRide)
		rides.GET("", c.RideHandler.ListRides)
		rides.GET("/:id", c.RideHandler.GetRide)
	}
}

func setupPaymentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	payments := v1.Group("/payments", middleware.AuthMiddleware(c.JWTManager))
	{
		payments.POST("", c.PaymentHandler.CreatePayment)
		payments.GET("", c.PaymentHandler.ListPayments)
		payments.GET("/:id", c.PaymentHandler.GetPayment)
	}
}

func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reviews := v1.Group("/reviews", middleware.AuthMiddleware(c.JWTManager))
	{
		reviews.POST("", c.ReviewHandler.CreateReview)
	}
}

// ========================================
// GEOCODE ROUTES
// ========================================
func setupGeocodeRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/geocode", c.GeocodeHandler.Geocode)
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		dbStatus := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "down"
		}

		redisStatus := "up"
		if err := c.Cache.Ping(checkCtx); err != nil {
			redisStatus = "down"
		}

		status := http.StatusOK
		if dbStatus == "down" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"service":     c.Config.App.Name,
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
			"database":    dbStatus,
			"redis":       redisStatus,
		})
	}
}
