package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"drivo-backend/internal/config"
	infraCache "drivo-backend/internal/infrastructure/cache"
	"drivo-backend/internal/infrastructure/database"
	"drivo-backend/internal/infrastructure/email"
	"drivo-backend/internal/infrastructure/storage"
	"drivo-backend/pkg/cache"
	"drivo-backend/pkg/jwt"

	"drivo-backend/internal/domains/geocode"
	geocodeHandler "drivo-backend/internal/domains/geocode/handler"
	geocodeService "drivo-backend/internal/domains/geocode/service"
	"drivo-backend/internal/domains/payment"
	paymentHandler "drivo-backend/internal/domains/payment/handler"
	paymentRepo "drivo-backend/internal/domains/payment/repository"
	paymentService "drivo-backend/internal/domains/payment/service"
	"drivo-backend/internal/domains/profile"
	profileHandler "drivo-backend/internal/domains/profile/handler"
	profileRepo "drivo-backend/internal/domains/profile/repository"
	profileService "drivo-backend/internal/domains/profile/service"
	"drivo-backend/internal/domains/review"
	reviewHandler "drivo-backend/internal/domains/review/handler"
	reviewRepo "drivo-backend/internal/domains/review/repository"
	reviewService "drivo-backend/internal/domains/review/service"
	"drivo-backend/internal/domains/ride"
	rideHandler "drivo-backend/internal/domains/ride/handler"
	rideRepo "drivo-backend/internal/domains/ride/repository"
	rideService "drivo-backend/internal/domains/ride/service"
	"drivo-backend/internal/domains/user"
	userHandler "drivo-backend/internal/domains/user/handler"
	userRepo "drivo-backend/internal/domains/user/repository"
	userService "drivo-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is
// a singleton living for the process lifetime.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Storage    *storage.MinIOStorage
	EmailSvc   email.EmailService

	// Repositories
	UserRepo    user.Repository
	ProfileRepo profile.Repository
	RideRepo    ride.Repository
	PaymentRepo payment.Repository
	ReviewRepo  review.Repository

	// Services
	UserService    user.Service
	ProfileService profile.Service
	RideService    ride.Service
	PaymentService payment.Service
	ReviewService  review.Service
	GeocodeService geocode.Service

	// Handlers
	UserHandler    *userHandler.UserHandler
	ProfileHandler *profileHandler.ProfileHandler
	RideHandler    *rideHandler.RideHandler
	PaymentHandler *paymentHandler.PaymentHandler
	ReviewHandler  *reviewHandler.ReviewHandler
	GeocodeHandler *geocodeHandler.GeocodeHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the whole graph in dependency order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// STEP 1: CONFIGURATION
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[Container] Config loaded (environment: %s)", cfg.App.Environment)

	// STEP 2: DATABASE
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("[Container] Database connected")

	// STEP 3: CACHE
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			// the geocode cache and resend throttle degrade without it,
			// nothing hard-fails
			log.Printf("[Container] Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("[Container] Redis connected")
		}
	}
	c.Cache = redisCache

	// STEP 4: REMAINING INFRASTRUCTURE
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	c.EmailSvc = email.NewSMTPEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)

	store, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store

	// STEP 5: REPOSITORIES
	pool := c.DB.Pool
	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.ProfileRepo = profileRepo.NewPostgresRepository(pool)
	c.RideRepo = rideRepo.NewPostgresRepository(pool)
	c.PaymentRepo = paymentRepo.NewPostgresRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresRepository(pool)

	// STEP 6: SERVICES
	// ProfileService first: it provisions profiles for UserService and
	// resolves participants for rides, payments and reviews.
	c.ProfileService = profileService.NewProfileService(
		c.ProfileRepo,
		c.Storage,
		storage.NewImageProcessor(),
	)
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.JWTManager,
		c.EmailSvc,
		c.Cache,
		c.ProfileService,
	)
	c.RideService = rideService.NewRideService(c.RideRepo, c.ProfileService)
	c.PaymentService = paymentService.NewPaymentService(c.PaymentRepo, c.RideRepo, c.ProfileService)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.RideRepo, c.ProfileService)

	provider := geocode.NewNominatimProvider(cfg.Geocode.ProviderURL, cfg.Geocode.Timeout)
	c.GeocodeService = geocodeService.NewGeocodeService(
		provider,
		c.Cache,
		geocodeService.TTLsFromConfig(cfg.Geocode),
	)

	// STEP 7: HANDLERS
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.ProfileHandler = profileHandler.NewProfileHandler(c.ProfileService)
	c.RideHandler = rideHandler.NewRideHandler(c.RideService)
	c.PaymentHandler = paymentHandler.NewPaymentHandler(c.PaymentService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
	c.GeocodeHandler = geocodeHandler.NewGeocodeHandler(c.GeocodeService)

	log.Println("[Container] Initialized")
	return c, nil
}

// Cleanup releases the container's external connections.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("[Container] Redis close failed: %v", err)
		}
	}
	log.Println("[Container] Cleaned up")
}
