package router

import (
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/VendoraHQ/Vendora/app/controllers"
	apiv1 "github.com/VendoraHQ/Vendora/internal/api/v1"
	"github.com/VendoraHQ/Vendora/internal/pkg/cache"
	"github.com/VendoraHQ/Vendora/internal/pkg/env"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// Initialize controllers with repositories
	controllers.InitializeDirectoryController()
	controllers.InitializeCategoryController()
	controllers.InitializeVendorController()

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        rateLimitMax(),
		Expiration: 1 * time.Minute,
		Storage:    newLimiterStorage(),
		KeyGenerator: func(c *fiber.Ctx) string {
			return controllers.ClientIP(c)
		},
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Vendora API",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	apiServer := apiv1.NewAPIServer()
	apiv1.RegisterHandlers(v1, apiServer)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

// rateLimitMax reads the per-minute request allowance from the environment
func rateLimitMax() int {
	if v, err := strconv.Atoi(env.GetEnv("RATE_LIMIT_PER_MINUTE", "")); err == nil && v > 0 {
		return v
	}
	return 120
}

// newLimiterStorage builds Redis-backed limiter storage so counters survive
// restarts and are shared between instances. Reuses the cache connection
// settings but a separate database (cache uses DB 0).
func newLimiterStorage() *redis.Storage {
	host := "localhost"
	port := 6379
	password := env.GetEnv("CACHE_PASSWORD", "")
	if cacheClient := cache.GetClient(); cacheClient != nil {
		addr := cacheClient.Options().Addr
		if h, p, err := net.SplitHostPort(addr); err == nil {
			host = h
			if v, err := strconv.Atoi(p); err == nil {
				port = v
			}
		}
		// Prefer password from the underlying client if present
		if p := cacheClient.Options().Password; p != "" {
			password = p
		}
	}

	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Database: 1, // Separate database for rate limiting
		Reset:    false,
	})
}
