package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/VendoraHQ/Vendora/app/repository"
	"github.com/VendoraHQ/Vendora/internal/pkg/cache"
	"github.com/VendoraHQ/Vendora/internal/pkg/constants"
	"github.com/VendoraHQ/Vendora/internal/pkg/database"
	"github.com/VendoraHQ/Vendora/internal/pkg/env"
	"github.com/VendoraHQ/Vendora/internal/pkg/router"
	"github.com/VendoraHQ/Vendora/internal/pkg/statistics"
	"github.com/VendoraHQ/Vendora/internal/pkg/worker"
)

func main() {
	app := NewApplication()

	// background maintenance: impression flushes, statistics refresh,
	// subscription expiry sweep
	worker.GetManager().Start()
	statistics.ResetCacheUpdateTimer()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	worker.GetManager().Stop()
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/vendora to project root
		"../../../", // Fallback
	}

	// Find the correct base path
	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "public/docs"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	if basePath == "" {
		panic("Could not find project root directory")
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName: "Vendora",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: constants.DocsBasePath,
		FilePath: basePath + constants.DocsFilePath,
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	return app
}
