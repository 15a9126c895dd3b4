package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/VendoraHQ/Vendora/app/controllers"
)

// Pong is the response payload of the ping endpoint
type Pong struct {
	Ping string `json:"ping"`
}

// ServerInterface lists every operation of the public v1 API. The route
// paths live in RegisterHandlers; parameters arrive already extracted.
type ServerInterface interface {
	GetPing(c *fiber.Ctx) error
	GetDirectory(c *fiber.Ctx) error
	GetDirectoryTiers(c *fiber.Ctx) error
	GetDirectoryStats(c *fiber.Ctx) error
	GetCategories(c *fiber.Ctx) error
	GetVendorProfile(c *fiber.Ctx, id string) error
}

// RegisterHandlers attaches all v1 operations to the given router group.
func RegisterHandlers(router fiber.Router, si ServerInterface) {
	router.Get("/ping", si.GetPing)
	router.Get("/directory", si.GetDirectory)
	router.Get("/directory/tiers", si.GetDirectoryTiers)
	router.Get("/directory/stats", si.GetDirectoryStats)
	router.Get("/categories", si.GetCategories)
	router.Get("/vendors/:id", func(c *fiber.Ctx) error {
		return si.GetVendorProfile(c, c.Params("id"))
	})
}

// APIServer implements the ServerInterface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetDirectory serves the tier-ranked product directory with global
// pagination. All filtering, ranking and fallback behavior lives in the
// directory engine behind the controller.
func (s *APIServer) GetDirectory(c *fiber.Ctx) error {
	return controllers.HandleDirectoryIndex(c)
}

// GetDirectoryTiers returns the declared tier catalog (key, label, priority).
func (s *APIServer) GetDirectoryTiers(c *fiber.Ctx) error {
	return controllers.HandleDirectoryTiers(c)
}

// GetDirectoryStats returns cached marketplace statistics.
func (s *APIServer) GetDirectoryStats(c *fiber.Ctx) error {
	return controllers.HandleDirectoryStats(c)
}

// GetCategories returns the active category tree.
func (s *APIServer) GetCategories(c *fiber.Ctx) error {
	return controllers.HandleCategoryIndex(c)
}

// GetVendorProfile returns one public vendor profile with its resolved tier.
// Controller reads id from route params; wrapper already set it.
func (s *APIServer) GetVendorProfile(c *fiber.Ctx, id string) error {
	return controllers.HandleVendorShow(c)
}
