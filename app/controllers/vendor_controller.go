package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/VendoraHQ/Vendora/app/repository"
	"github.com/VendoraHQ/Vendora/internal/pkg/tiers"
)

// VendorController handles public vendor profile requests
type VendorController struct {
	vendors repository.VendorRepository
	subs    tiers.SubscriptionSource
}

// NewVendorController creates a new vendor controller with its dependencies
func NewVendorController(vendors repository.VendorRepository, subs tiers.SubscriptionSource) *VendorController {
	return &VendorController{
		vendors: vendors,
		subs:    subs,
	}
}

// Global vendor controller instance
var vendorController *VendorController

// InitializeVendorController initializes the global vendor controller with repositories
func InitializeVendorController() {
	repos := repository.GetGlobalRepositories()
	vendorController = NewVendorController(repos.Vendor, repos.Subscription)
}

// GetVendorController returns the global vendor controller instance
func GetVendorController() *VendorController {
	if vendorController == nil {
		InitializeVendorController()
	}
	return vendorController
}

// HandleVendorShow - Adapter for the public vendor profile endpoint
func HandleVendorShow(c *fiber.Ctx) error {
	return GetVendorController().HandleShow(c)
}

// HandleShow serves GET /api/v1/vendors/:id: one active vendor annotated with
// its resolved directory tier. Pending and suspended vendors read as not
// found so their existence does not leak.
func (vc *VendorController) HandleShow(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid vendor id",
		})
	}

	vendor, err := vc.vendors.GetByID(uint(id))
	if err != nil || vendor == nil || !vendor.IsActive() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "vendor not found",
		})
	}

	// Same resolution as the directory ranking, so the profile always shows
	// the tier the vendor is listed under right now
	assignments, err := tiers.ResolveAssignments(c.Context(), vc.subs, time.Now())
	if err != nil {
		log.Errorf("[Vendor] tier resolution failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "failed to load vendor profile",
		})
	}

	tier := assignments.AnnotationFor(vendor.ID)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"vendor":        vendor,
			"tier_name":     tier.Key,
			"tier_label":    tier.Label,
			"tier_priority": tier.Priority,
		},
	})
}
