package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/VendoraHQ/Vendora/app/models"
	"github.com/VendoraHQ/Vendora/app/repository"
)

// CategoryController handles public category requests
type CategoryController struct {
	categories repository.CategoryRepository
}

// NewCategoryController creates a new category controller with its dependencies
func NewCategoryController(categories repository.CategoryRepository) *CategoryController {
	return &CategoryController{categories: categories}
}

// Global category controller instance
var categoryController *CategoryController

// InitializeCategoryController initializes the global category controller with repositories
func InitializeCategoryController() {
	categoryController = NewCategoryController(repository.GetGlobalRepositories().Category)
}

// GetCategoryController returns the global category controller instance
func GetCategoryController() *CategoryController {
	if categoryController == nil {
		InitializeCategoryController()
	}
	return categoryController
}

// HandleCategoryIndex - Adapter for the public category tree endpoint
func HandleCategoryIndex(c *fiber.Ctx) error {
	return GetCategoryController().HandleIndex(c)
}

// categoryNode is one category with its active micro-categories nested below
type categoryNode struct {
	models.Category
	Children []categoryNode `json:"children,omitempty"`
}

// HandleIndex serves GET /api/v1/categories: all active categories as a
// two-level tree, micro-categories nested under their parents.
func (cc *CategoryController) HandleIndex(c *fiber.Ctx) error {
	cats, err := cc.categories.GetActive()
	if err != nil {
		log.Errorf("[Categories] listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "failed to load categories",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    buildCategoryTree(cats),
	})
}

// buildCategoryTree nests child categories under their parents. Children
// whose parent is inactive or missing are dropped, the slug resolver would
// not serve them either.
func buildCategoryTree(cats []models.Category) []categoryNode {
	children := make(map[uint][]models.Category)
	for _, cat := range cats {
		if cat.ParentID != nil {
			children[*cat.ParentID] = append(children[*cat.ParentID], cat)
		}
	}

	tree := make([]categoryNode, 0, len(cats))
	for _, cat := range cats {
		if cat.ParentID != nil {
			continue
		}
		node := categoryNode{Category: cat}
		for _, child := range children[cat.ID] {
			node.Children = append(node.Children, categoryNode{Category: child})
		}
		tree = append(tree, node)
	}

	return tree
}
