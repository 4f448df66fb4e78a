package handler

import (
	"go-galon-gas/internal/apperr"
	"go-galon-gas/internal/model"
	"go-galon-gas/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.CatalogService
}

func NewProductHandler(s service.CatalogService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GetProducts is the public catalog listing. Optional query filters:
// ?category=galon|gas, ?inStock=true|false, ?popular=true.
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	var (
		products []model.Product
		err      error
	)

	switch {
	case c.Query("category") != "":
		products, err = h.service.GetProductsByCategory(c.Context(), model.ProductCategory(c.Query("category")))
	case c.Query("inStock") != "":
		products, err = h.service.GetProductsByStock(c.Context(), c.QueryBool("inStock"))
	case c.QueryBool("popular"):
		products, err = h.service.GetPopularProducts(c.Context())
	default:
		products, err = h.service.GetAllProducts(c.Context())
	}

	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if product == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(fiber.Map{"product": product})
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateProduct(c.Context(), &product); err != nil {
		if apperr.IsValidation(err) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"product": product})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var update model.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.UpdateProduct(c.Context(), c.Params("id"), &update)
	if err != nil {
		if apperr.IsValidation(err) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if product == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}

	return c.JSON(fiber.Map{"product": product})
}

// UpdateStock toggles the purchasable flag without touching anything else.
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	var req struct {
		InStock *bool `json:"inStock"`
	}
	if err := c.BodyParser(&req); err != nil || req.InStock == nil {
		return c.Status(400).JSON(fiber.Map{"error": "inStock is required"})
	}

	product, err := h.service.UpdateStock(c.Context(), c.Params("id"), *req.InStock)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if product == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}

	return c.JSON(fiber.Map{"product": product})
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if ok := h.service.DeleteProduct(c.Context(), c.Params("id")); !ok {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete product"})
	}
	return c.JSON(fiber.Map{"success": true})
}
