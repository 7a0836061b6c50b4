package handler

import (
	"go-gudang/internal/middleware"
	"go-gudang/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	itemService service.ItemService
}

func NewItemHandler(s service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: s}
}

// GET /items
func (h *ItemHandler) GetItems(c *fiber.Ctx) error {
	items, err := h.itemService.GetItems(middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// POST /items
func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	var req service.ItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	item, err := h.itemService.CreateItem(middleware.UserID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// PUT /items/:id
func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req service.ItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	item, err := h.itemService.UpdateItem(id, middleware.UserID(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// DELETE /items/:id
func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.itemService.DeleteItem(id, middleware.UserID(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Deleted"})
}
