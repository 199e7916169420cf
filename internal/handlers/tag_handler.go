package handlers

import (
	"errors"

	"github.com/ahmed123456787/recipe-api/internal/dto"
	"github.com/ahmed123456787/recipe-api/internal/owner"
	"github.com/ahmed123456787/recipe-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type TagHandler struct {
	tagService *services.TagService
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// List handles GET /tags with the optional assigned_only parameter.
func (h *TagHandler) List(c *fiber.Ctx) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	assignedOnly, err := services.ParseAssignedOnly(c.Query("assigned_only"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	tags, err := h.tagService.List(userID, assignedOnly)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch tags",
		})
	}

	resp := make([]dto.TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = dto.TagResponse{ID: t.ID, Name: t.Name}
	}
	return c.JSON(resp)
}

func (h *TagHandler) Create(c *fiber.Ctx) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.NamedEntityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, err)
	}

	tag, err := h.tagService.Create(userID, req.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create tag",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.TagResponse{ID: tag.ID, Name: tag.Name})
}

func (h *TagHandler) Get(c *fiber.Ctx) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid tag ID",
		})
	}

	tag, err := h.tagService.Get(userID, id)
	if err != nil {
		if errors.Is(err, services.ErrTagNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Tag not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch tag",
		})
	}

	return c.JSON(dto.TagResponse{ID: tag.ID, Name: tag.Name})
}

// Update handles both PUT and PATCH /tags/:id; the only mutable field is the
// name, so they coincide.
func (h *TagHandler) Update(c *fiber.Ctx) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid tag ID",
		})
	}

	var req dto.NamedEntityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, err)
	}

	tag, err := h.tagService.Update(userID, id, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrTagNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Tag not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update tag",
		})
	}

	return c.JSON(dto.TagResponse{ID: tag.ID, Name: tag.Name})
}

func (h *TagHandler) Delete(c *fiber.Ctx) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid tag ID",
		})
	}

	if err := h.tagService.Delete(userID, id); err != nil {
		if errors.Is(err, services.ErrTagNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Tag not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete tag",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
