package handlers

import (
	"errors"

	"github.com/ahmed123456787/recipe-api/internal/dto"
	"github.com/ahmed123456787/recipe-api/internal/owner"
	"github.com/ahmed123456787/recipe-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type IngredientHandler struct {
	ingredientService *services.IngredientService
}

func NewIngredientHandler(ingredientService *services.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// List handles GET /ingredients with the optional assigned_only parameter.
func (h *IngredientHandler) List(c *fiber.Ctx) error {
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

	ingredients, err := h.ingredientService.List(userID, assignedOnly)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch ingredients",
		})
	}

	resp := make([]dto.IngredientResponse, len(ingredients))
	for i, in := range ingredients {
		resp[i] = dto.IngredientResponse{ID: in.ID, Name: in.Name}
	}
	return c.JSON(resp)
}

func (h *IngredientHandler) Create(c *fiber.Ctx) error {
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

	ingredient, err := h.ingredientService.Create(userID, req.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create ingredient",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
}

func (h *IngredientHandler) Get(c *fiber.Ctx) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid ingredient ID",
		})
	}

	ingredient, err := h.ingredientService.Get(userID, id)
	if err != nil {
		if errors.Is(err, services.ErrIngredientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Ingredient not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch ingredient",
		})
	}

	return c.JSON(dto.IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
}

// Update handles both PUT and PATCH /ingredients/:id.
func (h *IngredientHandler) Update(c *fiber.Ctx) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid ingredient ID",
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

	ingredient, err := h.ingredientService.Update(userID, id, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrIngredientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Ingredient not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update ingredient",
		})
	}

	return c.JSON(dto.IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
}

func (h *IngredientHandler) Delete(c *fiber.Ctx) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid ingredient ID",
		})
	}

	if err := h.ingredientService.Delete(userID, id); err != nil {
		if errors.Is(err, services.ErrIngredientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Ingredient not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete ingredient",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
