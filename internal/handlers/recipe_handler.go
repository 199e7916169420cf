package handlers

import (
	"errors"

	"github.com/ahmed123456787/recipe-api/internal/dto"
	"github.com/ahmed123456787/recipe-api/internal/owner"
	"github.com/ahmed123456787/recipe-api/internal/services"
	"github.com/ahmed123456787/recipe-api/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type RecipeHandler struct {
	recipeService *services.RecipeService
	images        *storage.ImageStore
}

func NewRecipeHandler(recipeService *services.RecipeService, images *storage.ImageStore) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, images: images}
}

// List handles GET /recipes with optional tags= and ingredients= id filters.
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var filter services.RecipeFilter
	if filter.TagIDs, err = services.ParseIDList(c.Query("tags")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	if filter.IngredientIDs, err = services.ParseIDList(c.Query("ingredients")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	recipes, err := h.recipeService.List(userID, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch recipes",
		})
	}

	return c.JSON(dto.NewRecipeList(recipes))
}

// Create handles POST /recipes.
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, err)
	}

	recipe, err := h.recipeService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create recipe",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewRecipeDetail(recipe))
}

// Get handles GET /recipes/:id.
func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid recipe ID",
		})
	}

	recipe, err := h.recipeService.Get(userID, id)
	if err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Recipe not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch recipe",
		})
	}

	return c.JSON(dto.NewRecipeDetail(recipe))
}

// Put handles PUT /recipes/:id, a full update: required scalars must be
// supplied. Association semantics are shared with Patch.
func (h *RecipeHandler) Put(c *fiber.Ctx) error {
	return h.update(c, true)
}

// Patch handles PATCH /recipes/:id, a partial update: absent fields are left
// untouched, a present-but-empty tag/ingredient list clears that dimension.
func (h *RecipeHandler) Patch(c *fiber.Ctx) error {
	return h.update(c, false)
}

func (h *RecipeHandler) update(c *fiber.Ctx, full bool) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid recipe ID",
		})
	}

	var req dto.UpdateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, err)
	}
	if full {
		fields := map[string]string{}
		if req.Title == nil {
			fields["Title"] = "failed on required"
		}
		if req.TimeMinutes == nil {
			fields["TimeMinutes"] = "failed on required"
		}
		if req.Price == nil {
			fields["Price"] = "failed on required"
		}
		if len(fields) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Validation failed", Fields: fields,
			})
		}
	}

	recipe, err := h.recipeService.Update(userID, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Recipe not found",
			})
		}
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update recipe",
		})
	}

	return c.JSON(dto.NewRecipeDetail(recipe))
}

// Delete handles DELETE /recipes/:id.
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid recipe ID",
		})
	}

	if err := h.recipeService.Delete(userID, id); err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Recipe not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete recipe",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadImage handles POST /recipes/:id/image with a multipart "image" field.
func (h *RecipeHandler) UploadImage(c *fiber.Ctx) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid recipe ID",
		})
	}

	// Reject before touching the filesystem if the recipe isn't ours.
	if _, err := h.recipeService.Get(userID, id); err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Recipe not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch recipe",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Image file is required",
		})
	}
	if file.Size > 10*1024*1024 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Image size must be less than 10MB",
		})
	}

	rel, err := h.images.SaveRecipeImage(file)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid image format. Only JPEG, PNG, GIF and WebP are allowed",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save image",
		})
	}

	recipe, err := h.recipeService.SetImage(userID, id, rel)
	if err != nil {
		h.images.Remove(rel)
		if errors.Is(err, services.ErrRecipeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Recipe not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to attach image",
		})
	}

	return c.JSON(dto.NewRecipeDetail(recipe))
}
