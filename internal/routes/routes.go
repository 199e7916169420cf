package routes

import (
	"time"

	"github.com/ahmed123456787/recipe-api/internal/config"
	"github.com/ahmed123456787/recipe-api/internal/handlers"
	"github.com/ahmed123456787/recipe-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	recipeHandler *handlers.RecipeHandler,
	tagHandler *handlers.TagHandler,
	ingredientHandler *handlers.IngredientHandler,
) {
	api := app.Group("/api")

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Auth — public endpoints get a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Auth — protected (JWT required), applied per route so the public auth
	// routes stay public
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)
	api.Patch("/auth/me", middleware.JWTProtected(cfg), authHandler.UpdateMe)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Recipes (JWT required)
	recipes := api.Group("/recipes", middleware.JWTProtected(cfg))
	recipes.Get("/", recipeHandler.List)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/:id", recipeHandler.Get)
	recipes.Put("/:id", recipeHandler.Put)
	recipes.Patch("/:id", recipeHandler.Patch)
	recipes.Delete("/:id", recipeHandler.Delete)
	recipes.Post("/:id/image", recipeHandler.UploadImage)

	// Tags (JWT required)
	tags := api.Group("/tags", middleware.JWTProtected(cfg))
	tags.Get("/", tagHandler.List)
	tags.Post("/", tagHandler.Create)
	tags.Get("/:id", tagHandler.Get)
	tags.Put("/:id", tagHandler.Update)
	tags.Patch("/:id", tagHandler.Update)
	tags.Delete("/:id", tagHandler.Delete)

	// Ingredients (JWT required)
	ingredients := api.Group("/ingredients", middleware.JWTProtected(cfg))
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Post("/", ingredientHandler.Create)
	ingredients.Get("/:id", ingredientHandler.Get)
	ingredients.Put("/:id", ingredientHandler.Update)
	ingredients.Patch("/:id", ingredientHandler.Update)
	ingredients.Delete("/:id", ingredientHandler.Delete)
}
