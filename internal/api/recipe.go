package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipebox/internal/model"
	"recipebox/internal/store"
)

// RecipeHandler exposes the recipe CRUD surface on a single endpoint path.
type RecipeHandler struct {
	store store.Store
}

func NewRecipeHandler(s store.Store) *RecipeHandler {
	return &RecipeHandler{store: s}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes", h.ListRecipes)
	router.POST("/recipes", h.CreateRecipe)
	router.PUT("/recipes", h.UpdateRecipe)
	router.DELETE("/recipes", h.DeleteRecipe)
}

// ListRecipes returns the full collection, newest-first, as a bare JSON
// array.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch recipes",
			"details": err.Error(),
		})
		return
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var draft model.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if missing := draft.Missing(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   (&store.ValidationError{Missing: missing}).Error(),
			"missing": missing,
		})
		return
	}

	recipe, err := h.store.Create(c.Request.Context(), draft)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create recipe",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe takes the id in the body alongside the replacement fields.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
		model.Draft
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	if missing := req.Draft.Missing(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   (&store.ValidationError{Missing: missing}).Error(),
			"missing": missing,
		})
		return
	}

	recipe, err := h.store.Update(c.Request.Context(), req.ID, req.Draft)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update recipe",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe takes the id as a query parameter.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete recipe",
			"details": err.Error(),
		})
		return
	}
	c.Status(http.StatusNoContent)
}
