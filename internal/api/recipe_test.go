package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/model"
	"recipebox/internal/server"
	"recipebox/internal/store/filestore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	s, err := filestore.Open(filepath.Join(t.TempDir(), "recipes.json"))
	require.NoError(t, err)
	return server.NewRouter(s)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createRecipe(t *testing.T, router *gin.Engine, body map[string]any) model.Recipe {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/recipes", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var recipe model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
	return recipe
}

func TestCreateAndListTomatoSoup(t *testing.T) {
	router := testRouter(t)

	createRecipe(t, router, map[string]any{
		"title": "Older", "ingredients": "a", "instructions": "b",
	})
	recipe := createRecipe(t, router, map[string]any{
		"title":        "Tomato Soup",
		"ingredients":  "Tomato\nSalt",
		"instructions": "Boil\nBlend",
		"time":         20,
		"category":     "Soup",
	})

	assert.NotEmpty(t, recipe.ID)
	assert.Equal(t, "Tomato Soup", recipe.Title)
	require.NotNil(t, recipe.Time)
	assert.Equal(t, 20, *recipe.Time)

	w := doJSON(t, router, http.MethodGet, "/api/recipes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var recipes []model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
	require.Len(t, recipes, 2)

	// The new record appears exactly once and first.
	got := recipes[0]
	assert.Equal(t, recipe.ID, got.ID)
	assert.Equal(t, "Tomato Soup", got.Title)
	assert.Equal(t, "Tomato\nSalt", got.Ingredients)
	assert.Equal(t, "Boil\nBlend", got.Instructions)
	assert.Equal(t, "Soup", got.Category)
	assert.Equal(t, 20, *got.Time)
}

func TestListEmptyIsJSONArray(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/recipes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCreateMissingRequiredFields(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/recipes", map[string]any{
		"title": "No substance",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error   string   `json:"error"`
		Missing []string `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"ingredients", "instructions"}, body.Missing)
	assert.Contains(t, body.Error, "missing required fields")
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	router := testRouter(t)

	recipe := createRecipe(t, router, map[string]any{
		"title": "Old", "ingredients": "a", "instructions": "b",
	})

	w := doJSON(t, router, http.MethodPut, "/api/recipes", map[string]any{
		"id": recipe.ID, "title": "New", "ingredients": "a", "instructions": "b",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, recipe.ID, updated.ID)
	assert.Equal(t, "New", updated.Title)
	assert.True(t, updated.CreatedAt.Equal(recipe.CreatedAt))
}

func TestUpdateUnknownID(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/recipes", map[string]any{
		"id": "ghost", "title": "x", "ingredients": "a", "instructions": "b",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateWithoutID(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/recipes", map[string]any{
		"title": "x", "ingredients": "a", "instructions": "b",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteThenListExcludes(t *testing.T) {
	router := testRouter(t)

	recipe := createRecipe(t, router, map[string]any{
		"title": "Doomed", "ingredients": "a", "instructions": "b",
	})

	w := doJSON(t, router, http.MethodDelete, "/api/recipes?id="+recipe.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// Deleting again is still success for this backend.
	w = doJSON(t, router, http.MethodDelete, "/api/recipes?id="+recipe.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/recipes", nil)
	var recipes []model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
	assert.Empty(t, recipes)
}

func TestDeleteWithoutID(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodDelete, "/api/recipes", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnsupportedMethod(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPatch, "/api/recipes", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHealthz(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
