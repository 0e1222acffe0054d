package app

import (
	"strings"

	"recipebox/internal/model"
)

// Filter returns the recipes whose title or category contains the query as a
// case-insensitive substring, preserving order. A blank query returns the
// input unchanged. Records without a category simply don't match on it.
func Filter(recipes []model.Recipe, query string) []model.Recipe {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return recipes
	}

	var out []model.Recipe
	for _, r := range recipes {
		if strings.Contains(strings.ToLower(r.Title), query) ||
			strings.Contains(strings.ToLower(r.Category), query) {
			out = append(out, r)
		}
	}
	return out
}
