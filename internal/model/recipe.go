package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is the single entity the system manages. IDs are opaque strings
// assigned by whichever store persists the record; CreatedAt only exists to
// keep the collection sorted newest-first and survives updates unchanged.
type Recipe struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Summary      string    `gorm:"type:text" json:"summary"`
	Time         *int      `json:"time"`
	Category     string    `gorm:"size:100" json:"category"`
	Ingredients  string    `gorm:"type:text;not null" json:"ingredients"`
	Instructions string    `gorm:"type:text;not null" json:"instructions"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID so postgres and sqlite behave identically
// without relying on a server-side default.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// IngredientLines returns one entry per non-blank line of the ingredients
// text, trimmed.
func (r *Recipe) IngredientLines() []string {
	return splitLines(r.Ingredients)
}

// InstructionSteps returns the ordered, non-blank instruction lines, trimmed.
func (r *Recipe) InstructionSteps() []string {
	return splitLines(r.Instructions)
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Draft carries the user-editable fields of a recipe. Stores assign ID and
// CreatedAt; a Draft never contains either.
type Draft struct {
	Title        string `json:"title"`
	Summary      string `json:"summary"`
	Time         *int   `json:"time"`
	Category     string `json:"category"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

// Missing reports which required fields are blank, in a fixed order.
// Required fields are title, ingredients and instructions.
func (d Draft) Missing() []string {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Ingredients) == "" {
		missing = append(missing, "ingredients")
	}
	if strings.TrimSpace(d.Instructions) == "" {
		missing = append(missing, "instructions")
	}
	return missing
}

// Apply copies the draft fields onto a recipe, leaving ID and CreatedAt
// untouched.
func (d Draft) Apply(r *Recipe) {
	r.Title = d.Title
	r.Summary = d.Summary
	r.Time = d.Time
	r.Category = d.Category
	r.Ingredients = d.Ingredients
	r.Instructions = d.Instructions
}

// DraftOf extracts the editable fields of a recipe, used to pre-populate the
// edit form.
func DraftOf(r Recipe) Draft {
	return Draft{
		Title:        r.Title,
		Summary:      r.Summary,
		Time:         r.Time,
		Category:     r.Category,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}
