package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"recipebox/internal/model"
	"recipebox/internal/tui/styles"
)

const (
	fieldTitle = iota
	fieldSummary
	fieldTime
	fieldCategory
	fieldIngredients
	fieldInstructions
	fieldCount
)

// recipeForm is the add/edit form: four single-line inputs and two
// multi-line areas, with tab cycling focus between them.
type recipeForm struct {
	inputs  [4]textinput.Model
	areas   [2]textarea.Model
	focused int
}

func newRecipeForm() *recipeForm {
	f := &recipeForm{}

	labels := [4]string{"Title", "Summary", "Time (minutes)", "Category"}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 255
		in.Width = 40
		f.inputs[i] = in
	}

	for i := range f.areas {
		ta := textarea.New()
		ta.SetWidth(44)
		ta.SetHeight(4)
		f.areas[i] = ta
	}
	f.areas[0].Placeholder = "One ingredient per line"
	f.areas[1].Placeholder = "One step per line"

	f.inputs[0].Focus()
	return f
}

// Populate fills the form from a draft, used when opening in edit mode.
func (f *recipeForm) Populate(d model.Draft) {
	f.inputs[fieldTitle].SetValue(d.Title)
	f.inputs[fieldSummary].SetValue(d.Summary)
	if d.Time != nil {
		f.inputs[fieldTime].SetValue(strconv.Itoa(*d.Time))
	} else {
		f.inputs[fieldTime].SetValue("")
	}
	f.inputs[fieldCategory].SetValue(d.Category)
	f.areas[0].SetValue(d.Ingredients)
	f.areas[1].SetValue(d.Instructions)
	f.setFocus(fieldTitle)
}

// Reset blanks every field, so a closed edit form never leaks into a later
// add.
func (f *recipeForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	for i := range f.areas {
		f.areas[i].SetValue("")
	}
	f.setFocus(fieldTitle)
}

// Draft reads the current field values. The time field becomes nil when
// blank; a non-numeric value is reported as invalid.
func (f *recipeForm) Draft() (model.Draft, bool) {
	d := model.Draft{
		Title:        f.inputs[fieldTitle].Value(),
		Summary:      f.inputs[fieldSummary].Value(),
		Category:     f.inputs[fieldCategory].Value(),
		Ingredients:  f.areas[0].Value(),
		Instructions: f.areas[1].Value(),
	}
	if raw := strings.TrimSpace(f.inputs[fieldTime].Value()); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return d, false
		}
		d.Time = &n
	}
	return d, true
}

func (f *recipeForm) NextField() {
	f.setFocus((f.focused + 1) % fieldCount)
}

func (f *recipeForm) PrevField() {
	f.setFocus((f.focused + fieldCount - 1) % fieldCount)
}

func (f *recipeForm) setFocus(idx int) {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	for i := range f.areas {
		f.areas[i].Blur()
	}
	f.focused = idx
	if idx < len(f.inputs) {
		f.inputs[idx].Focus()
	} else {
		f.areas[idx-len(f.inputs)].Focus()
	}
}

// Update forwards the message to the focused field.
func (f *recipeForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focused < len(f.inputs) {
		f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	} else {
		f.areas[f.focused-len(f.inputs)], cmd = f.areas[f.focused-len(f.inputs)].Update(msg)
	}
	return cmd
}

func (f *recipeForm) View() string {
	var b strings.Builder
	labels := []string{"Title *", "Summary", "Time (minutes)", "Category", "Ingredients *", "Instructions *"}

	for i := range f.inputs {
		b.WriteString(styles.InputLabel.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	for i := range f.areas {
		b.WriteString(styles.InputLabel.Render(labels[len(f.inputs)+i]))
		b.WriteString("\n")
		b.WriteString(f.areas[i].View())
		b.WriteString("\n")
	}
	return b.String()
}
