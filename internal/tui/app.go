// Package tui renders the recipe collection as cards in the terminal, with
// the add/edit form, action chooser and detail view as modal overlays.
// Mouse long-press on a card opens the action chooser, mirroring the
// press-and-hold gesture of the touch UI.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"recipebox/internal/app"
	"recipebox/internal/model"
	"recipebox/internal/store"
	"recipebox/internal/tui/styles"
)

const opTimeout = 10 * time.Second

type (
	snapshotMsg     struct{ snap store.Snapshot }
	pressExpiredMsg struct{ token int }
	submitDoneMsg   struct{ err error }
	deleteDoneMsg   struct{ err error }
	refreshDoneMsg  struct{}
)

// cardRegion maps a rendered card back to the terminal rows it occupies,
// for mouse hit-testing.
type cardRegion struct {
	id          string
	top, bottom int
}

// Model is the bubbletea model for the whole UI.
type Model struct {
	ctrl *app.Controller

	search    textinput.Model
	searching bool
	form      *recipeForm
	press     pressTracker

	cursor        int
	confirmDelete bool
	timeErr       bool

	visible []model.Recipe
	regions []cardRegion

	width  int
	height int
}

// New builds the UI over a started controller.
func New(ctrl *app.Controller) *Model {
	search := textinput.New()
	search.Placeholder = "Search recipes..."
	search.CharLimit = 100
	search.Width = 36

	return &Model{
		ctrl:   ctrl,
		search: search,
		form:   newRecipeForm(),
	}
}

// Run starts the program with mouse support enabled.
func Run(ctrl *app.Controller) error {
	p := tea.NewProgram(New(ctrl), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitSnapshot(), textinput.Blink)
}

// waitSnapshot blocks on the feed until the next snapshot arrives.
func (m *Model) waitSnapshot() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snap: <-m.ctrl.Snapshots()}
	}
}

func (m *Model) longPressTimer(token int) tea.Cmd {
	return tea.Tick(longPressThreshold, func(time.Time) tea.Msg {
		return pressExpiredMsg{token: token}
	})
}

func (m *Model) submitCmd(draft model.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return submitDoneMsg{err: m.ctrl.Submit(ctx, draft)}
	}
}

func (m *Model) deleteCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return deleteDoneMsg{err: m.ctrl.Delete(ctx, true)}
	}
}

func (m *Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		m.ctrl.Refresh(ctx)
		return refreshDoneMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		m.ctrl.Apply(msg.snap)
		m.clampCursor()
		return m, m.waitSnapshot()

	case refreshDoneMsg:
		m.clampCursor()
		return m, nil

	case pressExpiredMsg:
		if id, ok := m.press.expire(msg.token); ok && m.ctrl.Modal() == app.ModalClosed {
			m.ctrl.LongPress(id)
			m.confirmDelete = false
		}
		return m, nil

	case submitDoneMsg:
		if msg.err == nil {
			m.form.Reset()
			m.timeErr = false
		}
		return m, nil

	case deleteDoneMsg:
		m.confirmDelete = false
		return m, nil
	}

	switch m.ctrl.Modal() {
	case app.ModalForm:
		return m.updateForm(msg)
	case app.ModalAction:
		return m.updateAction(msg)
	case app.ModalDetail:
		return m.updateDetail(msg)
	default:
		return m.updateBrowser(msg)
	}
}

func (m *Model) updateBrowser(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "esc", "enter":
				m.searching = false
				m.search.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.clampCursor()
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "/":
			m.searching = true
			return m, m.search.Focus()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		case "enter", "v":
			if m.cursor < len(m.visible) {
				m.ctrl.OpenDetail(m.visible[m.cursor].ID)
			}
			return m, nil
		case "a":
			m.form.Reset()
			m.ctrl.OpenAdd()
			return m, nil
		case "e":
			// Keyboard stand-in for the long-press gesture.
			if m.cursor < len(m.visible) {
				m.ctrl.LongPress(m.visible[m.cursor].ID)
				m.confirmDelete = false
			}
			return m, nil
		case "r":
			return m, m.refreshCmd()
		}

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m *Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if idx, ok := m.hit(msg.Y); ok {
			m.cursor = idx
			token := m.press.press(m.visible[idx].ID)
			return m, m.longPressTimer(token)
		}
		return m, nil

	case tea.MouseActionRelease:
		if id, held := m.press.held(); held {
			m.press.release()
			// Released before the threshold: a plain click, which is the
			// primary "view" activation.
			m.ctrl.OpenDetail(id)
		}
		return m, nil

	case tea.MouseActionMotion:
		if id, held := m.press.held(); held {
			if idx, ok := m.hit(msg.Y); !ok || m.visible[idx].ID != id {
				// Pointer left the card before the threshold.
				m.press.release()
			}
		}
		return m, nil
	}
	return m, nil
}

// hit maps a terminal row to the index of the card rendered there.
func (m *Model) hit(y int) (int, bool) {
	for i, region := range m.regions {
		if y >= region.top && y <= region.bottom {
			return i, true
		}
	}
	return 0, false
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.ctrl.CloseModal()
			m.form.Reset()
			m.timeErr = false
			return m, nil
		case "tab":
			m.form.NextField()
			return m, nil
		case "shift+tab":
			m.form.PrevField()
			return m, nil
		case "ctrl+s":
			draft, ok := m.form.Draft()
			if !ok {
				m.timeErr = true
				return m, nil
			}
			m.timeErr = false
			return m, m.submitCmd(draft)
		}
	}
	return m, m.form.Update(msg)
}

func (m *Model) updateAction(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirmDelete {
		switch key.String() {
		case "y":
			return m, m.deleteCmd()
		case "n", "esc":
			// Confirmation dismissed: no store call, record stays.
			m.confirmDelete = false
			return m, nil
		}
		return m, nil
	}

	switch key.String() {
	case "e":
		if draft, ok := m.ctrl.ChooseEdit(); ok {
			m.form.Populate(draft)
		}
		return m, nil
	case "d":
		m.confirmDelete = true
		return m, nil
	case "c", "esc":
		m.ctrl.CloseModal()
		return m, nil
	}
	return m, nil
}

func (m *Model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "enter", "q":
			m.ctrl.CloseModal()
		}
	}
	return m, nil
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Visible(m.search.Value()))
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	switch m.ctrl.Modal() {
	case app.ModalForm:
		return m.viewForm()
	case app.ModalAction:
		return m.viewAction()
	case app.ModalDetail:
		return m.viewDetail()
	default:
		return m.viewBrowser()
	}
}

func (m *Model) viewBrowser() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Recipebox"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(helpLine(
		"/", "search", "a", "add", "enter", "view", "e", "actions", "hold-click", "actions", "q", "quit",
	))
	b.WriteString("\n\n")

	header := b.String()
	offset := lipgloss.Height(header) - 1 // trailing newline starts the next row

	if err := m.ctrl.LoadErr(); err != nil {
		b.WriteString(styles.ErrorMsg.Render("Failed to load recipes: " + err.Error()))
		b.WriteString("\n")
		m.visible = nil
		m.regions = nil
		return b.String()
	}

	m.visible = m.ctrl.Visible(m.search.Value())
	m.regions = m.regions[:0]

	if len(m.visible) == 0 {
		if strings.TrimSpace(m.search.Value()) != "" {
			b.WriteString(styles.EmptyMsg.Render(fmt.Sprintf("No recipes found matching %q.", m.search.Value())))
		} else {
			b.WriteString(styles.EmptyMsg.Render("No recipes yet. Press 'a' to add your first one."))
		}
		b.WriteString("\n")
		return b.String()
	}

	selected := m.ctrl.SelectedID()
	for i, recipe := range m.visible {
		card := m.renderCard(recipe, i == m.cursor, recipe.ID == selected)
		h := lipgloss.Height(card)
		m.regions = append(m.regions, cardRegion{
			id:     recipe.ID,
			top:    offset,
			bottom: offset + h - 1,
		})
		offset += h
		b.WriteString(card)
		b.WriteString("\n")
		offset++ // blank line between cards
	}
	return b.String()
}

func (m *Model) renderCard(r model.Recipe, cursor, selected bool) string {
	var meta []string
	if r.Time != nil {
		meta = append(meta, fmt.Sprintf("%d min", *r.Time))
	}
	if r.Category != "" {
		meta = append(meta, r.Category)
	}

	lines := []string{
		styles.CardTitle.Render(r.Title),
		styles.CardSummary.Render(r.Summary),
		styles.CardMeta.Render(strings.Join(meta, "  ·  ")),
		styles.ViewHint.Render("click to view · hold for actions"),
	}
	content := strings.Join(lines, "\n")

	style := styles.Card
	if cursor {
		style = styles.CardCursor
	}
	if selected {
		style = styles.CardSelected
	}
	return style.Width(max(40, m.width-6)).Render(content)
}

func (m *Model) viewForm() string {
	title := "Curate a Recipe"
	submit := "Save Culinary Creation"
	if m.ctrl.FormMode() == app.FormEdit {
		title = "Edit Recipe"
		submit = "Save Changes"
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.form.View())
	if m.timeErr {
		b.WriteString(styles.ErrorMsg.Render("Time must be a number."))
		b.WriteString("\n")
	}
	if err := m.ctrl.FormErr(); err != nil {
		b.WriteString(styles.ErrorMsg.Render("Failed to save recipe: " + err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpLine("ctrl+s", submit, "tab", "next field", "esc", "cancel"))

	return styles.Modal.Render(b.String())
}

func (m *Model) viewAction() string {
	recipe, _ := m.ctrl.Find(m.ctrl.ActiveID())

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(recipe.Title))
	b.WriteString("\n")

	if m.confirmDelete {
		b.WriteString(fmt.Sprintf("Permanently delete %q?\n\n", recipe.Title))
		b.WriteString(helpLine("y", "delete", "n", "keep"))
	} else {
		if err := m.ctrl.ActionErr(); err != nil {
			b.WriteString(styles.ErrorMsg.Render("Failed to delete recipe: " + err.Error()))
			b.WriteString("\n\n")
		}
		b.WriteString(helpLine("e", "edit", "d", "delete", "c", "cancel"))
	}
	return styles.Modal.Render(b.String())
}

func (m *Model) viewDetail() string {
	recipe, ok := m.ctrl.Find(m.ctrl.ActiveID())
	if !ok {
		return styles.Modal.Render(styles.EmptyMsg.Render("This recipe is gone."))
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(recipe.Title))
	b.WriteString("\n")
	if recipe.Summary != "" {
		b.WriteString(recipe.Summary)
		b.WriteString("\n\n")
	}

	var meta []string
	if recipe.Time != nil {
		meta = append(meta, fmt.Sprintf("%d min", *recipe.Time))
	}
	if recipe.Category != "" {
		meta = append(meta, recipe.Category)
	}
	if len(meta) > 0 {
		b.WriteString(styles.CardMeta.Render(strings.Join(meta, "  ·  ")))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.InputLabel.Render("Ingredients"))
	b.WriteString("\n")
	var tags []string
	for _, ing := range recipe.IngredientLines() {
		tags = append(tags, styles.IngredientTag.Render(ing))
	}
	b.WriteString(strings.Join(tags, " "))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Instructions"))
	b.WriteString("\n")
	for i, step := range recipe.InstructionSteps() {
		b.WriteString(styles.StepNumber.Render(fmt.Sprintf("%d. ", i+1)))
		b.WriteString(step)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpLine("esc", "close"))
	return styles.Modal.Render(b.String())
}

func helpLine(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, styles.HelpKey.Render(pairs[i])+" "+styles.HelpDesc.Render(pairs[i+1]))
	}
	return strings.Join(parts, styles.HelpDesc.Render(" • "))
}
