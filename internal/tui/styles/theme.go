package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#D97706") // Amber
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	// Card styles
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	CardCursor = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	CardSelected = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	CardTitle = lipgloss.NewStyle().
			Bold(true)

	CardSummary = lipgloss.NewStyle().
			Foreground(Muted)

	CardMeta = lipgloss.NewStyle().
			Foreground(Secondary)

	ViewHint = lipgloss.NewStyle().
			Foreground(Primary).
			Italic(true)

	// Modal styles
	Modal = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Primary).
		Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Detail view
	IngredientTag = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	StepNumber = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Messages
	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	EmptyMsg = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Help line
	HelpKey = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)
)
