// Package cli provides styled terminal output and interactive input helpers.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/installmart/internal/model"
)

var (
	// PrimaryColor is the main theme color (brand green).
	PrimaryColor = lipgloss.Color("#2EB872")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// AccentColor highlights prices and other figures.
	AccentColor = lipgloss.Color("#F9A826") // Amber
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// PriceStyle formats money amounts.
	PriceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon     = "✓"
	ErrorIcon       = "✗"
	WarningIcon     = "⚠️"
	InfoIcon        = "ℹ️"
	StoreIcon       = "🛒"
	HouseIcon       = "🏠"
	BankIcon        = "🏦"
	ApplicationIcon = "📋"
	StarIcon        = "★"
	EmptyStarIcon   = "☆"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the store icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(StoreIcon + " " + title)
}

// FormatTitleWithIcon formats a title with a custom icon.
func FormatTitleWithIcon(icon, title string) string {
	return TitleStyle.Render(icon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}

// FormatPrice renders an amount in rupees, e.g. "Rs 1,500,000".
// Zero renders as a dash.
func FormatPrice(amount float64) string {
	if amount == 0 {
		return SubtleStyle.Render("-")
	}
	return PriceStyle.Render(Money(amount))
}

// FormatStars renders a 1 to 5 rating as filled and empty stars.
func FormatStars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return WarningStyle.Render(strings.Repeat(StarIcon, rating)) +
		SubtleStyle.Render(strings.Repeat(EmptyStarIcon, 5-rating))
}

// FormatStatus colors an application status by how it turned out.
func FormatStatus(status model.Status, raw string) string {
	label := string(status)
	if status == model.StatusUnknown && raw != "" {
		label = raw
	}
	switch status {
	case model.StatusApproved, model.StatusCompleted:
		return SuccessStyle.Render(label)
	case model.StatusRejected, model.StatusCancelled:
		return ErrorStyle.Render(label)
	case model.StatusPending, model.StatusInProgress:
		return WarningStyle.Render(label)
	default:
		return SubtleStyle.Render(label)
	}
}
