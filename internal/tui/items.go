package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/otaku/internal/catalog"
)

// entry is one result card. Section is set for curated items only.
type entry struct {
	catalog.Item
	Section string
}

func (e entry) Title() string {
	if e.Year > 0 {
		return fmt.Sprintf("%s (%d)", e.Item.Title, e.Year)
	}
	return e.Item.Title
}

func (e entry) FilterValue() string { return e.Item.Title }

func (e entry) Description() string { return e.Item.Description }

type itemStyles struct {
	normal        lipgloss.Style
	selected      lipgloss.Style
	kindStyle     lipgloss.Style
	titleStyle    lipgloss.Style
	ratingStyle   lipgloss.Style
	metadataStyle lipgloss.Style
	overviewStyle lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		kindStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")),
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		ratingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
		overviewStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
	}
}

type itemDelegate struct {
	styles itemStyles
}

func newDelegate() itemDelegate {
	return itemDelegate{styles: newItemStyles()}
}

func (d itemDelegate) Height() int                         { return 5 }
func (d itemDelegate) Spacing() int                        { return 1 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	e, ok := item.(entry)
	if !ok {
		return
	}

	label := fmt.Sprintf("[%s]", strings.ToUpper(string(e.Kind)))
	if e.Section != "" {
		label += " " + e.Section
	}

	kindLine := d.styles.kindStyle.Render(label)
	metadataLine := d.styles.metadataStyle.Render(formatMetadata(e.Item, m.Width()-4))
	titleLine := d.styles.titleStyle.Render(truncate(e.Title(), m.Width()-4))
	ratingLine := d.styles.ratingStyle.Render(formatRating(e.Rating))
	overviewLine := d.styles.overviewStyle.Render(truncate(e.Item.Description, m.Width()-4))

	content := lipgloss.JoinVertical(lipgloss.Left, kindLine, titleLine, metadataLine, ratingLine, overviewLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

func formatRating(rating float64) string {
	if rating <= 0 {
		return "unrated"
	}
	return fmt.Sprintf("%.1f/10", rating)
}

// formatMetadata creates the status and genre line of a card.
func formatMetadata(item catalog.Item, availableWidth int) string {
	parts := []string{string(item.Status)}
	if len(item.Genres) > 0 {
		parts = append(parts, strings.Join(item.Genres, ", "))
	}

	metadata := strings.Join(parts, " | ")
	if availableWidth > 0 && len(metadata) > availableWidth {
		metadata = truncate(metadata, availableWidth)
	}
	return metadata
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if width <= 0 || len(runes) <= width {
		return value
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
