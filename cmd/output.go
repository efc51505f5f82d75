package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/otaku/internal/catalog"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type column struct {
	title string
	width int
	value func(int, catalog.Item) string
}

var itemColumns = []column{
	{"#", 4, func(i int, _ catalog.Item) string { return strconv.Itoa(i + 1) }},
	{"Title", 44, func(_ int, it catalog.Item) string { return it.Title }},
	{"Type", 6, func(_ int, it catalog.Item) string { return string(it.Kind) }},
	{"Year", 5, func(_ int, it catalog.Item) string { return yearText(it.Year) }},
	{"Score", 6, func(_ int, it catalog.Item) string { return ratingText(it.Rating) }},
	{"Status", 10, func(_ int, it catalog.Item) string { return string(it.Status) }},
	{"Genres", 30, func(_ int, it catalog.Item) string { return strings.Join(it.Genres, ", ") }},
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110"))

	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))

	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("161"))
)

func yearText(year int) string {
	if year <= 0 {
		return "-"
	}
	return strconv.Itoa(year)
}

func ratingText(rating float64) string {
	if rating <= 0 {
		return "-"
	}
	return strconv.FormatFloat(rating, 'f', 2, 64)
}

// cell pads or cuts value to exactly width columns.
func cell(value string, width int) string {
	runes := []rune(strings.Join(strings.Fields(value), " "))
	if len(runes) > width {
		runes = append(runes[:width-1], '…')
	}
	return lipgloss.NewStyle().Width(width).Render(string(runes))
}

func writeItemsTable(w io.Writer, items []catalog.Item) error {
	header := make([]string, len(itemColumns))
	for i, col := range itemColumns {
		header[i] = cell(col.title, col.width)
	}
	if _, err := fmt.Fprintln(w, tableHeaderStyle.Render(strings.Join(header, " "))); err != nil {
		return err
	}

	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "  (no results)")
		return err
	}

	for i, item := range items {
		row := make([]string, len(itemColumns))
		for c, col := range itemColumns {
			row[c] = cell(col.value(i, item), col.width)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(row, " "), " ")); err != nil {
			return err
		}
	}
	return nil
}

// writeStructured encodes v as indented JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func kindList(kinds []catalog.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
