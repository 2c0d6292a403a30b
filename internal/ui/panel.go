package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/roomtodo/internal/model"
)

// RenderPanel draws todos in a framed box for non-interactive output.
// newestFirst mirrors the home screen, which shows the latest todo on top.
func RenderPanel(todos []model.Todo, newestFirst bool) string {
	t := Current()

	lines := []string{header(len(todos)), ""}
	if len(todos) == 0 {
		lines = append(lines, t.Muted.Render("no todos"))
	}
	for _, td := range ordered(todos, newestFirst) {
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			t.Muted.Render(fmt.Sprintf("#%-3d", td.ID)),
			truncate(td.Title, 80),
			t.Date.Render(td.Date),
		))
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	return panelString(strings.Join(lines, "\n"))
}

func panelString(inner string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(inner)
}

func header(total int) string {
	t := Current()
	return fmt.Sprintf("%s   %s %d", t.Title.Render("Todos"), t.Accent.Render("Total"), total)
}

// ordered returns a copy of todos, reversed when newestFirst.
func ordered(todos []model.Todo, newestFirst bool) []model.Todo {
	out := make([]model.Todo, len(todos))
	copy(out, todos)
	if newestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
