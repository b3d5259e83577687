package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/iley/goat/internal/ast"
	"github.com/iley/goat/internal/types"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

type styles struct {
	title lipgloss.Style
	key   lipgloss.Style
	err   lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{title: plain, key: plain, err: plain}
	}
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		key:   lipgloss.NewStyle().Foreground(colorMuted),
		err:   lipgloss.NewStyle().Foreground(colorError),
	}
}

func (s styles) writeStats(w io.Writer, name string, stats ast.Stats) {
	fmt.Fprintln(w, s.title.Render(name))
	s.writeRow(w, 1, "depth", stats.Depth)
	s.writeRow(w, 1, "identifiers", stats.Identifiers)

	fmt.Fprintln(w, s.key.Render("  nodes"))
	kinds := make([]string, 0, len(stats.Nodes))
	for kind := range stats.Nodes {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		s.writeRow(w, 2, kind, stats.Nodes[kind])
	}

	if len(stats.Literals) == 0 {
		return
	}
	fmt.Fprintln(w, s.key.Render("  literals"))
	for _, tag := range types.Tags() {
		if n, ok := stats.Literals[tag]; ok {
			s.writeRow(w, 2, tag.String(), n)
		}
	}
}

func (s styles) writeRow(w io.Writer, indent int, key string, value int) {
	pad := fmt.Sprintf("%*s", indent*2, "")
	fmt.Fprintf(w, "%s%s %d\n", pad, s.key.Render(fmt.Sprintf("%-12s", key)), value)
}
