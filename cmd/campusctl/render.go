package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/workflow"
)

var (
	accent  = lipgloss.Color("#8BC34A")
	muted   = lipgloss.Color("#8A8F98")
	danger  = lipgloss.Color("#E5534B")
	caution = lipgloss.Color("#D4A72C")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	successStyle = lipgloss.NewStyle().Foreground(accent)
	warningStyle = lipgloss.NewStyle().Foreground(caution)
	errorStyle   = lipgloss.NewStyle().Foreground(danger)
	currentStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func levelStyle(l domain.Level) lipgloss.Style {
	switch l {
	case domain.LevelSuccess:
		return successStyle
	case domain.LevelWarning:
		return warningStyle
	case domain.LevelError:
		return errorStyle
	}
	return mutedStyle
}

func renderNotifications(w io.Writer, notes []domain.Notification) {
	for _, n := range notes {
		fmt.Fprintln(w, levelStyle(n.Level).Render(n.Message))
	}
}

// renderInline prints the per-field messages of a form, sorted by field.
func renderInline(w io.Writer, inline map[string]string) {
	fields := make([]string, 0, len(inline))
	for f := range inline {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintln(w, errorStyle.Render("  "+f+": "+inline[f]))
	}
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// renderControls prints the page selector, e.g. "‹ 1 … 4 [5] 6 … 9 ›".
func renderControls(c workflow.Controls) string {
	parts := make([]string, 0, len(c.Links)+2)
	prev := "‹"
	if c.PrevDisabled {
		prev = mutedStyle.Render(prev)
	}
	parts = append(parts, prev)
	for _, l := range c.Links {
		switch {
		case l.Ellipsis:
			parts = append(parts, mutedStyle.Render("…"))
		case l.Current:
			parts = append(parts, currentStyle.Render("["+strconv.Itoa(l.Page)+"]"))
		default:
			parts = append(parts, strconv.Itoa(l.Page))
		}
	}
	next := "›"
	if c.NextDisabled {
		next = mutedStyle.Render(next)
	}
	parts = append(parts, next)
	return strings.Join(parts, " ")
}

func active(b bool) string {
	if b {
		return "active"
	}
	return "inactive"
}

func quad(coords []domain.Coordinate) string {
	parts := make([]string, 0, len(coords))
	for i, c := range coords {
		parts = append(parts, fmt.Sprintf("%s(%s, %s)", domain.Corner(i), domain.FormatDecimal(c.Lat), domain.FormatDecimal(c.Lng)))
	}
	return strings.Join(parts, " ")
}

func campusRows(campuses []domain.Campus) [][]string {
	rows := make([][]string, 0, len(campuses))
	for _, c := range campuses {
		rows = append(rows, []string{c.ID, c.Name, c.EduMailExtension, domain.FormatDecimal(c.AverageHalfDistance), active(c.IsActive)})
	}
	return rows
}

func zoneRows(zones []domain.Zone) [][]string {
	rows := make([][]string, 0, len(zones))
	for _, z := range zones {
		rows = append(rows, []string{z.ID, z.Name, z.CampusID, z.Description, active(z.IsActive)})
	}
	return rows
}

func riderRows(riders []domain.Rider) [][]string {
	rows := make([][]string, 0, len(riders))
	for _, r := range riders {
		rows = append(rows, []string{r.ID, r.FirstName + " " + r.LastName, r.BikeRegistrationNumber, r.BikeModel, string(r.Status)})
	}
	return rows
}

var (
	campusHeaders = []string{"ID", "Name", "Mail", "Half distance", "Status"}
	zoneHeaders   = []string{"ID", "Name", "Campus", "Description", "Status"}
	riderHeaders  = []string{"ID", "Name", "Registration", "Model", "Status"}
)

func renderList[T any](w io.Writer, title string, view workflow.View[T], headers []string, rows func([]T) [][]string) {
	fmt.Fprintln(w, titleStyle.Render(title))
	if len(view.Rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Nothing to show."))
	} else {
		fmt.Fprintln(w, renderTable(headers, rows(view.Rows)))
	}
	fmt.Fprintln(w, renderControls(view.Controls))
}

// renderDraft prints a draft as aligned key/value lines.
func renderDraft(w io.Writer, d domain.Draft) {
	keys := make([]string, 0, len(d))
	width := 0
	for k := range d {
		keys = append(keys, k)
		if len(k) > width {
			width = len(k)
		}
	}
	sort.Strings(keys)
	label := lipgloss.NewStyle().Foreground(muted).Width(width + 2)
	for _, k := range keys {
		fmt.Fprintln(w, label.Render(k)+d[k])
	}
}
