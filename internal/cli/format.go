package cli

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

const (
	iconProgress  = "🔄"
	iconCompleted = "✅"
	iconOverdue   = "⚠️"
	iconHigh      = "🔴"
	iconMedium    = "🟡"
	iconLow       = "🟢"
)

func statusTitle(s model.Status) string {
	switch s {
	case model.StatusProgress:
		return "In Progress"
	case model.StatusCompleted:
		return "Completed"
	case model.StatusOverdue:
		return "Over-Due"
	}
	return string(s)
}

func statusIcon(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return iconCompleted
	case model.StatusOverdue:
		return iconOverdue
	}
	return iconProgress
}

func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return iconHigh + " High"
	case model.PriorityMedium:
		return iconMedium + " Medium"
	case model.PriorityLow:
		return iconLow + " Low"
	}
	return string(p)
}

func formatTask(task model.Task) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s", priorityLabel(task.Priority), normalizeTitle(task.Title)))
	if c := strings.TrimSpace(task.Category); c != "" {
		b.WriteString(fmt.Sprintf(" (%s)", c))
	}
	b.WriteString(fmt.Sprintf("\n   📅 %s %s · 📎 %s · #%s\n", formatDate(task.Date), task.Time, task.Progress, task.ID))
	if d := strings.TrimSpace(task.Description); d != "" {
		b.WriteString(fmt.Sprintf("   📝 %s\n", shortText(d, 80)))
	}
	return b.String()
}

func formatTaskDetail(task model.Task) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n", normalizeTitle(task.Title)))
	b.WriteString(fmt.Sprintf("  ID:          %s\n", task.ID))
	b.WriteString(fmt.Sprintf("  Status:      %s %s\n", statusIcon(task.Status), statusTitle(task.Status)))
	b.WriteString(fmt.Sprintf("  Priority:    %s\n", priorityLabel(task.Priority)))
	b.WriteString(fmt.Sprintf("  Category:    %s\n", task.Category))
	b.WriteString(fmt.Sprintf("  Due:         %s %s\n", formatLongDate(task.Date), task.Time))
	b.WriteString(fmt.Sprintf("  Progress:    %s\n", task.Progress))
	b.WriteString(fmt.Sprintf("  Created:     %s\n", task.CreatedAt.Local().Format("2006-01-02 15:04")))
	if task.Description != "" {
		b.WriteString(fmt.Sprintf("\n%s\n", task.Description))
	}
	return b.String()
}

func formatSummary(s service.Summary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 Board report · %s\n\n", s.GeneratedAt.Format("2006-01-02 15:04")))
	for _, status := range model.Statuses {
		b.WriteString(fmt.Sprintf("%s %-12s %d\n", statusIcon(status), statusTitle(status), s.Counts[status]))
	}
	b.WriteString(fmt.Sprintf("   %-12s %d\n", "Total", s.Total()))

	b.WriteString("\n⏰ Past due, still in progress\n")
	if len(s.PastDue) == 0 {
		b.WriteString("   — nothing past due\n")
	}
	for _, pd := range s.PastDue {
		b.WriteString(fmt.Sprintf("%s %s · due %s · #%s\n", iconOverdue, normalizeTitle(pd.Task.Title), pd.Due.Format("2006-01-02 15:04"), pd.Task.ID))
	}
	return b.String()
}

// formatDate renders a stored date as "Jan 2"; unparseable dates are shown verbatim.
func formatDate(date string) string {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Jan 2")
}

func formatLongDate(date string) string {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Monday, January 2, 2006")
}

func normalizeTitle(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	runes := []rune(value)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func shortText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
