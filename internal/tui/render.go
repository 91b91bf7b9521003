package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/christopherklint97/planr/internal/allocator"
	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/stats"
	"github.com/christopherklint97/planr/internal/todo"
)

const chartWidth = 30

// RenderWeek lists each day's bookings in start order.
func RenderWeek(week schedule.Week, days []schedule.Weekday) string {
	var sb strings.Builder
	for _, d := range days {
		sb.WriteString(dayStyle.Render("Schedule for " + d.String()))
		sb.WriteString("\n")
		bookings := week.Day(d)
		if len(bookings) == 0 {
			sb.WriteString(dimStyle.Render("  (free)"))
			sb.WriteString("\n")
			continue
		}
		for i, b := range bookings {
			sb.WriteString(fmt.Sprintf("  %d. %s – %s  %s\n", i+1, b.Start, b.End, b.Label))
		}
	}
	return sb.String()
}

// RenderTasks is the to-do table.
func RenderTasks(tasks []todo.Task, today time.Time) string {
	if len(tasks) == 0 {
		return dimStyle.Render("No tasks yet.") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Current To-Do Tasks"))
	sb.WriteString("\n")
	sb.WriteString(subtitleStyle.Render(fmt.Sprintf("  %-3s %-28s %-11s %-12s %-8s %-7s %s",
		"#", "Task", "Deadline", "Status", "Time", "Prio", "Reminder")))
	sb.WriteString("\n")

	for i, t := range tasks {
		deadline := t.Deadline.Format(time.DateOnly)
		if left := t.DaysUntilDeadline(today); left < 0 && t.Status != todo.Completed {
			deadline = errorStyle.Render(deadline)
		}
		reminder := ""
		if t.Reminder {
			reminder = "yes"
		}
		status := lipgloss.NewStyle().Foreground(statusColors[string(t.Status)]).Render(fmt.Sprintf("%-12s", t.Status))
		sb.WriteString(fmt.Sprintf("  %-3d %-28s %-11s %s %-8s %-7s %s\n",
			i+1, truncate(t.Label, 28), deadline, status, todo.FormatMinutes(t.Minutes), t.Priority, reminder))
	}
	return sb.String()
}

// RenderStatusChart draws the task-status breakdown as horizontal bars.
func RenderStatusChart(counts []stats.StatusCount) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("To-Do Task Status Distribution"))
	sb.WriteString("\n")
	if len(counts) == 0 {
		sb.WriteString(dimStyle.Render("  No tasks."))
		sb.WriteString("\n")
		return sb.String()
	}
	for _, c := range counts {
		n := int(math.Round(c.Percent / 100 * chartWidth))
		bar := lipgloss.NewStyle().Foreground(statusColors[string(c.Status)]).Render(strings.Repeat("█", n))
		sb.WriteString(fmt.Sprintf("  %-12s %s %5.1f%% (%d)\n", c.Status, bar, c.Percent, c.Count))
	}
	return sb.String()
}

// RenderHoursChart draws booked hours per weekday.
func RenderHoursChart(days []stats.DayHours) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Weekly Working Time Overview"))
	sb.WriteString("\n")

	total := stats.TotalHours(days)
	if total == 0 {
		sb.WriteString(dimStyle.Render("  No tasks scheduled for the week."))
		sb.WriteString("\n")
		return sb.String()
	}

	peak := 0.0
	for _, d := range days {
		peak = max(peak, d.Hours)
	}
	for _, d := range days {
		n := int(math.Round(d.Hours / peak * chartWidth))
		sb.WriteString(fmt.Sprintf("  %-10s %s %4.1fh\n", d.Day, barStyle.Render(strings.Repeat("█", n)), d.Hours))
	}
	sb.WriteString(subtitleStyle.Render(fmt.Sprintf("  Total: %.1fh", total)))
	sb.WriteString("\n")
	return sb.String()
}

// RenderPlan prints a plan without interaction.
func RenderPlan(doc allocator.Document) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Suggested Schedule"))
	sb.WriteString("\n")
	if len(doc.Tasks) == 0 {
		sb.WriteString(dimStyle.Render("No pending tasks."))
		sb.WriteString("\n")
		return sb.String()
	}
	for _, t := range doc.Tasks {
		sb.WriteString(fmt.Sprintf("Task: %s  %s\n",
			highlightStyle.Render(t.Label),
			dimStyle.Render(fmt.Sprintf("(%s per day, %d days left)", todo.FormatMinutes(t.MinutesPerDay), t.DaysUntilDeadline))))
		for _, d := range t.Days {
			if len(d.Candidates) == 0 {
				sb.WriteString(fmt.Sprintf("  %-10s %s\n", d.Day, dimStyle.Render("no free slot")))
				continue
			}
			var starts []string
			for _, c := range d.Candidates {
				starts = append(starts, fmt.Sprintf("%s - %s", c.Start, c.End()))
			}
			sb.WriteString(fmt.Sprintf("  %-10s %s\n", d.Day, strings.Join(starts, ", ")))
		}
	}
	return sb.String()
}

// RenderCommit reports what was booked and what the store refused.
func RenderCommit(report allocator.CommitReport) string {
	var sb strings.Builder
	if len(report.Booked) > 0 {
		sb.WriteString(successStyle.Render(fmt.Sprintf("Added %d slot(s) to your schedule", len(report.Booked))))
		sb.WriteString("\n")
		for _, b := range report.Booked {
			sb.WriteString(fmt.Sprintf("  %-10s %s – %s  %s\n", b.Day, b.Start, b.End, b.Label))
		}
	}
	for _, r := range report.Rejected {
		sb.WriteString(errorStyle.Render("Skipped: "))
		sb.WriteString(fmt.Sprintf("%s on %s: %v\n", r.Label, r.Candidate.Day, r.Err))
	}
	if len(report.Booked) == 0 && len(report.Rejected) == 0 {
		sb.WriteString(dimStyle.Render("Nothing selected."))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Success and Failure format one-line CLI outcomes.
func Success(msg string) string { return successStyle.Render(msg) }

func Failure(msg string) string { return errorStyle.Render("Error: ") + msg }

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
