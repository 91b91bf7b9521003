package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/christopherklint97/planr/internal/allocator"
	"github.com/christopherklint97/planr/internal/tui"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest free slots for pending tasks and add the ones you pick",
	RunE:  withApp(runSuggest),
}

func init() {
	suggestCmd.Flags().Bool("json", false, "Print the plan as JSON and exit")
	suggestCmd.Flags().Bool("print", false, "Print the plan and exit without picking")
	suggestCmd.Flags().Bool("select", false, "Choose which pending tasks to plan first")
	suggestCmd.Flags().BoolP("yes", "y", false, "Book the first free slot for every task and day without prompting")
}

func runSuggest(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	printOnly, _ := cmd.Flags().GetBool("print")
	selectTasks, _ := cmd.Flags().GetBool("select")
	autoBook, _ := cmd.Flags().GetBool("yes")

	window, err := a.cfg.WorkingWindow()
	if err != nil {
		return err
	}

	tasks, err := a.tasks.Pending(ctx, a.owner)
	if err != nil {
		return err
	}

	if selectTasks && len(tasks) > 0 {
		picker := tui.NewTaskPickerApp(tasks)
		if _, err := tea.NewProgram(picker).Run(); err != nil {
			return fmt.Errorf("running TUI: %w", err)
		}
		result := picker.GetResult()
		if result == nil || result.Canceled {
			fmt.Println("Canceled.")
			return nil
		}
		tasks = result.Tasks
	}

	week, err := a.bookings.Week(ctx, a.owner)
	if err != nil {
		return err
	}

	today := time.Now()
	plan := allocator.AllocateWeek(tasks, week, window, today, a.cfg.AllocatorOptions())
	doc := allocator.NewDocument(a.owner, tasks, plan, window, today)

	a.logger.Debug("plan computed", "tasks", len(tasks), "bookings", len(week.All()))

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	if printOnly || len(doc.Tasks) == 0 {
		fmt.Print(tui.RenderPlan(doc))
		return nil
	}

	if autoBook {
		report, err := allocator.Commit(ctx, a.bookings, a.owner, allocator.AutoSelect(doc))
		fmt.Print(tui.RenderCommit(report))
		return err
	}

	picker := tui.NewPickerApp(doc)
	if _, err := tea.NewProgram(picker).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	result := picker.GetResult()
	if result == nil || result.Canceled {
		fmt.Println("Canceled, nothing added.")
		return nil
	}

	report, err := allocator.Commit(ctx, a.bookings, a.owner, result.Selections)
	fmt.Print(tui.RenderCommit(report))
	return err
}
