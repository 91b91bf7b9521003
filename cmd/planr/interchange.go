package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/christopherklint97/planr/internal/calendar"
	"github.com/christopherklint97/planr/internal/legacy"
	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/tui"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import bookings and tasks from other sources",
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export bookings and tasks",
}

var importICSCmd = &cobra.Command{
	Use:   "ics [source]",
	Short: "Book the timed events of an iCalendar URL or file (default: calendar.source)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  withApp(runImportICS),
}

var exportICSCmd = &cobra.Command{
	Use:   "ics [file]",
	Short: "Write the weekly schedule as recurring iCalendar events (default: stdout)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  withApp(runExportICS),
}

var importCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Import schedule_tasks.csv / todo_tasks.csv from the original planner",
	RunE:  withApp(runImportCSV),
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export schedule_tasks.csv / todo_tasks.csv",
	RunE:  withApp(runExportCSV),
}

func init() {
	importICSCmd.Flags().Int("days", 7, "Number of days from the start of this week to read")

	for _, c := range []*cobra.Command{importCSVCmd, exportCSVCmd} {
		c.Flags().String("schedule", "", "Path of the schedule CSV")
		c.Flags().String("todo", "", "Path of the to-do CSV")
	}
	importCSVCmd.Flags().Bool("any-owner", false, "Import every row as the current owner")

	importCmd.AddCommand(importICSCmd)
	importCmd.AddCommand(importCSVCmd)
	exportCmd.AddCommand(exportICSCmd)
	exportCmd.AddCommand(exportCSVCmd)
}

func runImportICS(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
	source := a.cfg.Calendar.Source
	if len(args) == 1 {
		source = args[0]
	}
	if source == "" {
		return fmt.Errorf("no calendar source: pass one or set calendar.source")
	}
	days, _ := cmd.Flags().GetInt("days")

	start := calendar.WeekOf(time.Now())
	events, err := calendar.Fetch(ctx, source, start, start.AddDate(0, 0, days))
	if err != nil {
		return err
	}

	blocks, skipped := calendar.Blocks(events)
	for _, e := range skipped {
		a.logger.Info("skipping multi-day event", "summary", e.Summary, "start", e.StartTime)
	}

	added := 0
	for _, blk := range blocks {
		_, err := a.bookings.Insert(ctx, a.owner, blk.Day, blk.Start, blk.End, blk.Label)
		switch {
		case err == nil:
			added++
		case errors.Is(err, schedule.ErrOverlap), errors.Is(err, schedule.ErrValidation):
			fmt.Println(tui.Failure(err.Error()))
		default:
			return err
		}
	}

	fmt.Println(tui.Success(fmt.Sprintf("Imported %d of %d event(s)", added, len(events))))
	return nil
}

func runExportICS(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
	week, err := a.bookings.Week(ctx, a.owner)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if len(args) == 1 {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("creating %s: %w", args[0], err)
		}
		defer f.Close()
		w = f
	}
	return calendar.Export(w, week.All(), time.Now())
}

func runImportCSV(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
	schedulePath, _ := cmd.Flags().GetString("schedule")
	todoPath, _ := cmd.Flags().GetString("todo")
	anyOwner, _ := cmd.Flags().GetBool("any-owner")
	if schedulePath == "" && todoPath == "" {
		return fmt.Errorf("pass --schedule and/or --todo")
	}

	mine := func(owner string) bool { return anyOwner || owner == a.owner }

	if schedulePath != "" {
		f, err := os.Open(schedulePath)
		if err != nil {
			return fmt.Errorf("opening %s: %w", schedulePath, err)
		}
		defer f.Close()

		bookings, err := legacy.ReadBookings(f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", schedulePath, err)
		}
		added := 0
		for _, b := range bookings {
			if !mine(b.Owner) {
				continue
			}
			if _, err := a.bookings.Insert(ctx, a.owner, b.Day, b.Start, b.End, b.Label); err != nil {
				fmt.Println(tui.Failure(err.Error()))
				continue
			}
			added++
		}
		fmt.Println(tui.Success(fmt.Sprintf("Imported %d booking(s)", added)))
	}

	if todoPath != "" {
		f, err := os.Open(todoPath)
		if err != nil {
			return fmt.Errorf("opening %s: %w", todoPath, err)
		}
		defer f.Close()

		tasks, err := legacy.ReadTasks(f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", todoPath, err)
		}
		added := 0
		for _, t := range tasks {
			if !mine(t.Owner) {
				continue
			}
			t.Owner = a.owner
			if err := a.tasks.Import(ctx, t); err != nil {
				fmt.Println(tui.Failure(err.Error()))
				continue
			}
			added++
		}
		fmt.Println(tui.Success(fmt.Sprintf("Imported %d task(s)", added)))
	}
	return nil
}

func runExportCSV(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
	schedulePath, _ := cmd.Flags().GetString("schedule")
	todoPath, _ := cmd.Flags().GetString("todo")
	if schedulePath == "" && todoPath == "" {
		return fmt.Errorf("pass --schedule and/or --todo")
	}

	if schedulePath != "" {
		week, err := a.bookings.Week(ctx, a.owner)
		if err != nil {
			return err
		}
		if err := writeFile(schedulePath, func(w io.Writer) error { return legacy.WriteBookings(w, week.All()) }); err != nil {
			return err
		}
	}
	if todoPath != "" {
		tasks, err := a.tasks.List(ctx, a.owner)
		if err != nil {
			return err
		}
		if err := writeFile(todoPath, func(w io.Writer) error { return legacy.WriteTasks(w, tasks) }); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
