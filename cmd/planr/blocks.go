package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/tui"
	"github.com/spf13/cobra"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Manage the weekly time-blocked schedule",
}

var blockAddCmd = &cobra.Command{
	Use:     "add <day> <from> <to> <name>",
	Short:   "Book a time block",
	Example: `  planr block add Monday "09:00 AM" "10:30 AM" Standup and email`,
	Args:    cobra.MinimumNArgs(4),
	RunE:    withApp(runBlockAdd),
}

var blockListCmd = &cobra.Command{
	Use:   "list [day]",
	Short: "Show the week, or one day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  withApp(runBlockList),
}

var blockRemoveCmd = &cobra.Command{
	Use:   "remove <day> <name>",
	Short: "Remove a time block",
	Args:  cobra.MinimumNArgs(2),
	RunE:  withApp(runBlockRemove),
}

func init() {
	blockCmd.AddCommand(blockAddCmd)
	blockCmd.AddCommand(blockListCmd)
	blockCmd.AddCommand(blockRemoveCmd)
}

func runBlockAdd(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
	day, err := schedule.ParseWeekday(args[0])
	if err != nil {
		return err
	}
	from, err := schedule.ParseClock(args[1])
	if err != nil {
		return err
	}
	to, err := schedule.ParseClock(args[2])
	if err != nil {
		return err
	}

	b, err := a.bookings.Insert(ctx, a.owner, day, from, to, strings.Join(args[3:], " "))
	if err != nil {
		return err
	}
	fmt.Println(tui.Success(fmt.Sprintf("Task added for %s: %s – %s %s", b.Day, b.Start, b.End, b.Label)))
	return nil
}

func runBlockList(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
	days := schedule.Weekdays()
	if len(args) == 1 {
		d, err := schedule.ParseWeekday(args[0])
		if err != nil {
			return err
		}
		days = []schedule.Weekday{d}
	}

	week, err := a.bookings.Week(ctx, a.owner)
	if err != nil {
		return err
	}
	fmt.Print(tui.RenderWeek(week, days))
	return nil
}

func runBlockRemove(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
	day, err := schedule.ParseWeekday(args[0])
	if err != nil {
		return err
	}
	label := strings.Join(args[1:], " ")
	if err := a.bookings.Remove(ctx, a.owner, day, label); err != nil {
		return err
	}
	fmt.Println(tui.Success(fmt.Sprintf("Task '%s' deleted for %s.", label, day)))
	return nil
}
