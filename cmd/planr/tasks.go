package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/christopherklint97/planr/internal/todo"
	"github.com/christopherklint97/planr/internal/tui"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage to-do tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  withApp(runTaskAdd),
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  withApp(runTaskList),
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Change a task's status or time needed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  withApp(runTaskUpdate),
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  withApp(runTaskDelete),
}

func init() {
	taskAddCmd.Flags().StringP("time", "t", "", "Time needed, e.g. 90 or 1h30m (required)")
	taskAddCmd.Flags().StringP("deadline", "d", "", "Deadline: YYYY-MM-DD or e.g. \"next friday\" (required)")
	taskAddCmd.Flags().String("status", string(todo.Pending), "Pending, In Progress or Completed")
	taskAddCmd.Flags().String("priority", string(todo.Medium), "High, Medium or Low")
	taskAddCmd.Flags().Bool("remind", false, "Send a reminder as the deadline approaches")
	taskAddCmd.MarkFlagRequired("time")
	taskAddCmd.MarkFlagRequired("deadline")

	taskUpdateCmd.Flags().String("status", "", "New status")
	taskUpdateCmd.Flags().StringP("time", "t", "", "New time needed")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

func runTaskAdd(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
	label := strings.Join(args, " ")
	timeStr, _ := cmd.Flags().GetString("time")
	deadlineStr, _ := cmd.Flags().GetString("deadline")
	statusStr, _ := cmd.Flags().GetString("status")
	priorityStr, _ := cmd.Flags().GetString("priority")
	remind, _ := cmd.Flags().GetBool("remind")

	minutes, err := todo.ParseMinutes(timeStr)
	if err != nil {
		return err
	}
	deadline, err := todo.ParseDeadline(deadlineStr, time.Now())
	if err != nil {
		return err
	}
	status, err := todo.ParseStatus(statusStr)
	if err != nil {
		return err
	}
	priority, err := todo.ParsePriority(priorityStr)
	if err != nil {
		return err
	}

	t, err := a.tasks.Add(ctx, todo.NewTask{
		Owner:    a.owner,
		Label:    label,
		Minutes:  minutes,
		Deadline: deadline,
		Status:   status,
		Priority: priority,
		Reminder: remind,
	})
	if err != nil {
		return err
	}

	fmt.Println(tui.Success(fmt.Sprintf("Task added: %s (%s, due %s)",
		t.Label, todo.FormatMinutes(t.Minutes), t.Deadline.Format(time.DateOnly))))
	return nil
}

func runTaskList(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
	tasks, err := a.tasks.List(ctx, a.owner)
	if err != nil {
		return err
	}
	fmt.Print(tui.RenderTasks(tasks, time.Now()))
	return nil
}

func runTaskUpdate(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
	label := strings.Join(args, " ")
	statusStr, _ := cmd.Flags().GetString("status")
	timeStr, _ := cmd.Flags().GetString("time")
	if statusStr == "" && timeStr == "" {
		return fmt.Errorf("nothing to update — pass --status and/or --time")
	}

	var u todo.Update
	var err error
	if statusStr != "" {
		if u.Status, err = todo.ParseStatus(statusStr); err != nil {
			return err
		}
	}
	if timeStr != "" {
		if u.Minutes, err = todo.ParseMinutes(timeStr); err != nil {
			return err
		}
		if u.Minutes <= 0 {
			return fmt.Errorf("time needed must be positive")
		}
	}

	t, err := a.tasks.Update(ctx, a.owner, label, u)
	if err != nil {
		return err
	}
	fmt.Println(tui.Success(fmt.Sprintf("Task '%s' updated: %s, %s", t.Label, t.Status, todo.FormatMinutes(t.Minutes))))
	return nil
}

func runTaskDelete(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
	label := strings.Join(args, " ")
	if err := a.tasks.Delete(ctx, a.owner, label); err != nil {
		return err
	}
	fmt.Println(tui.Success(fmt.Sprintf("Task '%s' deleted.", label)))
	return nil
}
