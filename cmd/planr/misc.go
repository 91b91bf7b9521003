package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/christopherklint97/planr/internal/allocator"
	"github.com/christopherklint97/planr/internal/config"
	"github.com/christopherklint97/planr/internal/notify"
	"github.com/christopherklint97/planr/internal/scheduler"
	"github.com/christopherklint97/planr/internal/stats"
	"github.com/christopherklint97/planr/internal/tui"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task status and weekly working time charts",
	RunE:  withApp(runStats),
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the reminder loop for tasks with approaching deadlines",
	RunE:  runRemind,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of 'planr suggest --json'",
	RunE:  runSchema,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open config file in your editor",
	RunE:  runConfig,
}

func init() {
	remindCmd.Flags().Bool("stop", false, "Stop the running reminder loop")
	remindCmd.Flags().Bool("once", false, "Check once and exit")
	configCmd.Flags().String("owner", "", "Save the owner identifier and exit")
}

func runStats(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
	tasks, err := a.tasks.List(ctx, a.owner)
	if err != nil {
		return err
	}
	week, err := a.bookings.Week(ctx, a.owner)
	if err != nil {
		return err
	}

	fmt.Print(tui.RenderStatusChart(stats.StatusCounts(tasks)))
	fmt.Println()
	fmt.Print(tui.RenderHoursChart(stats.WeeklyHours(week)))
	return nil
}

func runRemind(cmd *cobra.Command, args []string) error {
	if stop, _ := cmd.Flags().GetBool("stop"); stop {
		return stopReminders()
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var notifier notify.Notifier = notify.Log{Logger: a.logger}
	if a.cfg.Notifications.Enabled {
		notifier = notify.Desktop{AppName: "planr"}
	}
	sched := scheduler.New(a.cfg, a.tasks, notifier, a.owner, a.logger)

	if once, _ := cmd.Flags().GetBool("once"); once {
		sent, err := sched.Check(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Sent %d reminder(s)\n", sent)
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return sched.Run(ctx)
}

func stopReminders() error {
	pid, err := scheduler.ReadPID()
	if err != nil {
		return err
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("finding process %d: %w", pid, err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("sending stop signal: %w", err)
	}

	fmt.Printf("Sent stop signal to planr (PID %d)\n", pid)
	return nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	out, err := json.MarshalIndent(allocator.Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling schema: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if owner, _ := cmd.Flags().GetString("owner"); owner != "" {
		if err := config.SaveOwner(configPath, owner); err != nil {
			return err
		}
		fmt.Printf("Owner set to %s in %s\n", owner, configPath)
		return nil
	}

	if err := config.WriteDefault(configPath); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	fmt.Printf("Opening %s with %s...\n", configPath, editor)

	proc := os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	}
	process, err := os.StartProcess(editor, []string{editor, configPath}, &proc)
	if err != nil {
		fmt.Printf("Could not open editor. Config file is at: %s\n", configPath)
		return nil
	}
	_, err = process.Wait()
	return err
}
