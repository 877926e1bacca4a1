package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"collectarr/internal/notifications"
	"collectarr/internal/runner"
)

func runReconcile(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	client, err := ctx.radarrClient()
	if err != nil {
		return err
	}

	run := runner.New(client, notifications.NewService(cfg), logger, runner.Options{LockPath: cfg.Run.LockPath})
	result, err := run.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("reconciliation aborted: %w", err)
	}

	out := cmd.OutOrStdout()
	printRunSummary(out, result, shouldColorize(out))
	return nil
}

func printRunSummary(out io.Writer, result runner.Result, colorize bool) {
	summary := result.Summary

	counts := [][]string{
		{"Collections", strconv.Itoa(result.Collections)},
		{"Set as monitored", strconv.Itoa(summary.Monitored)},
		{"Added & monitored", strconv.Itoa(summary.Added)},
		{"Already present", strconv.Itoa(summary.AlreadyPresent)},
		{"Skipped (missing data)", strconv.Itoa(summary.Skipped)},
		{"Failed", strconv.Itoa(summary.Failed)},
	}
	fmt.Fprintln(out, renderTable([]string{"Result", "Count"}, counts, []columnAlignment{alignLeft, alignRight}, colorize))

	if len(summary.Collections) > 0 {
		var rows [][]string
		for _, report := range summary.Collections {
			for _, line := range report.Lines {
				rows = append(rows, []string{report.Name, line})
			}
		}
		fmt.Fprintln(out, renderTable([]string{"Collection", "Change"}, rows, nil, colorize))
	}

	switch {
	case summary.Changes() == 0:
		fmt.Fprintln(out, "No changes needed; all movies were already monitored or previously added.")
	case result.NotifyErr != nil:
		fmt.Fprintf(out, "Notification failed: %v\n", result.NotifyErr)
	case result.Notified:
		fmt.Fprintln(out, "Notification sent.")
	}
	fmt.Fprintf(out, "Run %s finished in %s\n", result.RunID, result.Duration.Round(time.Millisecond))
}
