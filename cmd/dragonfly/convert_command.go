package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"dragonfly/internal/api"
	"dragonfly/internal/transcode"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var follow bool
	var jobs int

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert library files to the target format",
		Long: `Convert scans the movie and TV libraries for files that still need
conversion and converts them with the external engine. Sources are replaced
by their converted outputs only after the output verifies.

By default files convert in parallel and a summary prints at the end. With
--follow, files convert one at a time and every event prints as it happens.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if jobs > 0 {
				cfg.Transcode.Concurrency = jobs
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			session, err := api.NewSession(cfg, logger)
			if err != nil {
				return err
			}
			if follow {
				return runFollow(cmd, session)
			}
			return runBatch(cmd, session)
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Convert sequentially and print each event as it happens")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Worker pool size (0 uses the configured default)")
	return cmd
}

func runBatch(cmd *cobra.Command, session *api.Session) error {
	report, err := session.Convert(cmd.Context())
	if err != nil {
		return err
	}

	rows := [][]string{
		{"Files found", strconv.Itoa(report.Total)},
		{"Converted", strconv.Itoa(report.Converted)},
		{"Skipped (already converted)", strconv.Itoa(report.Skipped)},
		{"Failed", strconv.Itoa(report.Failed)},
		{"Sources deleted", strconv.Itoa(report.Deleted())},
		{"Elapsed", report.Elapsed.Round(timeRounding).String()},
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Result", "Count"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))

	for _, message := range report.Errors {
		fmt.Fprintf(cmd.OutOrStdout(), "error: %s\n", message)
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", report.Failed, report.Total)
	}
	return nil
}

func runFollow(cmd *cobra.Command, session *api.Session) error {
	events, err := session.ConvertStream(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var failed int
	for ev := range events {
		switch event := ev.(type) {
		case transcode.StartEvent:
			fmt.Fprintf(out, "found %d file(s) to convert\n", event.Total)
		case transcode.ConvertingEvent:
			fmt.Fprintf(out, "[%d/%d] converting %s\n", event.Index, event.Total, filepath.Base(event.File))
		case transcode.ConvertedEvent:
			fmt.Fprintf(out, "  done: %s\n", filepath.Base(event.File))
		case transcode.DeletedEvent:
			fmt.Fprintf(out, "  removed source: %s\n", filepath.Base(event.File))
		case transcode.ErrorEvent:
			failed++
			fmt.Fprintf(out, "  failed: %s (%s)\n", filepath.Base(event.File), event.Error)
		case transcode.CompleteEvent:
			fmt.Fprintf(out, "complete: %d converted, %d deleted, %d error(s)\n",
				event.Converted, event.Deleted, event.Errors)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", failed)
	}
	return nil
}
