package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"dragonfly/internal/api"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List files a conversion run would touch, without converting",
		Long: `Scan performs a dry run: it lists the files a conversion run would
convert, and the already-superseded source files whose converted target
exists. Nothing on disk is modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			result, err := api.ScanLibrary(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Candidates) == 0 && len(result.Deletable) == 0 {
				fmt.Fprintln(out, "library is fully converted; nothing to do")
				return nil
			}

			if len(result.Candidates) > 0 {
				rows := make([][]string, 0, len(result.Candidates))
				for _, entry := range result.Candidates {
					rows = append(rows, []string{filepath.Base(entry.Path), formatSize(entry.Size)})
				}
				fmt.Fprintln(out, "To convert:")
				fmt.Fprintln(out, renderTable(
					[]string{"File", "Size"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				fmt.Fprintf(out, "%d file(s), %s total\n\n", len(result.Candidates), formatSize(result.CandidateBytes))
			}

			if len(result.Deletable) > 0 {
				rows := make([][]string, 0, len(result.Deletable))
				for _, entry := range result.Deletable {
					rows = append(rows, []string{filepath.Base(entry.Path), formatSize(entry.Size)})
				}
				fmt.Fprintln(out, "Sources already converted (safe to delete):")
				fmt.Fprintln(out, renderTable(
					[]string{"File", "Size"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				fmt.Fprintf(out, "%d file(s), %s reclaimable\n", len(result.Deletable), formatSize(result.DeletableBytes))
			}
			return nil
		},
	}
	return cmd
}
