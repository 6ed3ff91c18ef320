package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/juliaafonsoo/scrape-data/internal/collection"
	"github.com/juliaafonsoo/scrape-data/internal/report"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report <collection.json>",
		Short: "Summarize tag distribution, coverage, and estimated cost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := collection.NewStore(args[0])
			col, err := store.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load collection: %w", err)
			}

			summary := report.Build(col)
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Collection", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Emails", strconv.Itoa(summary.TotalEmails)))
			fmt.Fprintln(out, renderStatusLine("Emails with images", strconv.Itoa(summary.EmailsWithImages)))
			fmt.Fprintln(out, renderStatusLine("Attachments", strconv.Itoa(summary.TotalAttachments)))
			fmt.Fprintln(out, renderStatusLine("Image attachments", strconv.Itoa(summary.TotalImages)))
			fmt.Fprintln(out, renderStatusLine("Tagged images", strconv.Itoa(summary.TaggedImages)))
			fmt.Fprintln(out)

			counts := summary.TagCounts()
			if len(counts) > 0 {
				for _, line := range renderSectionHeader("Tag distribution", colorize) {
					fmt.Fprintln(out, line)
				}
				rows := make([][]string, 0, len(counts))
				for _, tc := range counts {
					rows = append(rows, []string{
						tc.Tag,
						strconv.Itoa(tc.Count),
						fmt.Sprintf("%.1f%%", summary.TagShare(tc.Count)),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Tag", "Count", "Share"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight},
				))
				fmt.Fprintln(out)
			}

			for _, line := range renderSectionHeader("Analysis usage", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Billable calls", strconv.Itoa(summary.APICalls())))
			fmt.Fprintln(out, renderStatusLine("Estimated cost", fmt.Sprintf("US$ %.4f", summary.EstimatedCostUSD())))
			fmt.Fprintln(out, renderStatusLine("Efficacy", fmt.Sprintf("%.1f%%", summary.Efficacy())))
			if summary.TestMode() {
				fmt.Fprintln(out, renderStatusLine("Mode", highlight("offline (no billable calls)", ansiYellow, colorize)))
			}
			if stats := summary.Classification; stats != nil && stats.ProcessedAt != "" {
				fmt.Fprintln(out, renderStatusLine("Last classification", stats.ProcessedAt))
			}
			if stats := summary.ManualReviewRun; stats != nil && stats.ProcessedAt != "" {
				fmt.Fprintln(out, renderStatusLine("Last review pass", stats.ProcessedAt))
			}
			return nil
		},
	}
}
