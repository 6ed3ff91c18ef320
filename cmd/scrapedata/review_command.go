package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juliaafonsoo/scrape-data/internal/collection"
	"github.com/juliaafonsoo/scrape-data/internal/tagging"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Work with attachments tagged for manual review",
	}

	reviewCmd.AddCommand(newReviewListCommand(ctx))
	reviewCmd.AddCommand(newReviewProcessCommand(ctx))

	return reviewCmd
}

func newReviewListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list <collection.json>",
		Short: "List attachments awaiting manual review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := collection.NewStore(args[0])
			col, err := store.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load collection: %w", err)
			}

			pending := tagging.ListPending(col)
			out := cmd.OutOrStdout()
			if len(pending) == 0 {
				fmt.Fprintln(out, "No attachments awaiting manual review")
				return nil
			}

			rows := make([][]string, 0, len(pending))
			for _, item := range pending {
				rows = append(rows, []string{
					strconv.Itoa(item.EmailID),
					strconv.Itoa(item.AttachmentID),
					item.Filename,
					item.MimeType,
					yesNo(item.IsImage),
					strings.Join(item.Tags, ", "),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Email", "Attachment", "Filename", "MIME type", "Image", "Tags"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d attachments awaiting review\n", len(pending))
			return nil
		},
	}
}

func newReviewProcessCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "process <collection.json>",
		Short: "Re-run classification over attachments tagged for manual review",
		Long: `Process re-runs the tagging pipeline over every attachment currently
tagged REVISAO_MANUAL. When a concrete tag emerges the sentinel is replaced
and any other tags on the attachment are preserved. Attachments that still
cannot be classified keep the sentinel, so the command is safe to repeat.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			extractor, err := ctx.newExtractor(cfg)
			if err != nil {
				return err
			}

			store := collection.NewStore(args[0])
			col, err := store.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load collection: %w", err)
			}

			coord, err := tagging.NewCoordinator(cfg, extractor, logger)
			if err != nil {
				return err
			}
			stats, err := coord.Reconcile(cmd.Context(), col)
			if err != nil {
				return err
			}

			if err := store.Save(cmd.Context(), col); err != nil {
				return fmt.Errorf("save collection: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Manual review pass", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Pending files", strconv.Itoa(stats.TotalManualFiles)))
			fmt.Fprintln(out, renderStatusLine("Images processed", strconv.Itoa(stats.ImageFilesProcessed)))
			fmt.Fprintln(out, renderStatusLine("Reclassified", highlight(strconv.Itoa(stats.ReclassifiedFiles), ansiGreen, colorize)))
			fmt.Fprintln(out, renderStatusLine("Analysis calls", strconv.Itoa(stats.APICalls)))
			return nil
		},
	}
}
