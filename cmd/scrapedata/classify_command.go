package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/juliaafonsoo/scrape-data/internal/collection"
	"github.com/juliaafonsoo/scrape-data/internal/tagging"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <collection.json>",
		Short: "Classify every image attachment in a collection file",
		Long: `Classify runs the tagging pipeline over every image attachment in the
collection file: photo-named files are tagged directly, the rest go through
the analysis service and the rule cascade. Each attachment ends up with
exactly one tag; unmatched documents are tagged REVISAO_MANUAL.

The collection file is rewritten in place with the new tags and a
classification_stats block.

Examples:
  scrapedata classify emails.json
  scrapedata classify --offline emails.json   # no network, synthetic signals`,
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

			if assigned := col.AssignAttachmentIDs(); assigned > 0 {
				logger.Info("assigned missing attachment IDs", "count", assigned)
			}

			coord, err := tagging.NewCoordinator(cfg, extractor, logger)
			if err != nil {
				return err
			}
			stats, err := coord.Run(cmd.Context(), col)
			if err != nil {
				return err
			}

			if err := store.Save(cmd.Context(), col); err != nil {
				return fmt.Errorf("save collection: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Classification run", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Images", strconv.Itoa(stats.TotalImages)))
			fmt.Fprintln(out, renderStatusLine("Classified", strconv.Itoa(stats.ClassifiedImages)))
			fmt.Fprintln(out, renderStatusLine("Manual review", strconv.Itoa(stats.TotalImages-stats.ClassifiedImages)))
			fmt.Fprintln(out, renderStatusLine("Analysis calls", strconv.Itoa(stats.APICalls)))
			if ctx.offline(cfg) {
				fmt.Fprintln(out, renderStatusLine("Mode", highlight("offline", ansiYellow, colorize)))
			}
			return nil
		},
	}
	return cmd
}
