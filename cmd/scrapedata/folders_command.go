package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juliaafonsoo/scrape-data/internal/organizer"
)

func newFoldersCommand(ctx *commandContext) *cobra.Command {
	foldersCmd := &cobra.Command{
		Use:   "folders",
		Short: "Organize downloaded attachment folders",
		Long: `Downloaded email folders arrive named "Display Name <address>". The
folders commands rename them to the part after the "<" so the tree keys on
sender addresses. Preview shows the plan; apply performs it, skipping any
rename whose target already exists.`,
	}

	foldersCmd.AddCommand(newFoldersPreviewCommand(ctx))
	foldersCmd.AddCommand(newFoldersApplyCommand(ctx))

	return foldersCmd
}

func resolveFolderBase(ctx *commandContext, args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.Paths.BasePath == "" {
		return "", fmt.Errorf("no directory given and paths.base_path is not configured")
	}
	return cfg.Paths.BasePath, nil
}

func newFoldersPreviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [directory]",
		Short: "Show planned folder renames without touching anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := resolveFolderBase(ctx, args)
			if err != nil {
				return err
			}

			org := organizer.New(nil)
			plan, err := org.Preview(base)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(plan.Renames) == 0 {
				fmt.Fprintln(out, "No folders need renaming")
				return nil
			}

			rows := make([][]string, 0, len(plan.Renames))
			for _, r := range plan.Renames {
				rows = append(rows, []string{r.From, r.To})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"From", "To"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d to rename, %d unchanged\n", len(plan.Renames), len(plan.Kept))
			return nil
		},
	}
}

func newFoldersApplyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "apply [directory]",
		Short: "Rename attachment folders in place",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := resolveFolderBase(ctx, args)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			org := organizer.New(logger)
			result, err := org.Apply(base)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Folder organization", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Renamed", highlight(strconv.Itoa(result.Renamed), ansiGreen, colorize)))
			fmt.Fprintln(out, renderStatusLine("Skipped", strconv.Itoa(len(result.Skipped))))
			fmt.Fprintln(out, renderStatusLine("Unchanged", strconv.Itoa(len(result.Kept))))
			for _, r := range result.Skipped {
				fmt.Fprintf(out, "%sskipped: %s (target %s exists or rename failed)\n", statusIndent, r.From, r.To)
			}
			return nil
		},
	}
}
