package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pbaille/digest/internal/batch"
	"github.com/pbaille/digest/internal/fileset"
)

func mergeCmd(a *app) *cobra.Command {
	var (
		root          string
		outputDir     string
		suffix        string
		overwrite     bool
		deleteSources bool
		incremental   bool
		keepSources   bool
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge segmented summary files into one file per date",
		Long: `Merges high_score_summaries_<date>(<n>).txt segments into
high_score_summaries_<date><suffix>.txt, one file per date.

A fresh merge concatenates the categories of every segment and refuses to
replace an existing output unless --overwrite is given. An incremental merge
appends to the existing output, skipping entries it already holds, and deletes
the segments afterwards unless --keep-sources is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			dir, err := cwd(root)
			if err != nil {
				return err
			}
			groups, err := fileset.Segments(dir)
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				fmt.Fprintln(out, "No segmented summary files found.")
				return nil
			}

			opts := batch.MergeOptions{
				OutputDir:     outputDir,
				Suffix:        a.cfg.Merge.Suffix,
				Overwrite:     overwrite,
				DeleteSources: deleteSources,
				Incremental:   incremental,
				Layout:        a.cfg.Merge.Fresh,
			}
			if cmd.Flags().Changed("suffix") {
				opts.Suffix = suffix
			}
			if incremental {
				opts.DeleteSources = !keepSources
				opts.Allowed = a.cfg.Merge.AllowedCategories
				opts.Layout = a.cfg.Merge.Incremental
			}

			a.logger.Info("Merging segments",
				zap.String("dir", dir),
				zap.Int("dates", len(groups)),
				zap.Bool("incremental", incremental))

			return a.runner(cmd, false).Merge(groups, opts).Err()
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "directory to scan for segment files (default: working directory)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for merged files (default: --root)")
	cmd.Flags().StringVar(&suffix, "suffix", "", "suffix before .txt for merged files (default from config, _merged)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing merged files")
	cmd.Flags().BoolVar(&deleteSources, "delete-sources", false, "delete segment files after a successful merge")
	cmd.Flags().BoolVarP(&incremental, "incremental", "i", false, "append new entries to the existing merged file")
	cmd.Flags().BoolVar(&keepSources, "keep-sources", false, "keep segment files after an incremental merge")
	return cmd
}
