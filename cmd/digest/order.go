package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pbaille/digest/internal/batch"
	"github.com/pbaille/digest/internal/fileset"
	"github.com/pbaille/digest/internal/reorder"
)

func reorderCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "reorder [input]",
		Short: "Reorder brief entries by category",
		Long: `Groups the entries of every 【...】 section by category, in rule table
order with the catch-all last. Reference sections (舆情参考) keep their order.
The input file is overwritten unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !fileset.Exists(args[0]) {
				return fmt.Errorf("input file does not exist: %s", args[0])
			}

			c, err := a.cfg.Classifier()
			if err != nil {
				return err
			}
			engine := reorder.New(c, a.cfg.Categories.Verbatim)
			return a.runner(cmd, false).Reorder(args[0], output, engine)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: overwrite the input)")
	return cmd
}

func sortCmd(a *app) *cobra.Command {
	var (
		root    string
		file    string
		backup  bool
		restore bool
	)

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort news entries by importance, high to low",
		Long: `Sorts the entries of every category by their external_importance=N or
score=N marker, highest first. Entries without a marker score 0 and entries
with equal scores keep their order.`,
		Example: `  digest sort                              # sort all high_score_summaries_*.txt files
  digest sort --file myfile.txt            # sort a specific file
  digest sort --file myfile.txt --backup   # sort with backup
  digest sort --file myfile.txt --restore  # restore from backup`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			rule := strings.Repeat("=", 60)
			r := a.runner(cmd, false)

			fmt.Fprintln(out, rule)
			fmt.Fprintln(out, "Sorting news entries by importance")
			fmt.Fprintln(out, rule)

			if restore {
				if file == "" {
					return fmt.Errorf("--restore requires --file")
				}
				if err := r.Restore(file); err != nil {
					return err
				}
				fmt.Fprintln(out, rule)
				return nil
			}

			var summary batch.Summary
			if file != "" {
				if !fileset.Exists(file) {
					return fmt.Errorf("file %s not found", file)
				}
				fmt.Fprintf(out, "\nProcessing %s...\n", filepath.Base(file))
				summary = r.Sort([]string{file}, a.cfg.Sort.Layout, backup)
			} else {
				dir, err := cwd(root)
				if err != nil {
					return err
				}
				files, err := fileset.Glob(dir, a.cfg.Sort.Pattern)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					fmt.Fprintf(out, "No %s files found.\n", a.cfg.Sort.Pattern)
					return nil
				}
				// bulk runs always keep a backup
				fmt.Fprintf(out, "\nProcessing %d file(s)...\n\n", len(files))
				summary = r.Sort(files, a.cfg.Sort.Layout, true)
			}

			fmt.Fprintf(out, "\n%s\nDone! Sorted %d file(s); scanned %d total.\n%s\n",
				rule, summary.Changed, summary.Scanned, rule)
			return summary.Err()
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "directory to scan (default: working directory)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "sort a single file instead of every summary file")
	cmd.Flags().BoolVar(&backup, "backup", false, "create a .bak copy before sorting --file")
	cmd.Flags().BoolVar(&restore, "restore", false, "restore --file from its .bak copy")
	return cmd
}
