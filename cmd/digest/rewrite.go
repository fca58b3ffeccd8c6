package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pbaille/digest/internal/cleanup"
	"github.com/pbaille/digest/internal/fileset"
)

func numberCmd(a *app) *cobra.Command {
	var (
		dryRun    bool
		skipLines int
		minBody   int
	)

	cmd := &cobra.Command{
		Use:   "number [path...]",
		Short: "Add Chinese numbering to news titles",
		Long: `Prefixes every news title with a Chinese numeral ("一、", "二、", ...).
A title is a line followed by a body paragraph; numbering restarts at each
【...】 heading and existing numerals are rewritten in sequence.

Targets are .txt files or directories (their direct .txt children). With no
target the working directory is scanned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			targets := args
			if len(targets) == 0 {
				dir, err := cwd("")
				if err != nil {
					return err
				}
				targets = []string{dir}
			}

			files, skipped := fileset.CollectTxt(targets)
			for _, sk := range skipped {
				fmt.Fprintf(out, "[skip] %s (%s)\n", sk.Path, sk.Reason)
			}
			if len(files) == 0 {
				fmt.Fprintln(out, "No .txt files found.")
				return nil
			}

			opts := a.cfg.Numbering
			if cmd.Flags().Changed("skip-lines") {
				opts.SkipLines = skipLines
			}
			if cmd.Flags().Changed("min-body") {
				opts.MinBodyRunes = minBody
			}

			summary, added := a.runner(cmd, dryRun).Number(files, opts)

			action, numbering := "Updated", "added numbering to"
			if dryRun {
				action, numbering = "Would update", "would add numbering to"
			}
			fmt.Fprintf(out, "\nDone. %s %d file(s); scanned %d total; %s %d item(s).\n",
				action, summary.Changed, summary.Scanned, numbering, added)
			return summary.Err()
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would change without writing")
	cmd.Flags().IntVar(&skipLines, "skip-lines", 0, "leading lines never treated as titles (default from config)")
	cmd.Flags().IntVar(&minBody, "min-body", 0, "minimum body length in characters (default from config)")
	return cmd
}

func replaceCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "replace [root]",
		Short: "Normalize source names and punctuation in every .txt file",
		Long: `Applies the replacement table to every .txt file under root, recursively,
then converts ASCII parentheses to full-width ones, removes 《》 inside them and
drops whitespace before a closing parenthesis.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var root string
			if len(args) > 0 {
				root = args[0]
			}
			root, err := cwd(root)
			if err != nil {
				return err
			}
			if _, err := os.Stat(root); err != nil {
				return fmt.Errorf("path does not exist: %s", root)
			}

			files, err := fileset.WalkTxt(root)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(out, "No .txt files found.")
				return nil
			}

			summary := a.runner(cmd, dryRun).Replace(files, cleanup.New(a.cfg.Replace.Pairs))

			action := "Changed"
			if dryRun {
				action = "Would change"
			}
			fmt.Fprintf(out, "\nDone. %s %d file(s); scanned %d total.\n", action, summary.Changed, summary.Scanned)
			return summary.Err()
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would change without writing")
	return cmd
}
