package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/3gx/minterm/internal/qm"
	"github.com/3gx/minterm/internal/truth"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "minterm",
		Short:         "minimize a truth table into boolean equations",
		Long:          "minterm reads a complete truth table from CSV and emits, per output\nvariable, a minimized sum of product terms reproducing the table.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newSolveCmd(), newGrayCmd(), newVersionCmd())
	return root
}

func newSolveCmd() *cobra.Command {
	var (
		tablePath  string
		ivars      []string
		ovars      []string
		headers    int
		exact      bool
		exactLimit int
		share      string
		parallel   bool
	)
	cmd := &cobra.Command{
		Use:   "solve --table t.csv --ivar a --ivar b ... --ovar x ...",
		Short: "minimize a CSV truth table",
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := parseShare(share)
			if err != nil {
				return err
			}
			f, err := os.Open(tablePath)
			if err != nil {
				return errors.Wrap(err, "open table")
			}
			defer f.Close()

			tbl, err := truth.ParseCSV(f, truth.ParseOptions{
				HeaderRows: headers,
				Inputs:     len(ivars),
				Outputs:    len(ovars),
			})
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"rows":    len(tbl.Entries),
				"inputs":  len(ivars),
				"outputs": len(ovars),
			}).Info("parsed truth table")

			eqs, err := qm.Minimize(tbl, qm.Options{
				OutputNames: ovars,
				Exact:       exact,
				ExactLimit:  exactLimit,
				Parallel:    parallel,
			})
			if err != nil {
				return err
			}
			names := qm.Names(ivars...)

			if strategy == qm.ShareNone {
				for _, eq := range eqs {
					line, err := eq.Render(names)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			}
			out, err := qm.Share(eqs, strategy).Render(names)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&tablePath, "table", "", "CSV truth table file")
	cmd.Flags().StringArrayVar(&ivars, "ivar", nil, "input variable name, leftmost column first (repeatable)")
	cmd.Flags().StringArrayVar(&ovars, "ovar", nil, "output variable name, matching the rightmost columns (repeatable)")
	cmd.Flags().IntVar(&headers, "headers", 0, "header rows to skip")
	cmd.Flags().BoolVar(&exact, "exact", false, "branch-and-bound cover selection")
	cmd.Flags().IntVar(&exactLimit, "exact-limit", 0, "prime-implicant ceiling for --exact (0 = default)")
	cmd.Flags().StringVar(&share, "share", "none", "cross-output sharing: none, max, or literals")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "minimize output columns concurrently")
	for _, flag := range []string{"table", "ivar", "ovar"} {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
	return cmd
}

func parseShare(s string) (qm.ShareStrategy, error) {
	switch s {
	case "none":
		return qm.ShareNone, nil
	case "max":
		return qm.ShareMax, nil
	case "literals":
		return qm.ShareMinLiterals, nil
	}
	return qm.ShareNone, errors.Errorf("unknown --share strategy %q", s)
}

func newGrayCmd() *cobra.Command {
	var bitN int
	cmd := &cobra.Command{
		Use:   "gray --bits N",
		Short: "print the N-bit reflected gray code (inspection aid)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if bitN < 1 {
				return errors.Errorf("--bits must be positive, got %d", bitN)
			}
			for _, row := range truth.GrayCode(bitN) {
				buf := make([]byte, len(row))
				for i, b := range row {
					buf[i] = '0'
					if b {
						buf[i] = '1'
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(buf))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&bitN, "bits", 0, "code width in bits")
	if err := cmd.MarkFlagRequired("bits"); err != nil {
		panic(err)
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the minterm version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
