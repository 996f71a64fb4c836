package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pipechat/domain"
	"pipechat/pstree"
)

func main() {
	var (
		pid   int32
		me    bool
		table bool
	)

	cmd := &cobra.Command{
		Use:           "pstree [--pid <n> | --me] [--table]",
		Short:         "Render the process hierarchy as a tree",
		Args:          cobra.NoArgs,
		SilenceUsage:  false,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pid <= 0 {
				return fmt.Errorf("invalid pid: %d", pid)
			}
			root := domain.PID(pid)
			if me {
				// The interesting subtree for --me is the invoking shell's.
				root = domain.PID(os.Getppid())
			}

			procs, err := pstree.Snapshot()
			if err != nil {
				return fmt.Errorf("reading processes: %w", err)
			}
			tree := pstree.NewTree(procs)

			if table {
				return tree.RenderTable(cmd.OutOrStdout(), root)
			}
			return tree.Render(cmd.OutOrStdout(), root)
		},
	}

	cmd.Flags().Int32Var(&pid, "pid", 1, "root pid of the tree")
	cmd.Flags().BoolVar(&me, "me", false, "root the tree at the invoking shell")
	cmd.Flags().BoolVar(&table, "table", false, "flat table instead of a tree")
	cmd.MarkFlagsMutuallyExclusive("pid", "me")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pstree: %v\n", err)
		os.Exit(1)
	}
}
