package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pipechat/cut"
)

func main() {
	var (
		delimiter string
		fields    string
	)

	cmd := &cobra.Command{
		Use:           "mycut -f <fields> [-d <char>]",
		Short:         "Select and reorder delimited fields from standard input",
		Args:          cobra.NoArgs,
		SilenceUsage:  false,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := cut.ParseFields(fields)
			if err != nil {
				return err
			}
			// Only the first character counts, as with cut -d
			delim := '\t'
			if delimiter != "" {
				delim = []rune(delimiter)[0]
			}
			return cut.Run(cmd.InOrStdin(), cmd.OutOrStdout(), delim, selected)
		},
	}

	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "\t", "field delimiter (single character, default TAB)")
	cmd.Flags().StringVarP(&fields, "fields", "f", "", "comma-separated 1-indexed fields, order preserved")
	_ = cmd.MarkFlagRequired("fields")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mycut: %v\n", err)
		os.Exit(1)
	}
}
