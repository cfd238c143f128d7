package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dm/filtro-go/internal/tips"
)

func newTipCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tip",
		Short: "Print an aquarium maintenance tip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if all {
				for i, t := range tips.All() {
					fmt.Fprintf(out, "%2d. %s\n", i+1, t)
				}
				return nil
			}
			tip, _ := tips.Pick(nil)
			fmt.Fprintln(out, tip)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "print every tip")
	return cmd
}
