package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// pingTimeout bounds each source check.
const pingTimeout = 5 * time.Second

func newSourcesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "Check that every configured catalog source is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, closeSources, err := c.catalogSources()
			if err != nil {
				return err
			}
			defer closeSources()

			out := cmd.OutOrStdout()
			failed := 0
			for _, src := range sources {
				ctx, cancel := context.WithTimeout(cmd.Context(), pingTimeout)
				err := src.Ping(ctx)
				cancel()
				if err != nil {
					failed++
					c.log.Warn("source unreachable", zap.String("source", src.Name()), zap.Error(err))
					fmt.Fprintf(out, "FAIL  %s  %v\n", src.Name(), err)
					continue
				}
				fmt.Fprintf(out, "ok    %s\n", src.Name())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d sources unreachable", failed, len(sources))
			}
			return nil
		},
	}
}
