package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dm/filtro-go/internal/client"
	"github.com/dm/filtro-go/internal/engine"
	"github.com/dm/filtro-go/internal/format"
	"github.com/dm/filtro-go/internal/model"
)

func newCatalogCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the filter catalog and any rejected rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, closeSources, err := c.catalogSources()
			if err != nil {
				return err
			}
			defer closeSources()

			ctx, cancel := context.WithTimeout(cmd.Context(), c.cfg.UI.FetchTimeout)
			defer cancel()
			cat, err := loadCatalog(ctx, c.log, sources)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Filters  []model.FilterRecord `json:"filters"`
					Rejected []model.RowIssue     `json:"rejected"`
				}{cat.Filters, cat.Issues})
			}
			writeCatalog(out, cat)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	return cmd
}

// loadCatalog fetches every source and logs the outcome, one warning per
// rejected row.
func loadCatalog(ctx context.Context, log *zap.Logger, sources []client.CatalogSource) (*model.Catalog, error) {
	cat, err := engine.FetchAll(ctx, sources...)
	if err != nil {
		log.Error("catalog load failed", zap.Error(err))
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	log.Info("catalog loaded",
		zap.Int("rows", len(cat.Filters)),
		zap.Int("rejected", len(cat.Issues)),
		zap.Any("sources", cat.SourceCounts))
	for _, is := range cat.Issues {
		log.Warn("catalog row rejected",
			zap.String("source", is.Source),
			zap.String("id", is.ID),
			zap.String("reason", is.Reason))
	}
	return cat, nil
}

func writeCatalog(w io.Writer, cat *model.Catalog) {
	names := make([]string, 0, len(cat.SourceCounts))
	for name := range cat.SourceCounts {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s: %d filters\n", name, cat.SourceCounts[name])
	}
	fmt.Fprintln(w)

	writeFilterSection(w, "Catalog", cat.Filters, false)

	if len(cat.Issues) == 0 {
		return
	}
	t := newCLITable("Source", "ID", "Reason")
	for _, is := range cat.Issues {
		t = t.Row(is.Source, is.ID, is.Reason)
	}
	fmt.Fprintf(w, "Rejected (%d)\n%s\n\n", len(cat.Issues), t.String())
}

// writeFilterSection prints a titled table of filters, or a placeholder
// line when there are none.
func writeFilterSection(w io.Writer, title string, rows []model.FilterRecord, combined bool) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(rows))
	if len(rows) == 0 {
		if combined {
			fmt.Fprint(w, "  (no combinations)\n\n")
		} else {
			fmt.Fprint(w, "  (no filters)\n\n")
		}
		return
	}

	t := newCLITable("ID", "Brand", "Model", "Flow", "Media")
	for _, r := range rows {
		t = t.Row(r.ID, r.Marca, r.Modelo, format.FormatFlow(r.Caudal), format.FormatLiters(r.VolumenVasoFiltro))
	}
	fmt.Fprintf(w, "%s\n\n", t.String())
}

func newCLITable(headers ...string) *ltable.Table {
	return ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == ltable.HeaderRow {
				return s.Bold(true)
			}
			return s
		}).
		Headers(headers...)
}
