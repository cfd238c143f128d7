package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/dm/filtro-go/internal/format"
	"github.com/dm/filtro-go/internal/model"
)

// FilterTableModel is a sortable, paginated, searchable table of filters in
// one classification tier.
type FilterTableModel struct {
	tableModel
	title       string
	tier        model.Tier
	combined    bool
	allRows     []model.FilterRecord // classification order
	displayRows []model.FilterRecord // after filter + sort applied
}

// NewFilterTable returns a FilterTableModel with the four filter columns,
// unsorted so rows first appear in catalog order.
func NewFilterTable(title string, tier model.Tier, combined bool, pageSize int) FilterTableModel {
	cols := []columnDef{
		{Title: "Brand", Width: 16, SortDesc: false},
		{Title: "Model", Width: 28, SortDesc: false},
		{Title: "Flow", Width: 12, SortDesc: true},
		{Title: "Media", Width: 10, SortDesc: true},
	}
	return FilterTableModel{
		tableModel: newTableModel(cols, pageSize),
		title:      title,
		tier:       tier,
		combined:   combined,
	}
}

// SetData applies the current search filter and sort to rows, storing the
// result as displayRows ready for rendering.
func (m *FilterTableModel) SetData(rows []model.FilterRecord) {
	m.allRows = rows
	m.refresh()
}

// Rows returns the rows currently displayed, in display order.
func (m *FilterTableModel) Rows() []model.FilterRecord {
	return m.displayRows
}

func (m *FilterTableModel) refresh() {
	filtered := filterFilterRows(m.allRows, m.search)
	m.displayRows = sortFilterRows(filtered, m.sortCol, m.sortDesc)
	m.clampPage(len(m.displayRows))
	m.clampCursor(m.currentPageRowCount(len(m.displayRows)))
}

// Update handles keyboard events for sorting, pagination, and search. It
// delegates to the embedded tableModel and re-applies filter/sort when the
// sort column, direction, or search term changes.
func (m FilterTableModel) Update(msg tea.Msg) (FilterTableModel, tea.Cmd) {
	prevSort := m.sortCol
	prevDesc := m.sortDesc
	prevSearch := m.search

	base, cmd := m.tableModel.Update(msg)
	m.tableModel = base

	if m.sortCol != prevSort || m.sortDesc != prevDesc || m.search != prevSearch {
		filtered := filterFilterRows(m.allRows, m.search)
		m.displayRows = sortFilterRows(filtered, m.sortCol, m.sortDesc)
	}
	m.clampPage(len(m.displayRows))
	m.clampCursor(m.currentPageRowCount(len(m.displayRows)))
	return m, cmd
}

// renderTable renders the tier section: a title bar followed by the
// lipgloss table body for the current page.
func (m *FilterTableModel) renderTable(width int) string {
	pc := pageCount(len(m.displayRows), m.pageSize)
	hdr := m.renderHeader(pc)

	headers := make([]string, len(m.columns))
	for i, c := range m.columns {
		h := c.Title
		if i == m.sortCol {
			if m.sortDesc {
				h += "↓"
			} else {
				h += "↑"
			}
		}
		headers[i] = h
	}

	allIdx := make([]int, len(m.displayRows))
	for i := range m.displayRows {
		allIdx[i] = i
	}
	pageIdx := currentPageIndices(allIdx, m.page, m.pageSize)

	if len(pageIdx) == 0 {
		empty := "  (no filters)"
		if m.combined {
			empty = "  (no combinations)"
		}
		if m.search != "" {
			empty = "  (no filters match the search)"
		}
		return lipgloss.JoinVertical(lipgloss.Left, hdr, StyleDim.Render(empty))
	}

	sortCol := m.sortCol
	focused := m.focused
	cursor := m.cursor
	t := ltable.New().
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				if col == sortCol {
					return lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
				}
				return lipgloss.NewStyle().Bold(true).Foreground(colorGray)
			}
			base := lipgloss.NewStyle().PaddingRight(2)
			if focused && row == cursor {
				base = base.Background(colorSelectedBg)
			} else if row%2 == 0 {
				base = base.Background(colorAlt)
			}
			switch col {
			case 2:
				return base.Foreground(colorCyan).Align(lipgloss.Right)
			case 3:
				return base.Foreground(colorPurple).Align(lipgloss.Right)
			default:
				return base.Foreground(colorWhite)
			}
		}).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray)).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(false)

	if width > 0 {
		t = t.Width(width)
	}

	for _, idx := range pageIdx {
		r := m.displayRows[idx]
		t = t.Row(
			truncateName(sanitize(r.Marca), m.columns[0].Width),
			truncateName(sanitize(r.Modelo), m.columns[1].Width),
			format.FormatFlow(r.Caudal),
			format.FormatLiters(r.VolumenVasoFiltro),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, hdr, t.String())
}

// renderHeader renders the title bar with the tier count and search/sort/page hints.
func (m *FilterTableModel) renderHeader(pages int) string {
	title := TierStyle(m.tier).Render(fmt.Sprintf("%s (%d)", m.title, len(m.allRows)))
	pageInfo := fmt.Sprintf("Page %d/%d", m.page+1, pages)

	var right string
	switch {
	case m.searching:
		right = "Search: " + m.input.View()
	case m.search != "":
		right = fmt.Sprintf("filter=%q  %s", m.search, pageInfo)
	case m.focused:
		right = fmt.Sprintf("[/: search]  [1-4: sort]  [←→: page]  %s", pageInfo)
	default:
		right = pageInfo
	}

	return title + "  " + StyleDim.Render(right)
}
