package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// columnDef describes a single column in a table.
type columnDef struct {
	Title    string
	Width    int  // preferred width in cells
	SortDesc bool // initial direction when the column is first selected
}

// tableModel is the generic base for sortable, paginated, searchable tables.
type tableModel struct {
	columns   []columnDef
	sortCol   int // -1 = unsorted
	sortDesc  bool
	page      int // 0-indexed
	pageSize  int
	cursor    int // row within the current page
	search    string
	searching bool
	input     textinput.Model
	focused   bool
}

// newTableModel initialises a tableModel with sensible defaults.
func newTableModel(cols []columnDef, pageSize int) tableModel {
	ti := textinput.New()
	ti.Placeholder = "brand or model..."
	ti.CharLimit = 80
	if pageSize <= 0 {
		pageSize = 10
	}
	return tableModel{
		columns:  cols,
		sortCol:  -1,
		pageSize: pageSize,
		input:    ti,
	}
}

// Update handles keyboard input for sorting, pagination, cursor movement and search.
func (t tableModel) Update(msg tea.Msg) (tableModel, tea.Cmd) {
	if !t.focused {
		return t, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if t.searching {
			switch {
			case key.Matches(msg, keys.Escape):
				t.searching = false
				t.input.Blur()
				if t.input.Value() == "" {
					t.search = ""
				}
				return t, nil
			case key.Matches(msg, keys.Submit):
				t.search = strings.TrimSpace(t.input.Value())
				t.searching = false
				t.input.Blur()
				t.page = 0
				t.cursor = 0
				return t, nil
			default:
				var cmd tea.Cmd
				t.input, cmd = t.input.Update(msg)
				return t, cmd
			}
		}

		switch {
		case key.Matches(msg, keys.Search):
			t.searching = true
			t.input.SetValue(t.search)
			t.input.Focus()
			return t, textinput.Blink
		case key.Matches(msg, keys.Escape):
			t.search = ""
			t.input.SetValue("")
			t.page = 0
			t.cursor = 0
			return t, nil
		case key.Matches(msg, keys.PrevPage):
			if t.page > 0 {
				t.page--
				t.cursor = 0
			}
			return t, nil
		case key.Matches(msg, keys.NextPage):
			t.page++
			t.cursor = 0
			return t, nil
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
			return t, nil
		case key.Matches(msg, keys.Down):
			t.cursor++
			return t, nil
		default:
			col := digitToCol(msg.String())
			if col >= 0 && col < len(t.columns) {
				if col == t.sortCol {
					t.sortDesc = !t.sortDesc
				} else {
					t.sortCol = col
					t.sortDesc = t.columns[col].SortDesc
				}
				t.page = 0
				t.cursor = 0
				return t, nil
			}
		}
	}
	return t, nil
}

// digitToCol converts a "1"–"9" key string to a 0-indexed column number.
// Returns -1 for any other string.
func digitToCol(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '1')
	}
	return -1
}

// pageCount returns the total number of pages for totalRows rows at pageSize rows per page.
// Always at least 1.
func pageCount(totalRows, pageSize int) int {
	if totalRows == 0 || pageSize <= 0 {
		return 1
	}
	c := totalRows / pageSize
	if totalRows%pageSize != 0 {
		c++
	}
	return c
}

// currentPageIndices returns the slice of row indices visible on the current page.
func currentPageIndices(allIndices []int, page, pageSize int) []int {
	if pageSize <= 0 || len(allIndices) == 0 {
		return allIndices
	}
	start := page * pageSize
	if start >= len(allIndices) {
		start = 0
	}
	end := start + pageSize
	if end > len(allIndices) {
		end = len(allIndices)
	}
	return allIndices[start:end]
}

// clampPage ensures the page index stays within valid bounds given the total
// number of rows and the configured pageSize.
func (t *tableModel) clampPage(totalRows int) {
	pc := pageCount(totalRows, t.pageSize)
	if t.page >= pc {
		t.page = pc - 1
	}
	if t.page < 0 {
		t.page = 0
	}
}

// currentPageRowCount returns how many rows are shown on the current page.
func (t *tableModel) currentPageRowCount(totalRows int) int {
	if totalRows == 0 {
		return 0
	}
	start := t.page * t.pageSize
	if start >= totalRows {
		return 0
	}
	return min(t.pageSize, totalRows-start)
}

// clampCursor keeps the cursor on a visible row.
func (t *tableModel) clampCursor(rowsOnPage int) {
	if t.cursor >= rowsOnPage {
		t.cursor = rowsOnPage - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// truncateName shortens s to at most maxWidth terminal cells, ending in "..."
// when there is room for it.
func truncateName(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// sanitize strips control characters from catalog text before it reaches
// the terminal.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			return -1
		}
		return r
	}, s)
}
