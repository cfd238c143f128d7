package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// RowID is a catalog primary key. Backends report it either as an integer
// (PostgREST, SQLite INTEGER PRIMARY KEY) or as a string; both decode here.
type RowID string

// UnmarshalJSON accepts a JSON number or string.
func (id *RowID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = RowID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = RowID(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar.
func (id *RowID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("id: expected scalar at line %d", value.Line)
	}
	if value.Tag == "!!null" {
		*id = ""
		return nil
	}
	*id = RowID(value.Value)
	return nil
}

// FilterRow is one row of the filter table as returned by a catalog source.
// Numeric columns are pointers so a NULL column can be told apart from 0.
type FilterRow struct {
	ID                RowID    `json:"id" yaml:"id"`
	Marca             string   `json:"marca" yaml:"marca"`
	Modelo            string   `json:"modelo" yaml:"modelo"`
	Caudal            *float64 `json:"caudal" yaml:"caudal"`
	VolumenVasoFiltro *float64 `json:"volumen_vaso_filtro" yaml:"volumen_vaso_filtro"`
}

// Float returns a pointer to v; handy for building FilterRow fixtures.
func Float(v float64) *float64 {
	return &v
}

// rowIDFromInt64 formats an integer key the same way the JSON decoder does.
func rowIDFromInt64(n int64) RowID {
	return RowID(strconv.FormatInt(n, 10))
}
