package client

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileClient reads the catalog from a YAML or JSON file. The file holds
// either a bare list of rows or a document with a top-level "filters" list.
type FileClient struct {
	path string
}

// NewFileClient returns a FileClient for path. The file is read on every
// GetFilters call so edits show up on refresh.
func NewFileClient(path string) (*FileClient, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog file path is required")
	}
	return &FileClient{path: path}, nil
}

// Name identifies the source in logs and the UI.
func (c *FileClient) Name() string {
	return "file:" + c.path
}

// GetFilters reads and decodes the catalog file.
func (c *FileClient) GetFilters(ctx context.Context) ([]FilterRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("GetFilters: %w", err)
	}
	rows, err := decodeCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("GetFilters decode %s: %w", c.path, err)
	}
	return rows, nil
}

// Ping checks that the catalog file is readable.
func (c *FileClient) Ping(ctx context.Context) error {
	f, err := os.Open(c.path)
	if err != nil {
		return err
	}
	return f.Close()
}

// decodeCatalog parses YAML (and therefore JSON) catalog content.
func decodeCatalog(data []byte) ([]FilterRow, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return []FilterRow{}, nil
	}
	doc := root.Content[0]

	switch doc.Kind {
	case yaml.SequenceNode:
		var rows []FilterRow
		if err := doc.Decode(&rows); err != nil {
			return nil, err
		}
		return rows, nil
	case yaml.MappingNode:
		var wrapped struct {
			Filters []FilterRow `yaml:"filters"`
		}
		if err := doc.Decode(&wrapped); err != nil {
			return nil, err
		}
		if wrapped.Filters == nil {
			return nil, fmt.Errorf("expected a list of filters or a %q key", "filters")
		}
		return wrapped.Filters, nil
	default:
		return nil, fmt.Errorf("unexpected catalog document at line %d", doc.Line)
	}
}
