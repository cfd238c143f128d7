package engine

import (
	"context"
	"errors"
	"time"

	"github.com/dm/filtro-go/internal/client"
)

// mockSource implements client.CatalogSource for testing.
type mockSource struct {
	name  string
	rows  []client.FilterRow
	err   error
	delay time.Duration
}

func (m *mockSource) GetFilters(ctx context.Context) ([]client.FilterRow, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

func (m *mockSource) Ping(ctx context.Context) error {
	return m.err
}

func (m *mockSource) Name() string {
	if m.name == "" {
		return "mock"
	}
	return m.name
}

var errMockFailure = errors.New("mock failure")
