package request

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantLimit  int
		wantCursor string
	}{
		{"defaults", "/tenants", DefaultLimit, ""},
		{"explicit limit", "/tenants?limit=10", 10, ""},
		{"limit capped", "/tenants?limit=5000", MaxLimit, ""},
		{"zero limit falls back", "/tenants?limit=0", DefaultLimit, ""},
		{"negative limit falls back", "/tenants?limit=-3", DefaultLimit, ""},
		{"malformed limit falls back", "/tenants?limit=abc", DefaultLimit, ""},
		{"cursor passthrough", "/tenants?cursor=tenant-42", DefaultLimit, "tenant-42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePagination(httptest.NewRequest("GET", tt.url, nil))
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantCursor, p.Cursor)
		})
	}
}
