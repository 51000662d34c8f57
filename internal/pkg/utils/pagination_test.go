package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		total       int64
		wantPages   int
		wantShowing string
	}{
		{name: "empty", page: 1, limit: 20, total: 0, wantPages: 0, wantShowing: "0 of 0"},
		{name: "first page", page: 1, limit: 20, total: 45, wantPages: 3, wantShowing: "1-20 of 45"},
		{name: "last partial page", page: 3, limit: 20, total: 45, wantPages: 3, wantShowing: "41-45 of 45"},
		{name: "exact fit", page: 2, limit: 10, total: 20, wantPages: 2, wantShowing: "11-20 of 20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, showing := Pagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.wantPages, pages)
			assert.Equal(t, tt.wantShowing, showing)
		})
	}
}
