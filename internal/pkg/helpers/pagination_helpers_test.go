package helpers

import "testing"

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		size       int
		wantOffset uint64
		wantLimit  int
	}{
		{name: "first page", page: 1, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "third page", page: 3, size: 20, wantOffset: 40, wantLimit: 20},
		{name: "zero page falls back to first", page: 0, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "negative page falls back to first", page: -2, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "zero size uses default", page: 2, size: 0, wantOffset: 10, wantLimit: DefaultPageSize},
		{name: "oversized page size uses default", page: 1, size: 500, wantOffset: 0, wantLimit: DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			if offset != tt.wantOffset {
				t.Fatalf("offset = %d, want %d", offset, tt.wantOffset)
			}
			if limit != tt.wantLimit {
				t.Fatalf("limit = %d, want %d", limit, tt.wantLimit)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 10)
	if info.TotalPages != 5 {
		t.Fatalf("TotalPages = %d, want 5", info.TotalPages)
	}
	if info.CurrentPage != 2 {
		t.Fatalf("CurrentPage = %d, want 2", info.CurrentPage)
	}
	if info.TotalItems != 45 {
		t.Fatalf("TotalItems = %d, want 45", info.TotalItems)
	}
}

func TestNewPaginationInfo_EmptyResult(t *testing.T) {
	info := NewPaginationInfo(0, 1, 10)
	if info.TotalPages != 1 {
		t.Fatalf("TotalPages = %d, want 1", info.TotalPages)
	}
	if info.CurrentPage != 1 {
		t.Fatalf("CurrentPage = %d, want 1", info.CurrentPage)
	}
}

func TestNewPaginationInfo_PageBeyondEnd(t *testing.T) {
	info := NewPaginationInfo(20, 9, 10)
	if info.CurrentPage != 2 {
		t.Fatalf("CurrentPage = %d, want 2", info.CurrentPage)
	}
}
