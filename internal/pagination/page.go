// ABOUTME: Server-reported page metadata, the paged response envelope and display figures
// ABOUTME: DisplayInfo is always derived from metadata, never stored

package pagination

import "math"

// Metadata is the page position reported by the backend.
type Metadata struct {
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

// Page is a paged listing: content plus the metadata fields at the same level.
type Page[T any] struct {
	Content []T `json:"content"`
	Metadata
}

// DisplayInfo holds the 1-indexed "showing X-Y of Z" figures.
type DisplayInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	StartItem   int64 `json:"startItem"`
	EndItem     int64 `json:"endItem"`
	TotalItems  int64 `json:"totalItems"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
	IsFirst     bool  `json:"isFirst"`
	IsLast      bool  `json:"isLast"`
}

// Display converts metadata into display figures with
// 0 <= StartItem <= EndItem <= TotalItems for any input.
func Display(m Metadata) DisplayInfo {
	number := int64(max(0, m.Number))
	total := max(0, m.TotalElements)
	size := int64(m.Size)
	if size <= 0 {
		size = DefaultSize
	}
	// A page never holds more than everything, and pages past the end show
	// the same figures as the one just past the last item.
	size = min(size, max(total, 1))
	span := min(number, total/size+1)

	current := m.Number
	if current < math.MaxInt {
		current++
	}

	return DisplayInfo{
		CurrentPage: max(1, current),
		TotalPages:  max(0, m.TotalPages),
		StartItem:   min(total, span*size+1),
		EndItem:     min(total, (span+1)*size),
		TotalItems:  total,
		HasNext:     m.HasNext,
		HasPrevious: m.HasPrevious,
		IsFirst:     m.First,
		IsLast:      m.Last,
	}
}
