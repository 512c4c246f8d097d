package inventory

import (
	"fmt"
	"math"
)

// StatsKind selects which message a Stats value renders.
type StatsKind int

const (
	StatsEmpty StatsKind = iota
	StatsInProgress
	StatsComplete
)

// Stats summarises one room's checklist.
type Stats struct {
	Kind       StatsKind
	Total      int
	Packed     int
	Percentage int
}

// Summarize computes stats for items. A nil or empty list is StatsEmpty.
// Completion is judged on the rounded percentage, so 399 of 400 counts.
func Summarize(items []Item) Stats {
	if len(items) == 0 {
		return Stats{Kind: StatsEmpty}
	}
	packed := 0
	for _, it := range items {
		if it.Packed {
			packed++
		}
	}
	pct := int(math.Round(float64(packed) / float64(len(items)) * 100))
	kind := StatsInProgress
	if pct == 100 {
		kind = StatsComplete
	}
	return Stats{Kind: kind, Total: len(items), Packed: packed, Percentage: pct}
}

// Message is the footer line shown under the list.
func (s Stats) Message() string {
	switch s.Kind {
	case StatsEmpty:
		return "Mulai tambahkan barang di ruangan"
	case StatsComplete:
		return "Barang lengkap, tidak ada yang hilang"
	default:
		return fmt.Sprintf("Kamu punya %d barang di daftar, dan sudah ceklist %d barang (%d%%)", s.Total, s.Packed, s.Percentage)
	}
}
