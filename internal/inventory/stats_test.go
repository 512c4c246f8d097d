package inventory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func itemsWithPacked(total, packed int) []Item {
	out := make([]Item, total)
	for i := range out {
		out[i] = Item{Description: "x", Quantity: 1, ID: int64(i + 1), Packed: i < packed}
	}
	return out
}

func TestSummarize(t *testing.T) {
	cases := []struct {
		name string
		in   []Item
		want Stats
	}{
		{"nil", nil, Stats{Kind: StatsEmpty}},
		{"empty", []Item{}, Stats{Kind: StatsEmpty}},
		{"half", itemsWithPacked(4, 2), Stats{Kind: StatsInProgress, Total: 4, Packed: 2, Percentage: 50}},
		{"none packed", itemsWithPacked(3, 0), Stats{Kind: StatsInProgress, Total: 3, Packed: 0, Percentage: 0}},
		{"rounds up", itemsWithPacked(3, 2), Stats{Kind: StatsInProgress, Total: 3, Packed: 2, Percentage: 67}},
		{"half rounds up", itemsWithPacked(8, 1), Stats{Kind: StatsInProgress, Total: 8, Packed: 1, Percentage: 13}},
		{"all", itemsWithPacked(5, 5), Stats{Kind: StatsComplete, Total: 5, Packed: 5, Percentage: 100}},
		{"rounded to complete", itemsWithPacked(400, 399), Stats{Kind: StatsComplete, Total: 400, Packed: 399, Percentage: 100}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Summarize(tc.in))
		})
	}
}

func TestStatsMessage(t *testing.T) {
	empty := Summarize(nil).Message()
	full := Summarize(itemsWithPacked(2, 2)).Message()
	half := Summarize(itemsWithPacked(4, 2)).Message()

	require.Equal(t, "Mulai tambahkan barang di ruangan", empty)
	require.Equal(t, "Barang lengkap, tidak ada yang hilang", full)
	require.Equal(t, "Kamu punya 4 barang di daftar, dan sudah ceklist 2 barang (50%)", half)
	require.NotEqual(t, full, half)
}
