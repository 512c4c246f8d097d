package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	data    map[string][]byte
	saves   int
	loadErr error
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (s *fakeStore) Load(_ context.Context, key string) ([]byte, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (s *fakeStore) Save(_ context.Context, key string, value []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func openTest(t *testing.T, store *fakeStore, opts ...Option) *Controller {
	t.Helper()
	c, err := Open(context.Background(), store, opts...)
	require.NoError(t, err)
	return c
}

// requirePersisted checks the stored snapshot is the encoding of the live state.
func requirePersisted(t *testing.T, store *fakeStore, c *Controller) {
	t.Helper()
	want, err := c.Snapshot().MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, string(want), string(store.data[DefaultKey]))
}

func TestOpenWithoutSnapshot(t *testing.T) {
	store := newFakeStore()
	c := openTest(t, store)

	require.Equal(t, "", c.SelectedRoom())
	require.Nil(t, c.Items())
	snap := c.Snapshot()
	require.Len(t, snap, 4)
	for _, r := range AllRooms() {
		items, ok := snap[r]
		require.True(t, ok, "room %s missing", r)
		require.Empty(t, items)
	}
	require.JSONEq(t, `{"Lab PPLG":[],"Lab DKV":[],"Lab TJKT":[],"Lab MPLB":[]}`, string(store.data[DefaultKey]))
}

func TestOpenRestoresSnapshot(t *testing.T) {
	stored := `{"Lab PPLG":[{"description":"Projector","quantity":3,"packed":true,"id":1700000000000}],` +
		`"Lab DKV":[],"Lab TJKT":[{"description":"Router","quantity":1,"packed":false,"id":1700000000001}],"Lab MPLB":[]}`
	store := newFakeStore()
	store.data[DefaultKey] = []byte(stored)

	c := openTest(t, store)

	snap := c.Snapshot()
	require.Equal(t, []Item{{Description: "Projector", Quantity: 3, Packed: true, ID: 1700000000000}}, snap[RoomPPLG])
	require.Equal(t, []Item{{Description: "Router", Quantity: 1, ID: 1700000000001}}, snap[RoomTJKT])
	require.Equal(t, stored, string(store.data[DefaultKey]))
}

func TestOpenMalformedSnapshotFallsBack(t *testing.T) {
	store := newFakeStore()
	store.data[DefaultKey] = []byte(`{"Lab PPLG": "oops"}`)

	c := openTest(t, store)

	require.Equal(t, DefaultRooms(), c.Snapshot())
	require.Equal(t, `{"Lab PPLG": "oops"}`, string(store.data[DefaultKey+corruptSuffix]))
	requirePersisted(t, store, c)
}

func TestOpenLoadErrorFallsBack(t *testing.T) {
	store := newFakeStore()
	store.loadErr = errors.New("disk gone")

	c := openTest(t, store)
	require.Equal(t, DefaultRooms(), c.Snapshot())
}

func TestOpenFailsWhenInitialCommitFails(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("read-only")

	c, err := Open(context.Background(), store)
	require.Error(t, err)
	require.Nil(t, c)
	require.ErrorIs(t, err, store.saveErr)
}

func TestWithKey(t *testing.T) {
	store := newFakeStore()
	c := openTest(t, store, WithKey("checklist"))
	c.SelectRoom(string(RoomDKV))
	_, added, err := c.AddItem(context.Background(), "Tablet", 2)
	require.NoError(t, err)
	require.True(t, added)
	require.Contains(t, string(store.data["checklist"]), "Tablet")
	require.NotContains(t, store.data, DefaultKey)
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	c := openTest(t, store, WithClock(fixedClock(1_700_000_000_000)))
	c.SelectRoom("Lab PPLG")

	item, added, err := c.AddItem(ctx, "Projector", 3)
	require.NoError(t, err)
	require.True(t, added)
	require.Equal(t, Item{Description: "Projector", Quantity: 3, Packed: false, ID: 1_700_000_000_000}, item)

	snap := c.Snapshot()
	require.Equal(t, []Item{item}, snap[RoomPPLG])
	for _, r := range []Room{RoomDKV, RoomTJKT, RoomMPLB} {
		require.Empty(t, snap[r])
	}
	requirePersisted(t, store, c)
}

func TestAddItemPreservesOrder(t *testing.T) {
	ctx := context.Background()
	c := openTest(t, newFakeStore())
	c.SelectRoom("Lab DKV")
	for _, d := range []string{"Kamera", "Tripod", "Lampu"} {
		_, added, err := c.AddItem(ctx, d, 1)
		require.NoError(t, err)
		require.True(t, added)
	}
	var got []string
	for _, it := range c.Items() {
		got = append(got, it.Description)
	}
	require.Equal(t, []string{"Kamera", "Tripod", "Lampu"}, got)
}

func TestAddItemIgnored(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name     string
		room     string
		desc     string
		quantity int
	}{
		{"no room", "", "Projector", 3},
		{"unknown room", "Gudang", "Projector", 3},
		{"empty description", "Lab PPLG", "", 3},
		{"zero quantity", "Lab PPLG", "Projector", 0},
		{"quantity too large", "Lab PPLG", "Projector", 51},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			c := openTest(t, store)
			saves := store.saves
			c.SelectRoom(tc.room)

			_, added, err := c.AddItem(ctx, tc.desc, tc.quantity)
			require.NoError(t, err)
			require.False(t, added)
			require.Equal(t, DefaultRooms(), c.Snapshot())
			require.Equal(t, saves, store.saves)
		})
	}
}

func TestAddItemUniqueIDsWithFrozenClock(t *testing.T) {
	ctx := context.Background()
	c := openTest(t, newFakeStore(), WithClock(fixedClock(42)))
	c.SelectRoom("Lab TJKT")
	seen := map[int64]bool{}
	for i := 0; i < 20; i++ {
		item, _, err := c.AddItem(ctx, "Kabel", 1)
		require.NoError(t, err)
		require.False(t, seen[item.ID], "duplicate id %d", item.ID)
		seen[item.ID] = true
	}
}

func TestAddItemIDsAfterRestoredIDs(t *testing.T) {
	store := newFakeStore()
	store.data[DefaultKey] = []byte(`{"Lab PPLG":[{"description":"A","quantity":1,"packed":false,"id":5000}],"Lab DKV":[],"Lab TJKT":[],"Lab MPLB":[]}`)
	c := openTest(t, store, WithClock(fixedClock(10)))
	c.SelectRoom("Lab PPLG")

	item, added, err := c.AddItem(context.Background(), "B", 1)
	require.NoError(t, err)
	require.True(t, added)
	require.Equal(t, int64(5001), item.ID)
}

func TestAddItemReturnsSaveError(t *testing.T) {
	store := newFakeStore()
	c := openTest(t, store)
	c.SelectRoom("Lab MPLB")
	store.saveErr = errors.New("quota exceeded")

	item, added, err := c.AddItem(context.Background(), "Printer", 1)
	require.ErrorIs(t, err, store.saveErr)
	require.True(t, added)
	require.Equal(t, []Item{item}, c.Items())
}

func seeded(t *testing.T, store *fakeStore, descs ...string) (*Controller, []Item) {
	t.Helper()
	c := openTest(t, store)
	c.SelectRoom("Lab PPLG")
	var items []Item
	for _, d := range descs {
		it, added, err := c.AddItem(context.Background(), d, 2)
		require.NoError(t, err)
		require.True(t, added)
		items = append(items, it)
	}
	return c, items
}

func TestTogglePacked(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	c, items := seeded(t, store, "Projector", "Speaker")

	require.NoError(t, c.TogglePacked(ctx, items[0].ID))
	got := c.Items()
	require.True(t, got[0].Packed)
	require.Equal(t, items[1], got[1])
	require.Equal(t, items[0].Description, got[0].Description)
	require.Equal(t, items[0].Quantity, got[0].Quantity)
	requirePersisted(t, store, c)

	require.NoError(t, c.TogglePacked(ctx, items[0].ID))
	require.Equal(t, items, c.Items())
	requirePersisted(t, store, c)
}

func TestEditDescription(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	c, items := seeded(t, store, "Projector", "Speaker")

	require.NoError(t, c.EditDescription(ctx, items[1].ID, "New Desc"))
	got := c.Items()
	want := items[1]
	want.Description = "New Desc"
	require.Equal(t, []Item{items[0], want}, got)
	requirePersisted(t, store, c)
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	c, items := seeded(t, store, "A", "B", "C", "D")

	require.NoError(t, c.RemoveItem(ctx, items[1].ID))
	got := c.Items()
	require.Len(t, got, 3)
	require.Equal(t, []Item{items[0], items[2], items[3]}, got)
	requirePersisted(t, store, c)
}

func TestRemoveDoesNotAliasCopies(t *testing.T) {
	ctx := context.Background()
	c, items := seeded(t, newFakeStore(), "A", "B", "C")
	before := c.Snapshot()

	require.NoError(t, c.RemoveItem(ctx, items[0].ID))
	require.Equal(t, items, before[RoomPPLG])
}

func TestMutationsWithUnknownID(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	c, items := seeded(t, store, "A", "B")
	stored := string(store.data[DefaultKey])

	require.NoError(t, c.RemoveItem(ctx, 999))
	require.NoError(t, c.TogglePacked(ctx, 999))
	require.NoError(t, c.EditDescription(ctx, 999, "x"))
	require.Equal(t, items, c.Items())
	require.Equal(t, stored, string(store.data[DefaultKey]))
}

func TestMutationsWithoutRoomDoNotCommit(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	c, items := seeded(t, store, "A")
	c.SelectRoom("")
	saves := store.saves

	require.NoError(t, c.RemoveItem(ctx, items[0].ID))
	require.NoError(t, c.TogglePacked(ctx, items[0].ID))
	require.NoError(t, c.EditDescription(ctx, items[0].ID, "x"))
	require.Equal(t, saves, store.saves)

	c.SelectRoom("Lab PPLG")
	require.Equal(t, items, c.Items())
}

func TestSelectRoomSwitchesVisibleItems(t *testing.T) {
	ctx := context.Background()
	c, _ := seeded(t, newFakeStore(), "A")
	c.SelectRoom("Lab DKV")
	require.NotNil(t, c.Items())
	require.Empty(t, c.Items())
	require.Equal(t, StatsEmpty, c.Stats().Kind)

	_, _, err := c.AddItem(ctx, "Kamera", 1)
	require.NoError(t, err)
	require.Len(t, c.Items(), 1)

	c.SelectRoom("Lab PPLG")
	require.Len(t, c.Items(), 1)
	require.Equal(t, "A", c.Items()[0].Description)
}
