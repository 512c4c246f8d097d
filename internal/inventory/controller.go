// Package inventory owns the room checklist state and keeps the stored
// snapshot in step with it: every mutation ends with a synchronous commit.
package inventory

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultKey is the store key the snapshot lives under.
const DefaultKey = "roomsData"

// corruptSuffix is appended to the key when a rejected snapshot is set aside.
const corruptSuffix = ".corrupt"

// Store is the key-value persistence the controller writes through.
// Load returns (nil, nil) when the key has never been written.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Controller holds the rooms and the selected room. It is not safe for
// concurrent use; the UI event loop owns it.
type Controller struct {
	store    Store
	key      string
	log      *zap.Logger
	ids      *idGenerator
	rooms    Rooms
	selected string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger; the default discards.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.key = key
		}
	}
}

// WithClock replaces time.Now as the id source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.ids.now = now
		}
	}
}

// Open restores the rooms from store, falling back to DefaultRooms when the
// snapshot is absent, unreadable or malformed, and commits the result so the
// store holds its canonical form. Only that initial write can fail.
func Open(ctx context.Context, store Store, opts ...Option) (*Controller, error) {
	c := &Controller{
		store: store,
		key:   DefaultKey,
		log:   zap.NewNop(),
		ids:   &idGenerator{now: time.Now},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rooms = c.restore(ctx)
	for _, items := range c.rooms {
		for _, it := range items {
			c.ids.observe(it.ID)
		}
	}
	if err := c.commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) restore(ctx context.Context) Rooms {
	data, err := c.store.Load(ctx, c.key)
	if err != nil {
		c.log.Warn("load snapshot failed, starting empty", zap.String("key", c.key), zap.Error(err))
		return DefaultRooms()
	}
	if data == nil {
		c.log.Info("no snapshot stored, starting empty", zap.String("key", c.key))
		return DefaultRooms()
	}
	rooms, err := DecodeSnapshot(data)
	if err != nil {
		backup := c.key + corruptSuffix
		c.log.Warn("snapshot rejected, starting empty",
			zap.String("key", c.key), zap.String("backup_key", backup), zap.Error(err))
		if saveErr := c.store.Save(ctx, backup, data); saveErr != nil {
			c.log.Error("back up rejected snapshot", zap.String("key", backup), zap.Error(saveErr))
		}
		return DefaultRooms()
	}
	c.log.Info("snapshot restored", zap.String("key", c.key), zap.Int("items", countItems(rooms)))
	return rooms
}

// commit writes the full snapshot, replacing whatever was stored.
func (c *Controller) commit(ctx context.Context) error {
	data, err := c.rooms.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.store.Save(ctx, c.key, data); err != nil {
		return fmt.Errorf("save snapshot %q: %w", c.key, err)
	}
	c.log.Debug("snapshot committed", zap.String("key", c.key), zap.Int("bytes", len(data)))
	return nil
}

// SelectRoom sets the selected room. Any string is accepted; one that is not
// a room simply shows no items and makes the mutations no-ops.
func (c *Controller) SelectRoom(name string) {
	c.selected = name
}

// SelectedRoom returns the raw selected value, possibly empty.
func (c *Controller) SelectedRoom() string {
	return c.selected
}

func (c *Controller) selectedRoom() (Room, bool) {
	return ParseRoom(c.selected)
}

// Items returns a copy of the selected room's items, or nil if no room is selected.
func (c *Controller) Items() []Item {
	room, ok := c.selectedRoom()
	if !ok {
		return nil
	}
	out := make([]Item, len(c.rooms[room]))
	copy(out, c.rooms[room])
	return out
}

// Stats summarises the selected room.
func (c *Controller) Stats() Stats {
	return Summarize(c.Items())
}

// Snapshot returns a deep copy of every room.
func (c *Controller) Snapshot() Rooms {
	return c.rooms.Clone()
}

// AddItem appends a new unpacked item to the selected room. It reports false
// without touching state when description is empty, no room is selected, or
// quantity is outside MinQuantity..MaxQuantity.
func (c *Controller) AddItem(ctx context.Context, description string, quantity int) (Item, bool, error) {
	room, ok := c.selectedRoom()
	if !ok || description == "" {
		return Item{}, false, nil
	}
	if quantity < MinQuantity || quantity > MaxQuantity {
		return Item{}, false, nil
	}
	item := Item{
		Description: description,
		Quantity:    quantity,
		ID:          c.ids.next(),
	}
	c.rooms[room] = append(c.rooms[room], item)
	return item, true, c.commit(ctx)
}

// RemoveItem drops the first item with id from the selected room.
func (c *Controller) RemoveItem(ctx context.Context, id int64) error {
	room, ok := c.selectedRoom()
	if !ok {
		return nil
	}
	items := c.rooms[room]
	if i := indexOf(items, id); i >= 0 {
		c.rooms[room] = append(items[:i:i], items[i+1:]...)
	}
	return c.commit(ctx)
}

// TogglePacked flips the packed flag of the item with id.
func (c *Controller) TogglePacked(ctx context.Context, id int64) error {
	room, ok := c.selectedRoom()
	if !ok {
		return nil
	}
	if i := indexOf(c.rooms[room], id); i >= 0 {
		c.rooms[room][i].Packed = !c.rooms[room][i].Packed
	}
	return c.commit(ctx)
}

// EditDescription replaces the description of the item with id.
func (c *Controller) EditDescription(ctx context.Context, id int64, description string) error {
	room, ok := c.selectedRoom()
	if !ok {
		return nil
	}
	if i := indexOf(c.rooms[room], id); i >= 0 {
		c.rooms[room][i].Description = description
	}
	return c.commit(ctx)
}

func indexOf(items []Item, id int64) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func countItems(r Rooms) int {
	n := 0
	for _, items := range r {
		n += len(items)
	}
	return n
}
