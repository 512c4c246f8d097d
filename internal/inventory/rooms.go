package inventory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Quantity bounds offered by the form.
const (
	MinQuantity = 1
	MaxQuantity = 50
)

// ErrMalformedSnapshot is returned by DecodeSnapshot for data that does not
// have the exact shape of a Rooms value.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Item is a single checklist entry. Field order matches the stored JSON.
type Item struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Packed      bool   `json:"packed"`
	ID          int64  `json:"id"`
}

// Rooms maps every fixed room to its ordered item list.
type Rooms map[Room][]Item

// DefaultRooms returns the four rooms, each with no items.
func DefaultRooms() Rooms {
	out := make(Rooms, len(allRooms))
	for _, r := range allRooms {
		out[r] = []Item{}
	}
	return out
}

// Clone returns a deep copy.
func (r Rooms) Clone() Rooms {
	out := make(Rooms, len(r))
	for room, items := range r {
		cp := make([]Item, len(items))
		copy(cp, items)
		out[room] = cp
	}
	return out
}

// MarshalJSON writes the rooms in fixed order, empty rooms as [].
func (r Rooms) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, room := range allRooms {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalPlain(string(room))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		items := r[room]
		if items == nil {
			items = []Item{}
		}
		val, err := marshalPlain(items)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", room, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalPlain encodes v without HTML escaping so descriptions like "A&B"
// are stored as typed. U+2028 and U+2029 are still written as \u escapes and
// invalid UTF-8 becomes U+FFFD, so a decoded and re-encoded snapshot is equal
// in value but not always in bytes.
func marshalPlain(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// itemRecord detects missing fields, which a plain Item would zero-fill.
type itemRecord struct {
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity"`
	Packed      *bool   `json:"packed"`
	ID          *int64  `json:"id"`
}

// DecodeSnapshot parses a stored snapshot. It accepts exactly the four room
// keys, each holding an array of complete items with quantities in range and
// ids unique within the room. Anything else wraps ErrMalformedSnapshot.
func DecodeSnapshot(data []byte) (Rooms, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not an object", ErrMalformedSnapshot)
	}
	for key := range raw {
		if _, ok := ParseRoom(key); !ok {
			return nil, fmt.Errorf("%w: unknown room %q", ErrMalformedSnapshot, key)
		}
	}
	out := make(Rooms, len(allRooms))
	for _, room := range allRooms {
		msg, ok := raw[string(room)]
		if !ok {
			return nil, fmt.Errorf("%w: missing room %q", ErrMalformedSnapshot, room)
		}
		items, err := decodeItems(msg)
		if err != nil {
			return nil, fmt.Errorf("%w: room %q: %v", ErrMalformedSnapshot, room, err)
		}
		out[room] = items
	}
	return out, nil
}

func decodeItems(msg json.RawMessage) ([]Item, error) {
	if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return nil, errors.New("items must be an array")
	}
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.DisallowUnknownFields()
	var records []itemRecord
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(records))
	seen := make(map[int64]struct{}, len(records))
	for i, rec := range records {
		if rec.Description == nil || rec.Quantity == nil || rec.Packed == nil || rec.ID == nil {
			return nil, fmt.Errorf("item %d: missing field", i)
		}
		if *rec.Quantity < MinQuantity || *rec.Quantity > MaxQuantity {
			return nil, fmt.Errorf("item %d: quantity %d out of range", i, *rec.Quantity)
		}
		if _, dup := seen[*rec.ID]; dup {
			return nil, fmt.Errorf("item %d: duplicate id %d", i, *rec.ID)
		}
		seen[*rec.ID] = struct{}{}
		items = append(items, Item{
			Description: *rec.Description,
			Quantity:    *rec.Quantity,
			Packed:      *rec.Packed,
			ID:          *rec.ID,
		})
	}
	return items, nil
}
