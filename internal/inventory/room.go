package inventory

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Room is one of the fixed locations items are tracked in.
type Room string

const (
	RoomPPLG Room = "Lab PPLG"
	RoomDKV  Room = "Lab DKV"
	RoomTJKT Room = "Lab TJKT"
	RoomMPLB Room = "Lab MPLB"
)

// allRooms is also the key order of an encoded snapshot.
var allRooms = [...]Room{RoomPPLG, RoomDKV, RoomTJKT, RoomMPLB}

// maxRoomDistance is the largest edit distance ClosestRoom accepts.
const maxRoomDistance = 2

// AllRooms returns the rooms in display order.
func AllRooms() []Room {
	out := make([]Room, len(allRooms))
	copy(out, allRooms[:])
	return out
}

// ParseRoom reports whether name is exactly one of the fixed rooms.
func ParseRoom(name string) (Room, bool) {
	for _, r := range allRooms {
		if string(r) == name {
			return r, true
		}
	}
	return "", false
}

// code is the room name without the "Lab " prefix, e.g. "PPLG".
func (r Room) code() string {
	return strings.TrimPrefix(string(r), "Lab ")
}

// ClosestRoom resolves free-form input (a CLI flag, a config value) to a room.
// Both the full name and the short code are compared case-insensitively.
func ClosestRoom(input string) (Room, bool) {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return "", false
	}
	best, bestDist := Room(""), -1
	for _, r := range allRooms {
		d := min(
			levenshtein.ComputeDistance(needle, strings.ToLower(string(r))),
			levenshtein.ComputeDistance(needle, strings.ToLower(r.code())),
		)
		if bestDist < 0 || d < bestDist {
			best, bestDist = r, d
		}
	}
	if bestDist > maxRoomDistance {
		return "", false
	}
	return best, true
}
