// Package state manages the mutable player state against the immutable
// world definition.
package state

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/act/types"
)

// StartRoom is the room every game begins in.
const StartRoom = "start"

// ErrUnknownRoom is returned when the player's room is not in the world.
var ErrUnknownRoom = errors.New("unknown room")

// NewPlayer creates a fresh player in the start room with an empty inventory.
func NewPlayer() *types.Player {
	return &types.Player{
		Room:      StartRoom,
		Inventory: mapset.New[string](),
	}
}

// CurrentRoom returns the room the player is in.
func CurrentRoom(w *types.World, p *types.Player) (types.Room, error) {
	room, ok := w.Rooms[p.Room]
	if !ok {
		return types.Room{}, fmt.Errorf("%w %q", ErrUnknownRoom, p.Room)
	}
	return room, nil
}

// HasItem reports whether the player holds itemID. The empty id means
// "no requirement" and is always held.
func HasItem(p *types.Player, itemID string) bool {
	if itemID == "" {
		return true
	}
	return p.Inventory.Has(itemID)
}

// InventoryList returns the held items in sorted order.
func InventoryList(p *types.Player) []string {
	items := make([]string, 0, p.Inventory.Size())
	p.Inventory.Each(func(id string) {
		items = append(items, id)
	})
	sort.Strings(items)
	return items
}
