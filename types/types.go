// Package types defines the shared data structures for the act engine.
// This package contains only type definitions and trivial accessors.
package types

import "github.com/zyedidia/generic/mapset"

// Action is a player-selectable transition. The set of actions is closed:
// only PickUp and Move implement it.
type Action interface {
	// Label is the text shown to the player in the action menu.
	Label() string
	// Requirement is the item that must be held, or "" for none.
	Requirement() string
	action()
}

// PickUp adds Item to the inventory when Requires is satisfied.
type PickUp struct {
	Text     string
	Item     string
	Requires string
}

// Move sets the player's room to Destination when Requires is satisfied.
type Move struct {
	Text        string
	Destination string
	Requires    string
}

func (a PickUp) Label() string       { return a.Text }
func (a PickUp) Requirement() string { return a.Requires }
func (PickUp) action()               {}

func (a Move) Label() string       { return a.Text }
func (a Move) Requirement() string { return a.Requires }
func (Move) action()               {}

// Room is a location in the world. Its ID is the key in World.Rooms.
type Room struct {
	Scene   string
	Actions []Action // order is the index the player types
}

// World is the immutable room graph, built once at load time.
type World struct {
	Rooms map[string]Room
}

// Player is the single mutable session record.
type Player struct {
	Room      string
	Inventory mapset.Set[string]
}

// EffectKind identifies the outcome of applying an action.
type EffectKind int

const (
	ItemAcquired EffectKind = iota + 1
	Moved
	Blocked
)

func (k EffectKind) String() string {
	switch k {
	case ItemAcquired:
		return "item_acquired"
	case Moved:
		return "moved"
	case Blocked:
		return "blocked"
	default:
		return "none"
	}
}

// Effect is the outcome of one action. Target is the acquired item, the
// destination room, or the missing requirement, depending on Kind.
type Effect struct {
	Kind   EffectKind
	Target string
}

// Result is the output of a single game step.
type Result struct {
	Ignored bool   // input did not select an action; nothing changed
	Index   int    // selected action index
	Action  Action // nil when Ignored
	Effect  Effect
	Clear   bool // presentation should clear the screen before re-rendering
}
