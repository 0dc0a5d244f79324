// Package effects implements centralized state mutation via the Apply function.
// Each action kind is one atomic operation against the player state.
package effects

import (
	"github.com/nathoo/act/engine/state"
	"github.com/nathoo/act/types"
)

// Apply applies a single action to the player, mutating it when the
// action's requirement is met. It never touches the world, and the Move
// destination is not checked here: a bad destination surfaces on the next
// state.CurrentRoom lookup.
func Apply(a types.Action, p *types.Player) types.Effect {
	if !state.HasItem(p, a.Requirement()) {
		return types.Effect{Kind: types.Blocked, Target: a.Requirement()}
	}

	switch act := a.(type) {
	case types.PickUp:
		p.Inventory.Put(act.Item)
		return types.Effect{Kind: types.ItemAcquired, Target: act.Item}

	case types.Move:
		p.Room = act.Destination
		return types.Effect{Kind: types.Moved, Target: act.Destination}
	}

	// Unreachable: Action is sealed to PickUp and Move.
	return types.Effect{}
}
