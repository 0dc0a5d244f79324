package loader

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/act/engine/parser"
	"github.com/nathoo/act/engine/state"
	"github.com/nathoo/act/types"
)

// ErrNoStartRoom is returned when a world has no room to begin in.
var ErrNoStartRoom = errors.New(`world has no "start" room`)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors       []string
	Warnings     []string
	missingStart bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Is lets errors.Is(err, ErrNoStartRoom) see through a ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrNoStartRoom && e.missingStart
}

// Validate checks a world for references that will fail during play.
// A missing start room is always an error. Dangling references are only
// warnings, so the bad reference surfaces when the player reaches it, unless
// strict is set, in which case every warning is also an error.
func Validate(w *types.World, strict bool) ([]string, error) {
	ve := &ValidationError{}

	if _, ok := w.Rooms[state.StartRoom]; !ok {
		ve.missingStart = true
		ve.Errors = append(ve.Errors, fmt.Sprintf("start room %q not found in defined rooms", state.StartRoom))
	}

	granted := map[string]bool{}
	for _, room := range w.Rooms {
		for _, a := range room.Actions {
			if p, ok := a.(types.PickUp); ok {
				granted[p.Item] = true
			}
		}
	}

	ids := make([]string, 0, len(w.Rooms))
	for id := range w.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		room := w.Rooms[id]
		if len(room.Actions) > parser.MaxSelectable {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"room %q has %d actions; only the first %d can be selected",
				id, len(room.Actions), parser.MaxSelectable))
		}
		for i, a := range room.Actions {
			if m, ok := a.(types.Move); ok {
				if _, ok := w.Rooms[m.Destination]; !ok {
					ve.Warnings = append(ve.Warnings, fmt.Sprintf(
						"room %q action %d moves to undefined room %q", id, i, m.Destination))
				}
			}
			if req := a.Requirement(); req != "" && !granted[req] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"room %q action %d requires %q, which no PickUp grants", id, i, req))
			}
		}
	}

	if strict {
		ve.Errors = append(ve.Errors, ve.Warnings...)
	}
	if len(ve.Errors) > 0 {
		return ve.Warnings, ve
	}
	return ve.Warnings, nil
}
