package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/act/types"
)

// Error kinds carried by ParseError. Match them with errors.Is.
var (
	ErrMalformedDocument    = errors.New("malformed document")
	ErrUnknownActionVariant = errors.New("unknown action variant")
	ErrMalformedAction      = errors.New("malformed action")
)

// ParseError describes why a world description could not be loaded.
type ParseError struct {
	Kind   error  // one of the Err* kinds above
	Room   string // room name, when known
	Action int    // index of the action within the room, or -1
	Err    error  // underlying cause, may be nil
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Room != "" {
		fmt.Fprintf(&b, " in room %q", e.Room)
	}
	if e.Action >= 0 {
		fmt.Fprintf(&b, " at action %d", e.Action)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func malformed(room string, err error) *ParseError {
	return &ParseError{Kind: ErrMalformedDocument, Room: room, Action: -1, Err: err}
}

// rawDocument is the decoded, unvalidated shape shared by every front end.
// Pointers distinguish a missing key from an empty value.
type rawDocument struct {
	Rooms *[]rawRoom `json:"rooms" yaml:"rooms"`
}

type rawRoom struct {
	Name    *string      `json:"name" yaml:"name"`
	Scene   *string      `json:"scene" yaml:"scene"`
	Actions *[]rawAction `json:"actions" yaml:"actions"`
}

type rawAction struct {
	Variant *string   `json:"variant" yaml:"variant"`
	Fields  *[]string `json:"fields" yaml:"fields"`
}

// Action variant tags as they appear in world documents.
const (
	variantPickUp = "PickUp"
	variantMove   = "Move"
)

// compile converts a decoded document into a World. Rooms with a repeated
// name replace the earlier definition.
func compile(doc rawDocument) (*types.World, error) {
	if doc.Rooms == nil {
		return nil, malformed("", errors.New(`missing "rooms" list`))
	}

	w := &types.World{Rooms: make(map[string]types.Room, len(*doc.Rooms))}
	for i, rr := range *doc.Rooms {
		if rr.Name == nil {
			return nil, malformed("", fmt.Errorf(`room %d: missing "name"`, i))
		}
		name := *rr.Name
		if rr.Scene == nil {
			return nil, malformed(name, errors.New(`missing "scene"`))
		}
		if rr.Actions == nil {
			return nil, malformed(name, errors.New(`missing "actions" list`))
		}

		actions := make([]types.Action, 0, len(*rr.Actions))
		for j, ra := range *rr.Actions {
			a, err := compileAction(name, j, ra)
			if err != nil {
				return nil, err
			}
			actions = append(actions, a)
		}

		w.Rooms[name] = types.Room{Scene: *rr.Scene, Actions: actions}
	}
	return w, nil
}

// compileAction checks the variant tag before the field count.
func compileAction(room string, index int, ra rawAction) (types.Action, error) {
	if ra.Variant == nil || ra.Fields == nil {
		return nil, &ParseError{
			Kind: ErrMalformedDocument, Room: room, Action: index,
			Err: errors.New(`action needs "variant" and "fields"`),
		}
	}

	variant := *ra.Variant
	if variant != variantPickUp && variant != variantMove {
		return nil, &ParseError{
			Kind: ErrUnknownActionVariant, Room: room, Action: index,
			Err: fmt.Errorf("%q (want %s or %s)", variant, variantPickUp, variantMove),
		}
	}

	fields := *ra.Fields
	if len(fields) != 3 {
		return nil, &ParseError{
			Kind: ErrMalformedAction, Room: room, Action: index,
			Err: fmt.Errorf("%s needs 3 fields (label, target, requirement), got %d", variant, len(fields)),
		}
	}

	if variant == variantPickUp {
		return types.PickUp{Text: fields[0], Item: fields[1], Requires: fields[2]}, nil
	}
	return types.Move{Text: fields[0], Destination: fields[1], Requires: fields[2]}, nil
}
