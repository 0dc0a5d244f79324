// Package engine provides the Step() orchestrator that wires together
// selection parsing, the game state model and the action rules into a
// single turn.
package engine

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nathoo/act/engine/effects"
	"github.com/nathoo/act/engine/parser"
	"github.com/nathoo/act/engine/state"
	"github.com/nathoo/act/loader"
	"github.com/nathoo/act/types"
)

// Engine holds the world and the single mutable player record.
type Engine struct {
	World  *types.World
	Player *types.Player

	// ID identifies this game session in logs.
	ID string
	// Turns counts accepted actions, blocked ones included.
	Turns int
	// Warnings holds the validation warnings found at load time.
	Warnings []string

	logger *zap.Logger
	strict bool
	prev   string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStrict turns validation warnings into load errors.
func WithStrict(strict bool) Option {
	return func(e *Engine) { e.strict = strict }
}

// LoadGame parses a JSON world description and starts a new game in it.
func LoadGame(text string, opts ...Option) (*Engine, error) {
	w, err := loader.ParseJSON(text)
	if err != nil {
		return nil, fmt.Errorf("loading game: %w", err)
	}
	return New(w, opts...)
}

// LoadFile reads a world file, choosing the front end by extension, and
// starts a new game in it.
func LoadFile(path string, opts ...Option) (*Engine, error) {
	w, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading game: %w", err)
	}
	return New(w, opts...)
}

// New validates w and creates a player standing in the start room.
func New(w *types.World, opts ...Option) (*Engine, error) {
	e := &Engine{
		World:  w,
		Player: state.NewPlayer(),
		ID:     uuid.NewString(),
		logger: zap.NewNop(),
		prev:   state.StartRoom,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(zap.String("session", e.ID))

	warnings, err := loader.Validate(w, e.strict)
	e.Warnings = warnings
	for _, msg := range warnings {
		e.logger.Warn("world validation", zap.String("warning", msg))
	}
	if err != nil {
		return nil, err
	}

	e.logger.Info("game started",
		zap.Int("rooms", len(w.Rooms)),
		zap.Int("warnings", len(warnings)))
	return e, nil
}

// Room returns the room the player is standing in.
func (e *Engine) Room() (types.Room, error) {
	return state.CurrentRoom(e.World, e.Player)
}

// Step processes one line of player input and returns the result.
// Input that does not select an action leaves the game untouched.
func (e *Engine) Step(input string) types.Result {
	idx, ok := parser.Selection(input)
	if !ok {
		return types.Result{Ignored: true, Index: -1}
	}
	return e.Select(idx)
}

// Select applies the action at idx in the current room.
func (e *Engine) Select(idx int) types.Result {
	room, err := e.Room()
	if err != nil || idx < 0 || idx >= len(room.Actions) {
		return types.Result{Ignored: true, Index: idx}
	}

	action := room.Actions[idx]
	from := e.Player.Room
	eff := effects.Apply(action, e.Player)
	e.Turns++

	if eff.Kind == types.Moved {
		e.prev = from
	}

	e.logger.Debug("step",
		zap.Int("turn", e.Turns),
		zap.String("room", from),
		zap.Int("action", idx),
		zap.Stringer("effect", eff.Kind),
		zap.String("target", eff.Target))

	return types.Result{
		Index:  idx,
		Action: action,
		Effect: eff,
		Clear:  eff.Kind == types.Moved,
	}
}

// RestorePrevious puts the player back in the room they last moved from.
// Used to recover after a move into a room the world does not define.
func (e *Engine) RestorePrevious() {
	e.logger.Warn("restoring previous room",
		zap.String("unknown", e.Player.Room),
		zap.String("room", e.prev))
	e.Player.Room = e.prev
}

// BlockedMessage tells the player which item a blocked action needs.
func BlockedMessage(r types.Result) string {
	if _, ok := r.Action.(types.PickUp); ok {
		return fmt.Sprintf("To pick this up, you need to have a %s", r.Effect.Target)
	}
	return fmt.Sprintf("For opening this room, you need to have a %s", r.Effect.Target)
}
