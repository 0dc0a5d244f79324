package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nathoo/act/engine"
	"github.com/nathoo/act/engine/state"
)

const exampleGame = `{"rooms":[
	{"name":"start","scene":"Im a starting room! Welcome to this example game.","actions":[
		{"variant":"Move","fields":["Move to another room","example",""]}]},
	{"name":"example","scene":"You enter an example room, with a big, triangular key in it.\nTheres also a door with a keyhole in triangular shape.","actions":[
		{"variant":"PickUp","fields":["Pick the key up","TriangleKey",""]},
		{"variant":"Move","fields":["Try to open the door","locked","TriangleKey"]}]},
	{"name":"locked","scene":"You picked an item up and used it to open the door! This is the final room. Congratz!","actions":[
		{"variant":"Move","fields":["Move to another room","example",""]}]}
]}`

const startRender = "Im a starting room! Welcome to this example game.\n" +
	"\n" +
	"0. Move to another room\n" +
	"\n" +
	"\n"

func newTestCLI(t *testing.T, game, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	eng, err := engine.LoadGame(game)
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	var out bytes.Buffer
	c := &CLI{
		Engine: eng,
		In:     strings.NewReader(input),
		Out:    &out,
	}
	return c, &out
}

func run(t *testing.T, c *CLI) {
	t.Helper()
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestCLI_RendersStartRoom(t *testing.T) {
	c, out := newTestCLI(t, exampleGame, "")
	run(t, c)

	if out.String() != startRender {
		t.Errorf("render mismatch:\ngot  %q\nwant %q", out.String(), startRender)
	}
}

func TestCLI_MultiLineScene(t *testing.T) {
	c, out := newTestCLI(t, exampleGame, "0\n")
	run(t, c)

	want := "You enter an example room, with a big, triangular key in it.\n" +
		"Theres also a door with a keyhole in triangular shape.\n" +
		"\n" +
		"0. Pick the key up\n" +
		"\n" +
		"1. Try to open the door\n" +
		"\n" +
		"\n"
	if !strings.HasSuffix(out.String(), want) {
		t.Errorf("expected example room render at end, got:\n%s", out.String())
	}
}

func TestCLI_TriangleKeyWalkthrough(t *testing.T) {
	c, out := newTestCLI(t, exampleGame, "0\n1\n0\n1\n")
	run(t, c)

	output := out.String()
	if !strings.Contains(output, "For opening this room, you need to have a TriangleKey") {
		t.Error("expected blocked message before the key is held")
	}
	if !strings.Contains(output, "This is the final room. Congratz!") {
		t.Error("expected final room after using the key")
	}
	if c.Engine.Player.Room != "locked" {
		t.Errorf("room = %q, want locked", c.Engine.Player.Room)
	}
	if !c.Engine.Player.Inventory.Has("TriangleKey") {
		t.Error("expected TriangleKey in inventory")
	}
}

func TestCLI_InvalidInputRerenders(t *testing.T) {
	c, out := newTestCLI(t, exampleGame, "x\n7\n\n")
	run(t, c)

	if got := strings.Count(out.String(), startRender); got != 4 {
		t.Errorf("start room rendered %d times, want 4", got)
	}
	if c.Engine.Player.Room != state.StartRoom {
		t.Errorf("room = %q, want start", c.Engine.Player.Room)
	}
	if c.Engine.Turns != 0 {
		t.Errorf("turns = %d, want 0", c.Engine.Turns)
	}
}

func TestCLI_BlockedPickUp(t *testing.T) {
	game := `{"rooms":[{"name":"start","scene":"A chest.","actions":[
		{"variant":"PickUp","fields":["Take the gold","gold","crowbar"]}]}]}`
	c, out := newTestCLI(t, game, "0\n")
	run(t, c)

	if !strings.Contains(out.String(), "To pick this up, you need to have a crowbar") {
		t.Errorf("expected blocked pickup message, got:\n%s", out.String())
	}
	if c.Engine.Player.Inventory.Size() != 0 {
		t.Error("blocked pickup changed the inventory")
	}
}

func TestCLI_UnknownRoomEndsGame(t *testing.T) {
	game := `{"rooms":[{"name":"start","scene":"s","actions":[
		{"variant":"Move","fields":["Jump","void",""]}]}]}`
	c, _ := newTestCLI(t, game, "0\n0\n")

	err := c.Run()
	if !errors.Is(err, state.ErrUnknownRoom) {
		t.Fatalf("Run error = %v, want ErrUnknownRoom", err)
	}
	if !strings.Contains(err.Error(), `"void"`) {
		t.Errorf("error should name the room: %v", err)
	}
}

func TestCLI_UnknownRoomRecovery(t *testing.T) {
	game := `{"rooms":[{"name":"start","scene":"s","actions":[
		{"variant":"Move","fields":["Jump","void",""]}]}]}`
	c, out := newTestCLI(t, game, "0\n")
	c.RecoverUnknownRoom = true
	run(t, c)

	if !strings.Contains(out.String(), "returning to the previous room") {
		t.Error("expected recovery message")
	}
	if c.Engine.Player.Room != state.StartRoom {
		t.Errorf("room = %q, want start", c.Engine.Player.Room)
	}
}

func TestCLI_ClearOnMove(t *testing.T) {
	c, out := newTestCLI(t, exampleGame, "0\n1\n")
	c.ClearScreen = true
	run(t, c)

	if got := strings.Count(out.String(), "\x1b[2J"); got != 1 {
		t.Errorf("screen cleared %d times, want 1 (blocked moves do not clear)", got)
	}
}

func TestCLI_NoClearWhenDisabled(t *testing.T) {
	c, out := newTestCLI(t, exampleGame, "0\n")
	run(t, c)

	if strings.Contains(out.String(), "\x1b[") {
		t.Error("unexpected escape sequence with clearing and colour off")
	}
}

func TestCLI_Banner(t *testing.T) {
	c, out := newTestCLI(t, exampleGame, "")
	c.Banner = true
	c.ClearScreen = true
	c.StartupDelay = 4 * time.Second
	var slept time.Duration
	c.sleep = func(d time.Duration) { slept = d }
	run(t, c)

	output := out.String()
	if !strings.HasPrefix(output, "Made with") {
		t.Error("expected banner first")
	}
	if !strings.Contains(output, "Make your own game at github.com/ichy-wayland/act") {
		t.Error("expected project line")
	}
	if slept != 4*time.Second {
		t.Errorf("slept %v, want 4s", slept)
	}
	clearAt := strings.Index(output, "\x1b[2J")
	roomAt := strings.Index(output, "Im a starting room")
	if clearAt < 0 || clearAt > roomAt {
		t.Error("expected the screen to be cleared between banner and first room")
	}
}

func TestCLI_ColorBlockedMessage(t *testing.T) {
	c, out := newTestCLI(t, exampleGame, "0\n1\n")
	c.Color = true
	run(t, c)

	if !strings.Contains(out.String(), "\x1b[31mFor opening this room") {
		t.Errorf("expected red blocked message, got:\n%q", out.String())
	}
}

func TestCLI_QuitCommand(t *testing.T) {
	c, out := newTestCLI(t, exampleGame, "/quit\n0\n")
	run(t, c)

	if !strings.Contains(out.String(), "[Goodbye.]") {
		t.Error("expected goodbye message")
	}
	if c.Engine.Player.Room != state.StartRoom {
		t.Error("input after /quit should not be processed")
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, exampleGame, "/help\n/quit\n")
	run(t, c)

	output := out.String()
	for _, cmd := range []string{"/quit", "/help", "/state", "/trace"} {
		if !strings.Contains(output, cmd) {
			t.Errorf("expected %s in help output", cmd)
		}
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, exampleGame, "/bogus\n/quit\n")
	run(t, c)

	if !strings.Contains(out.String(), "Unknown command: /bogus") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, exampleGame, "0\n0\n/state\n/quit\n")
	run(t, c)

	output := out.String()
	if !strings.Contains(output, "[Room: example]") {
		t.Error("expected room in state output")
	}
	if !strings.Contains(output, "[Inventory: TriangleKey]") {
		t.Error("expected inventory in state output")
	}
	if !strings.Contains(output, "[Turn: 2]") {
		t.Error("expected turn count in state output")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, exampleGame, "/trace\n0\n/trace\n0\n/quit\n")
	run(t, c)

	output := out.String()
	if !strings.Contains(output, "Trace output enabled") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "[[trace] action 0: moved example]") {
		t.Error("expected trace line for the move")
	}
	if !strings.Contains(output, "Trace output disabled") {
		t.Error("expected trace disabled message")
	}
	if strings.Count(output, "[trace]") != 1 {
		t.Error("expected exactly one trace line")
	}
}

func TestCLI_ScriptPlayback(t *testing.T) {
	c, out := newTestCLI(t, exampleGame, "# walk in\n0\n# grab the key\n0\n")
	c.EchoInput = true
	run(t, c)

	output := out.String()
	if strings.Contains(output, "walk in") {
		t.Error("comments should not be echoed")
	}
	if strings.Count(output, "> 0") != 2 {
		t.Error("expected both inputs echoed")
	}
	if !c.Engine.Player.Inventory.Has("TriangleKey") {
		t.Error("expected the script to pick up the key")
	}
}

func TestSceneLines(t *testing.T) {
	tests := []struct {
		scene string
		want  []string
	}{
		{"", nil},
		{"one", []string{"one"}},
		{"one\ntwo", []string{"one", "two"}},
		{"one\r\ntwo\n", []string{"one", "two"}},
		{"one\n\nthree", []string{"one", "", "three"}},
	}
	for _, tt := range tests {
		got := sceneLines(tt.scene)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("sceneLines(%q) = %q, want %q", tt.scene, got, tt.want)
		}
	}
}
