// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the act interpreter.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ahmetb/go-cursor"
	"github.com/mgutz/ansi"

	"github.com/nathoo/act/engine"
	"github.com/nathoo/act/engine/parser"
	"github.com/nathoo/act/engine/state"
	"github.com/nathoo/act/types"
)

const logo = `
      _/           _//   _/// _//////
     _/ //      _//   _//     _//
    _/  _//    _//            _//
   _//   _//   _//            _//
  _////// _//  _//            _//
 _//       _//  _//   _//     _//
_//         _//   _////       _//
`

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine *engine.Engine
	In     io.Reader
	Out    io.Writer

	Banner       bool          // show the splash before the first room
	StartupDelay time.Duration // how long the splash stays up
	ClearScreen  bool          // clear after the splash and on every move
	Color        bool
	Trace        bool
	EchoInput    bool // echo each input line and skip # comments (for script playback)

	// RecoverUnknownRoom sends the player back to the previous room when a
	// move leads nowhere, instead of ending the game.
	RecoverUnknownRoom bool

	sleep func(time.Duration)
}

// New creates a CLI wired to the given engine, on stdin and stdout.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine:       eng,
		In:           os.Stdin,
		Out:          os.Stdout,
		Banner:       true,
		StartupDelay: 4 * time.Second,
		ClearScreen:  true,
		sleep:        time.Sleep,
	}
}

// Run starts the game loop: render the room, read a line, apply the selected
// action, repeat. It returns nil on end of input or /quit, and the error if
// the player ends up in a room the world does not define.
func (c *CLI) Run() error {
	if c.Banner {
		c.printBanner()
		c.wait(c.StartupDelay)
		c.clear()
	}

	scanner := bufio.NewScanner(c.In)
	for {
		room, err := c.Engine.Room()
		if err != nil {
			if !c.RecoverUnknownRoom {
				return err
			}
			c.printSystem(fmt.Sprintf("%v; returning to the previous room.", err))
			c.Engine.RestorePrevious()
			continue
		}
		c.renderRoom(room)

		input, ok := c.readLine(scanner)
		if !ok {
			return scanner.Err()
		}

		if parser.IsMeta(input) {
			if c.handleMeta(strings.TrimSpace(input)) {
				return nil // /quit
			}
			continue
		}

		result := c.Engine.Step(input)
		if result.Ignored {
			continue
		}
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// readLine returns the next line of input. In script playback it echoes the
// line and skips comments.
func (c *CLI) readLine(scanner *bufio.Scanner) (string, bool) {
	for scanner.Scan() {
		line := scanner.Text()
		if !c.EchoInput {
			return line, true
		}
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		c.printLine("> " + line)
		return line, true
	}
	return "", false
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"Type the number of an action and press Enter.",
		"",
		"System:",
		"  /quit   Exit game",
		"  /help   Show this help",
		"  /state  Show room, inventory and turn count",
		"  /trace  Toggle effect trace output",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	inv := state.InventoryList(c.Engine.Player)
	items := "(empty)"
	if len(inv) > 0 {
		items = strings.Join(inv, ", ")
	}
	c.printSystem(fmt.Sprintf("Turn: %d", c.Engine.Turns))
	c.printSystem(fmt.Sprintf("Room: %s", c.Engine.Player.Room))
	c.printSystem(fmt.Sprintf("Inventory: %s", items))
}

// renderRoom prints the scene, then each action with its index.
func (c *CLI) renderRoom(room types.Room) {
	for _, line := range sceneLines(room.Scene) {
		c.printLine(line)
	}
	c.printLine("")
	for i, a := range room.Actions {
		c.printLine(fmt.Sprintf("%d. %s\n", i, a.Label()))
	}
	c.printLine("")
}

func (c *CLI) printResult(result types.Result) {
	switch result.Effect.Kind {
	case types.Blocked:
		c.printBlocked(engine.BlockedMessage(result))
	case types.Moved:
		if result.Clear {
			c.clear()
		}
	}
}

func (c *CLI) printTrace(result types.Result) {
	c.printSystem(fmt.Sprintf("[trace] action %d: %s %s", result.Index, result.Effect.Kind, result.Effect.Target))
}

func (c *CLI) printBanner() {
	c.printLine("Made with \n")
	c.print(logo + "\n")
	c.printLine("Make your own game at github.com/ichy-wayland/act")
}

func (c *CLI) wait(d time.Duration) {
	if c.sleep == nil || d <= 0 {
		return
	}
	c.sleep(d)
}

func (c *CLI) clear() {
	if !c.ClearScreen {
		return
	}
	c.print(cursor.ClearEntireScreen() + cursor.MoveTo(1, 1))
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	c.printLine(c.colorize(fmt.Sprintf("[%s]", text), "cyan"))
}

func (c *CLI) printBlocked(text string) {
	c.printLine(c.colorize(text, "red"))
}

func (c *CLI) colorize(text, style string) string {
	if !c.Color {
		return text
	}
	return ansi.Color(text, style)
}

// sceneLines splits a scene into display lines. A trailing newline does not
// produce an extra empty line.
func sceneLines(scene string) []string {
	if scene == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(scene, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
