// Package loader turns a serialized world description into an immutable
// types.World. JSON is the canonical encoding; YAML and Lua front ends decode
// into the same document shape and share one compile step.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"

	"github.com/nathoo/act/types"
)

// Format selects the front end used to decode a world description.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatLua
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatLua:
		return "lua"
	default:
		return "json"
	}
}

// FormatFromPath picks a format from the file extension. Anything that is
// not YAML or Lua is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".lua":
		return FormatLua
	default:
		return FormatJSON
	}
}

// Load reads the world description at path and parses it.
func Load(path string) (*types.World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world file %s: %w", path, err)
	}
	return Parse(data, FormatFromPath(path))
}

// ParseJSON parses a JSON world description.
func ParseJSON(text string) (*types.World, error) {
	return Parse([]byte(text), FormatJSON)
}

// Parse decodes data in the given format and compiles it into a World.
// It has no side effects beyond the returned value.
func Parse(data []byte, format Format) (*types.World, error) {
	var (
		doc rawDocument
		err error
	)
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatLua:
		doc, err = runLua(string(data))
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			return nil, pe
		}
		return nil, malformed("", fmt.Errorf("decoding %s: %w", format, err))
	}
	return compile(doc)
}

// runLua executes a world script in a sandboxed VM and collects the rooms
// it declares. The VM is discarded afterwards.
func runLua(src string) (rawDocument, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	if err := L.DoString(src); err != nil {
		return rawDocument{}, fmt.Errorf("executing world script: %w", err)
	}
	return coll.document()
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the script.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "print",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Worlds must load identically every time.
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("random", lua.LNil)
		tbl.RawSetString("randomseed", lua.LNil)
	}
}
