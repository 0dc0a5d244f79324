package loader

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Room declarations while a world script runs.
type collector struct {
	rooms []luaRoom
}

type luaRoom struct {
	id    string
	table *lua.LTable
}

// registerAPI registers the world constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Room "id" { scene = "...", actions = { ... } }, curried.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.rooms = append(coll.rooms, luaRoom{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// PickUp("label", "item" [, "requirement"])
	L.SetGlobal(variantPickUp, L.NewFunction(actionConstructor(variantPickUp)))

	// Move("label", "room" [, "requirement"])
	L.SetGlobal(variantMove, L.NewFunction(actionConstructor(variantMove)))
}

// actionConstructor builds the { variant = ..., fields = {...} } table that
// the JSON document would carry for the same action.
func actionConstructor(variant string) lua.LGFunction {
	return func(L *lua.LState) int {
		label := L.CheckString(1)
		target := L.CheckString(2)
		requirement := L.OptString(3, "")

		fields := L.NewTable()
		fields.Append(lua.LString(label))
		fields.Append(lua.LString(target))
		fields.Append(lua.LString(requirement))

		tbl := L.NewTable()
		tbl.RawSetString("variant", lua.LString(variant))
		tbl.RawSetString("fields", fields)
		L.Push(tbl)
		return 1
	}
}

// document converts the collected Lua tables into the shared raw shape.
func (c *collector) document() (rawDocument, error) {
	rooms := make([]rawRoom, 0, len(c.rooms))
	for _, r := range c.rooms {
		rr, err := convertRoom(r)
		if err != nil {
			return rawDocument{}, err
		}
		rooms = append(rooms, rr)
	}
	return rawDocument{Rooms: &rooms}, nil
}

func convertRoom(r luaRoom) (rawRoom, error) {
	name := r.id
	rr := rawRoom{Name: &name}

	if s, ok := r.table.RawGetString("scene").(lua.LString); ok {
		scene := string(s)
		rr.Scene = &scene
	}

	actsTbl, ok := r.table.RawGetString("actions").(*lua.LTable)
	if !ok {
		return rr, nil
	}
	actions := make([]rawAction, 0, actsTbl.Len())
	for i := 1; i <= actsTbl.Len(); i++ {
		at, ok := actsTbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return rawRoom{}, malformed(name, fmt.Errorf("action %d is not a table", i-1))
		}
		ra, err := convertAction(at)
		if err != nil {
			return rawRoom{}, malformed(name, fmt.Errorf("action %d: %w", i-1, err))
		}
		actions = append(actions, ra)
	}
	rr.Actions = &actions
	return rr, nil
}

func convertAction(tbl *lua.LTable) (rawAction, error) {
	var ra rawAction
	if v, ok := tbl.RawGetString("variant").(lua.LString); ok {
		variant := string(v)
		ra.Variant = &variant
	}
	ft, ok := tbl.RawGetString("fields").(*lua.LTable)
	if !ok {
		return ra, nil
	}
	fields := make([]string, 0, ft.Len())
	for i := 1; i <= ft.Len(); i++ {
		s, ok := ft.RawGetInt(i).(lua.LString)
		if !ok {
			return rawAction{}, errors.New("fields must be strings")
		}
		fields = append(fields, string(s))
	}
	ra.Fields = &fields
	return ra, nil
}
