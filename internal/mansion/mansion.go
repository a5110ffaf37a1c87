// Package mansion holds the navigable map of a case: a fixed binary tree of named rooms.
//
// Rooms live in an arena owned by the Map and are addressed by stable RoomID indices. A Map is assembled once with a
// Builder and is read-only afterwards.
package mansion

import (
	"github.com/myrjola/detectivequest/internal/errors"
	"log/slog"
)

var (
	ErrDuplicateRoom = errors.NewSentinel("duplicate room name")
	ErrUnknownRoom   = errors.NewSentinel("unknown room")
	ErrSlotTaken     = errors.NewSentinel("child slot already taken")
	ErrHasParent     = errors.NewSentinel("room already has a parent")
	ErrUnreachable   = errors.NewSentinel("room unreachable from root")
)

// RoomID addresses a room inside the arena of one Map or Builder.
type RoomID int

// NoRoom marks an absent child.
const NoRoom RoomID = -1

// Direction selects one of the two child slots of a room.
type Direction int

const (
	Left Direction = iota
	Right
)

// String returns "left" or "right".
func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

type room struct {
	name     string
	children [2]RoomID
}

// Map is an immutable rooted binary tree of rooms.
type Map struct {
	rooms  []room
	byName map[string]RoomID
	root   RoomID
}

// Root is the room every exploration starts in.
func (m *Map) Root() RoomID {
	return m.root
}

// Len returns the number of rooms in the map.
func (m *Map) Len() int {
	return len(m.rooms)
}

// Name returns the name of the room, the room's identity. It panics when id was not issued by this map.
func (m *Map) Name(id RoomID) string {
	return m.rooms[id].name
}

// Child returns the child of id in the given direction if there is one.
func (m *Map) Child(id RoomID, dir Direction) (RoomID, bool) {
	child := m.rooms[id].children[dir]
	return child, child != NoRoom
}

// Step moves from id towards dir. When there is no room in that direction the player stays put and ok is false.
func (m *Map) Step(id RoomID, dir Direction) (next RoomID, ok bool) {
	if child, found := m.Child(id, dir); found {
		return child, true
	}
	return id, false
}

// Lookup finds a room by name.
func (m *Map) Lookup(name string) (RoomID, bool) {
	id, ok := m.byName[name]
	return id, ok
}

// Walk visits the rooms in pre-order, left before right, with the depth of each room below the root.
func (m *Map) Walk(fn func(id RoomID, depth int)) {
	var walk func(id RoomID, depth int)
	walk = func(id RoomID, depth int) {
		if id == NoRoom {
			return
		}
		fn(id, depth)
		walk(m.rooms[id].children[Left], depth+1)
		walk(m.rooms[id].children[Right], depth+1)
	}
	if len(m.rooms) > 0 {
		walk(m.root, 0)
	}
}

// Release tears the map down, children before parents. The map is empty afterwards.
func (m *Map) Release() {
	var release func(id RoomID)
	release = func(id RoomID) {
		if id == NoRoom {
			return
		}
		release(m.rooms[id].children[Left])
		release(m.rooms[id].children[Right])
		delete(m.byName, m.rooms[id].name)
		m.rooms[id] = room{children: [2]RoomID{NoRoom, NoRoom}}
	}
	if len(m.rooms) > 0 {
		release(m.root)
	}
	m.rooms = nil
	m.root = NoRoom
}

// Builder wires rooms together before a Map is frozen.
type Builder struct {
	rooms     []room
	byName    map[string]RoomID
	hasParent []bool
}

func NewBuilder() *Builder {
	return &Builder{
		byName: make(map[string]RoomID),
	}
}

// Room creates a room with no children. Room names are unique within a map.
func (b *Builder) Room(name string) (RoomID, error) {
	if _, ok := b.byName[name]; ok {
		return NoRoom, errors.Wrap(ErrDuplicateRoom, "create room", slog.String("room", name))
	}
	id := RoomID(len(b.rooms))
	b.rooms = append(b.rooms, room{name: name, children: [2]RoomID{NoRoom, NoRoom}})
	b.hasParent = append(b.hasParent, false)
	b.byName[name] = id
	return id, nil
}

// Lookup finds a room created earlier by name.
func (b *Builder) Lookup(name string) (RoomID, bool) {
	id, ok := b.byName[name]
	return id, ok
}

// Link makes child the dir child of parent. Every room has at most one parent and each slot is linked once.
func (b *Builder) Link(parent RoomID, dir Direction, child RoomID) error {
	if !b.valid(parent) || !b.valid(child) {
		return errors.Wrap(ErrUnknownRoom, "link rooms",
			slog.Int("parent", int(parent)), slog.Int("child", int(child)))
	}
	if parent == child {
		return errors.Wrap(ErrHasParent, "link room to itself", slog.String("room", b.rooms[child].name))
	}
	if b.rooms[parent].children[dir] != NoRoom {
		return errors.Wrap(ErrSlotTaken, "link rooms",
			slog.String("parent", b.rooms[parent].name), slog.String("direction", dir.String()))
	}
	if b.hasParent[child] {
		return errors.Wrap(ErrHasParent, "link rooms", slog.String("child", b.rooms[child].name))
	}
	b.rooms[parent].children[dir] = child
	b.hasParent[child] = true
	return nil
}

// Build freezes the rooms into a Map rooted at rootName. Every room must be reachable from the root.
func (b *Builder) Build(rootName string) (*Map, error) {
	root, ok := b.byName[rootName]
	if !ok {
		return nil, errors.Wrap(ErrUnknownRoom, "build map", slog.String("root", rootName))
	}
	if b.hasParent[root] {
		return nil, errors.Wrap(ErrHasParent, "build map", slog.String("root", rootName))
	}

	reached := make([]bool, len(b.rooms))
	pending := []RoomID{root}
	for len(pending) > 0 {
		id := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		reached[id] = true
		for _, child := range b.rooms[id].children {
			if child != NoRoom {
				pending = append(pending, child)
			}
		}
	}
	for id, ok := range reached {
		if !ok {
			return nil, errors.Wrap(ErrUnreachable, "build map", slog.String("room", b.rooms[id].name))
		}
	}

	m := &Map{
		rooms:  make([]room, len(b.rooms)),
		byName: make(map[string]RoomID, len(b.byName)),
		root:   root,
	}
	copy(m.rooms, b.rooms)
	for name, id := range b.byName {
		m.byName[name] = id
	}
	return m, nil
}

func (b *Builder) valid(id RoomID) bool {
	return id >= 0 && int(id) < len(b.rooms)
}
