// Package clues answers which clue, if any, can be discovered in a room.
package clues

// Rules is the capability of telling the clue hidden in a room. It is a pure function of the room name.
type Rules interface {
	ClueFor(room string) (clue string, ok bool)
}

// Rule places a clue in a room.
type Rule struct {
	Room string
	Clue string
}

// Table is a fixed list of rules keyed by exact room name.
type Table struct {
	byRoom map[string]string
	rules  []Rule
}

// NewTable builds a read-only table. When a room is listed twice the first rule wins.
func NewTable(rules ...Rule) *Table {
	t := &Table{
		byRoom: make(map[string]string, len(rules)),
		rules:  make([]Rule, 0, len(rules)),
	}
	for _, r := range rules {
		if _, ok := t.byRoom[r.Room]; ok {
			continue
		}
		t.byRoom[r.Room] = r.Clue
		t.rules = append(t.rules, r)
	}
	return t
}

// ClueFor returns the clue of room. Rooms without a rule, or with an empty clue text, have no clue.
func (t *Table) ClueFor(room string) (string, bool) {
	clue, ok := t.byRoom[room]
	if !ok || clue == "" {
		return "", false
	}
	return clue, true
}

// Rules returns a copy of the effective rules in declaration order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}
