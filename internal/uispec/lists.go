package uispec

import "github.com/fieldmark/designer/internal/notebook"

// Direction moves an entry one step within its list. Fields move up and
// down; sections and forms move left and right.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

func (d Direction) backward() bool {
	return d == Up || d == Left
}

func (d Direction) valid(forward, backward Direction) bool {
	return d == forward || d == backward
}

// move swaps id with its neighbour. Missing ids and moves past either end
// leave the list as it is.
func move(list []string, id string, d Direction) {
	for i, v := range list {
		if v != id {
			continue
		}
		if d.backward() {
			if i > 0 {
				list[i-1], list[i] = list[i], list[i-1]
			}
		} else if i < len(list)-1 {
			list[i+1], list[i] = list[i], list[i+1]
		}
		return
	}
}

func without(list []string, id string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func indexOf(list []string, id string) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}

func insertAt(list []string, i int, id string) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, list[:i]...)
	out = append(out, id)
	return append(out, list[i:]...)
}

// renameInCondition rewrites every reference to from.
func renameInCondition(c *notebook.Condition, from, to string) {
	if c == nil {
		return
	}
	if c.Field == from {
		c.Field = to
	}
	for _, child := range c.Conditions {
		renameInCondition(child, from, to)
	}
}

func removeFromSummaries(s *notebook.UISpec, name string) {
	for _, form := range s.ViewSets {
		removeFromSummary(form, name)
	}
}

func removeFromSummary(form *notebook.Form, name string) {
	if form == nil || form.SummaryFields == nil {
		return
	}
	form.SummaryFields = without(form.SummaryFields, name)
}
