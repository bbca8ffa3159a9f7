// Package lifecycle models document statuses as closed enumerations with an
// explicit list of allowed edges. Each edge names the side effect it carries,
// so "which transitions touch the ledger" can be read off the table.
package lifecycle

import (
	"sort"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
)

// Effect is the side effect attached to a transition edge.
type Effect string

const (
	EffectNone    Effect = "none"
	EffectReceive Effect = "receive" // increment ledger rows by document lines
	EffectIssue   Effect = "issue"   // decrement ledger rows by document lines
)

// Edge is one allowed status change.
type Edge[S ~string] struct {
	From   S      `json:"from"`
	To     S      `json:"to"`
	Effect Effect `json:"effect"`
}

// Step describes the outcome of a requested status change.
type Step[S ~string] struct {
	From   S
	To     S
	Effect Effect
	// Noop is set when the requested status equals the current one.
	Noop bool
}

// Machine validates status changes for one document type.
type Machine[S ~string] struct {
	entity   string
	initial  S
	statuses []S
	known    map[S]struct{}
	edges    map[[2]S]Effect
	order    []Edge[S]
}

// NewMachine builds a machine. The first status is the initial one.
// Edges referring to unknown statuses panic, since the tables are static.
func NewMachine[S ~string](entity string, statuses []S, edges ...Edge[S]) *Machine[S] {
	if len(statuses) == 0 {
		panic("lifecycle: " + entity + " has no statuses")
	}
	m := &Machine[S]{
		entity:   entity,
		initial:  statuses[0],
		statuses: statuses,
		known:    make(map[S]struct{}, len(statuses)),
		edges:    make(map[[2]S]Effect, len(edges)),
	}
	for _, s := range statuses {
		m.known[s] = struct{}{}
	}
	for _, e := range edges {
		if !m.Valid(e.From) || !m.Valid(e.To) {
			panic("lifecycle: " + entity + " edge " + string(e.From) + "->" + string(e.To) + " uses unknown status")
		}
		if e.Effect == "" {
			e.Effect = EffectNone
		}
		m.edges[[2]S{e.From, e.To}] = e.Effect
		m.order = append(m.order, e)
	}
	return m
}

// Initial is the status new documents start in.
func (m *Machine[S]) Initial() S { return m.initial }

// Statuses lists the closed set of statuses.
func (m *Machine[S]) Statuses() []S {
	out := make([]S, len(m.statuses))
	copy(out, m.statuses)
	return out
}

// Valid reports whether s belongs to the enumeration.
func (m *Machine[S]) Valid(s S) bool {
	_, ok := m.known[s]
	return ok
}

// Parse converts raw input into a status.
func (m *Machine[S]) Parse(raw string) (S, error) {
	s := S(raw)
	if !m.Valid(s) {
		return s, apperror.NewValidation("unknown status").
			WithDetail("entity", m.entity).
			WithDetail("status", raw).
			WithDetail("allowed", m.Statuses())
	}
	return s, nil
}

// Transition checks the edge from -> to and returns its effect.
// Requesting the current status is a no-op, never an error.
func (m *Machine[S]) Transition(from, to S) (Step[S], error) {
	if !m.Valid(to) {
		_, err := m.Parse(string(to))
		return Step[S]{}, err
	}
	if from == to {
		return Step[S]{From: from, To: to, Effect: EffectNone, Noop: true}, nil
	}
	effect, ok := m.edges[[2]S{from, to}]
	if !ok {
		return Step[S]{}, apperror.NewInvalidTransition(m.entity, string(from), string(to))
	}
	return Step[S]{From: from, To: to, Effect: effect}, nil
}

// Terminal reports whether no edge leaves s.
func (m *Machine[S]) Terminal(s S) bool {
	for k := range m.edges {
		if k[0] == s {
			return false
		}
	}
	return true
}

// Edges returns the table in declaration order.
func (m *Machine[S]) Edges() []Edge[S] {
	out := make([]Edge[S], len(m.order))
	copy(out, m.order)
	return out
}

// EffectEdges returns only the edges that carry a side effect, sorted by source.
func (m *Machine[S]) EffectEdges() []Edge[S] {
	var out []Edge[S]
	for _, e := range m.order {
		if e.Effect != EffectNone {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out
}

// Table is the JSON form served by the transitions endpoints.
type Table struct {
	Entity   string         `json:"entity"`
	Initial  string         `json:"initial"`
	Statuses []string       `json:"statuses"`
	Edges    []Edge[string] `json:"edges"`
}

// Describe renders the machine as a Table.
func (m *Machine[S]) Describe() Table {
	t := Table{Entity: m.entity, Initial: string(m.initial)}
	for _, s := range m.statuses {
		t.Statuses = append(t.Statuses, string(s))
	}
	for _, e := range m.order {
		t.Edges = append(t.Edges, Edge[string]{From: string(e.From), To: string(e.To), Effect: e.Effect})
	}
	return t
}
