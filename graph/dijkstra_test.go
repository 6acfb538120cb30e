package graph

import "testing"

// road is a minimal edge payload for tests.
type road struct {
	cost int64
	tie  int64
}

func (r road) Weight() int64    { return r.cost }
func (r road) TieWeight() int64 { return r.tie }

func build(edges map[string][]Edge[string, road]) *Graph[string, road] {
	g := New[string, road]()
	for from, out := range edges {
		g.GetOrInsert(from)
		for _, e := range out {
			g.GetOrInsert(e.To)
		}
		for _, e := range out {
			g.Connect(from, e.Action, e.To)
		}
	}
	return g
}

func is(name string) func(string) bool {
	return func(s string) bool { return s == name }
}

func TestShortestPathPicksCheaperRoute(t *testing.T) {
	g := build(map[string][]Edge[string, road]{
		"a": {{Action: road{cost: 10}, To: "b"}, {Action: road{cost: 1}, To: "c"}},
		"b": {{Action: road{cost: 1}, To: "d"}},
		"c": {{Action: road{cost: 2}, To: "d"}},
	})
	steps, cost, ok := g.FindShortestPath("a", is("d"))
	if !ok {
		t.Fatal("expected a path")
	}
	if cost != 3 {
		t.Errorf("cost = %d, want 3", cost)
	}
	if len(steps) != 2 || steps[0].To != "c" || steps[1].To != "d" {
		t.Errorf("path = %v, want a->c->d", steps)
	}
}

func TestPredicateReturnsFirstMatch(t *testing.T) {
	// both b and c match; b is closer and must be returned
	g := build(map[string][]Edge[string, road]{
		"a": {{Action: road{cost: 5}, To: "b"}, {Action: road{cost: 7}, To: "c"}},
	})
	steps, cost, ok := g.FindShortestPath("a", func(s string) bool { return s == "b" || s == "c" })
	if !ok {
		t.Fatal("expected a path")
	}
	if cost != 5 || steps[len(steps)-1].To != "b" {
		t.Errorf("got %v at cost %d, want b at 5", steps, cost)
	}
}

func TestOriginMatchingPredicateYieldsEmptyPath(t *testing.T) {
	g := New[string, road]()
	g.GetOrInsert("a")
	steps, cost, ok := g.FindShortestPath("a", is("a"))
	if !ok {
		t.Fatal("expected a match")
	}
	if len(steps) != 0 || cost != 0 {
		t.Errorf("got %d steps at cost %d, want empty path at 0", len(steps), cost)
	}
}

func TestNoPath(t *testing.T) {
	g := build(map[string][]Edge[string, road]{
		"a": {{Action: road{cost: 1}, To: "b"}},
	})
	g.GetOrInsert("z")
	if _, _, ok := g.FindShortestPath("a", is("z")); ok {
		t.Error("expected no path to z")
	}
	if _, _, ok := g.FindShortestPath("missing", is("z")); ok {
		t.Error("expected no path from an absent origin")
	}
}

func TestRelaxationImprovesEnqueuedNode(t *testing.T) {
	// d is first reached expensively through b, then improved through c
	// while still enqueued
	g := build(map[string][]Edge[string, road]{
		"a": {{Action: road{cost: 1}, To: "b"}, {Action: road{cost: 2}, To: "c"}},
		"b": {{Action: road{cost: 100}, To: "d"}},
		"c": {{Action: road{cost: 1}, To: "d"}},
	})
	steps, cost, ok := g.FindShortestPath("a", is("d"))
	if !ok {
		t.Fatal("expected a path")
	}
	if cost != 3 {
		t.Errorf("cost = %d, want 3", cost)
	}
	if steps[0].To != "c" {
		t.Errorf("path goes through %s, want c", steps[0].To)
	}
}

func TestEqualCostPrefersLowerTieWeight(t *testing.T) {
	g := build(map[string][]Edge[string, road]{
		"a": {{Action: road{cost: 5, tie: 2}, To: "b"}, {Action: road{cost: 5, tie: 1}, To: "c"}},
		"b": {{Action: road{cost: 5}, To: "d"}},
		"c": {{Action: road{cost: 5}, To: "d"}},
	})
	steps, cost, ok := g.FindShortestPath("a", is("d"))
	if !ok {
		t.Fatal("expected a path")
	}
	if cost != 10 {
		t.Errorf("cost = %d, want 10", cost)
	}
	if steps[0].To != "c" {
		t.Errorf("equal-cost path went through %s, want the lower-tie c", steps[0].To)
	}
}

func TestZeroWeightCycleTerminates(t *testing.T) {
	g := build(map[string][]Edge[string, road]{
		"a": {{Action: road{}, To: "b"}},
		"b": {{Action: road{}, To: "a"}, {Action: road{cost: 1}, To: "z"}},
	})
	_, cost, ok := g.FindShortestPath("a", is("z"))
	if !ok || cost != 1 {
		t.Fatalf("expected z at cost 1, got ok=%v cost=%d", ok, cost)
	}
}

func TestNegativeWeightPanics(t *testing.T) {
	g := build(map[string][]Edge[string, road]{
		"a": {{Action: road{cost: -1}, To: "b"}},
	})
	defer func() {
		if recover() == nil {
			t.Error("expected a panic on a negative edge weight")
		}
	}()
	g.FindShortestPath("a", is("b"))
}

func TestDisconnectRemovesEdge(t *testing.T) {
	g := build(map[string][]Edge[string, road]{
		"a": {{Action: road{cost: 1}, To: "b"}, {Action: road{cost: 2}, To: "b"}},
	})
	removed := g.Get("a").Disconnect(func(e Edge[string, road]) bool { return e.Action.cost == 1 })
	if !removed {
		t.Fatal("expected an edge to be removed")
	}
	if n := len(g.Get("a").Edges()); n != 1 {
		t.Fatalf("edges left = %d, want 1", n)
	}
	if g.Get("a").Disconnect(func(e Edge[string, road]) bool { return e.Action.cost == 1 }) {
		t.Error("removed an edge that should no longer exist")
	}
}
