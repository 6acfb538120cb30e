package graph

import "container/heap"

// PathStep is one traversed edge together with the node it leads to.
type PathStep[N comparable, E Weighted] struct {
	Action E
	To     N
}

// distance records the best known way of reaching a node.
type distance[N comparable, E Weighted] struct {
	cost    int64
	tie     int64
	prev    N
	prevAct E
	hasPrev bool
}

type pqItem[N comparable] struct {
	id   N
	cost int64
	tie  int64
	seq  int64
}

// pq is an indexed binary heap keyed by (cost, tie, insertion order), so
// relaxation can decrease an enqueued node's priority in O(log n).
type pq[N comparable] struct {
	items []pqItem[N]
	index map[N]int
}

func newPQ[N comparable]() *pq[N] {
	return &pq[N]{index: map[N]int{}}
}

func (q *pq[N]) Len() int { return len(q.items) }

func (q *pq[N]) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.tie != b.tie {
		return a.tie < b.tie
	}
	return a.seq < b.seq
}

func (q *pq[N]) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.index[q.items[i].id] = i
	q.index[q.items[j].id] = j
}

func (q *pq[N]) Push(x any) {
	item := x.(pqItem[N])
	q.index[item.id] = len(q.items)
	q.items = append(q.items, item)
}

func (q *pq[N]) Pop() any {
	last := len(q.items) - 1
	item := q.items[last]
	q.items = q.items[:last]
	delete(q.index, item.id)
	return item
}

// upsert pushes id with the given priority, or lowers its priority if it is
// already enqueued.
func (q *pq[N]) upsert(id N, cost, tie, seq int64) {
	if i, ok := q.index[id]; ok {
		q.items[i].cost = cost
		q.items[i].tie = tie
		q.items[i].seq = seq
		heap.Fix(q, i)
		return
	}
	heap.Push(q, pqItem[N]{id: id, cost: cost, tie: tie, seq: seq})
}

// FindShortestPath runs Dijkstra from origin until a node satisfying the
// predicate is popped, and returns the edge path to it together with its
// cost. The boolean is false when the queue empties without a match;
// unreachability is a normal outcome, not an error.
//
// Paths of equal cost are ordered by accumulated TieWeight, then by queue
// insertion order, so results are deterministic.
func (g *Graph[N, E]) FindShortestPath(origin N, predicate func(N) bool) ([]PathStep[N, E], int64, bool) {
	if _, ok := g.nodes[origin]; !ok {
		return nil, 0, false
	}
	dist := map[N]*distance[N, E]{origin: {}}
	q := newPQ[N]()
	var seq int64
	q.upsert(origin, 0, 0, seq)
	for q.Len() > 0 {
		item := heap.Pop(q).(pqItem[N])
		if predicate(item.id) {
			return g.backtrack(origin, item.id, dist), item.cost, true
		}
		node := g.nodes[item.id]
		for _, e := range node.edges {
			w := e.Action.Weight()
			if w < 0 {
				panic("graph: negative edge weight")
			}
			tie := item.tie
			if tw, ok := any(e.Action).(TieWeighted); ok {
				tie += tw.TieWeight()
			}
			cost := item.cost + w
			d := dist[e.To]
			if d == nil || cost < d.cost || (cost == d.cost && tie < d.tie) {
				dist[e.To] = &distance[N, E]{
					cost:    cost,
					tie:     tie,
					prev:    item.id,
					prevAct: e.Action,
					hasPrev: true,
				}
				seq++
				q.upsert(e.To, cost, tie, seq)
			}
		}
	}
	return nil, 0, false
}

// backtrack follows predecessor pointers from found back to origin and
// returns the forward edge sequence.
func (g *Graph[N, E]) backtrack(origin, found N, dist map[N]*distance[N, E]) []PathStep[N, E] {
	var steps []PathStep[N, E]
	curr := found
	for curr != origin {
		d := dist[curr]
		if d == nil || !d.hasPrev {
			panic("graph: broken predecessor chain")
		}
		steps = append(steps, PathStep[N, E]{Action: d.prevAct, To: curr})
		curr = d.prev
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
