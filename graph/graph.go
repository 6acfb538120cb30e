package graph

// Weighted is implemented by edge payloads that expose a cost. Weights must
// be non-negative; Dijkstra panics on a negative weight.
type Weighted interface {
	Weight() int64
}

// TieWeighted is optionally implemented by edge payloads that carry a
// secondary cost used to order paths of equal primary cost.
type TieWeighted interface {
	TieWeight() int64
}

// Edge is a single outgoing edge: a payload and the node it leads to.
type Edge[N comparable, E Weighted] struct {
	Action E
	To     N
}

// Node owns its outgoing edges.
type Node[N comparable, E Weighted] struct {
	id    N
	edges []Edge[N, E]
}

// ID returns the node identity.
func (n *Node[N, E]) ID() N { return n.id }

// Edges returns the outgoing edges in insertion order.
func (n *Node[N, E]) Edges() []Edge[N, E] { return n.edges }

// Connect appends an outgoing edge. Duplicates are not collapsed.
func (n *Node[N, E]) Connect(action E, dest N) {
	n.edges = append(n.edges, Edge[N, E]{Action: action, To: dest})
}

// Disconnect removes the first outgoing edge the match function accepts
// and reports whether one was removed.
func (n *Node[N, E]) Disconnect(match func(Edge[N, E]) bool) bool {
	for i, e := range n.edges {
		if match(e) {
			n.edges = append(n.edges[:i], n.edges[i+1:]...)
			return true
		}
	}
	return false
}

// Graph maps node identities to nodes.
type Graph[N comparable, E Weighted] struct {
	nodes map[N]*Node[N, E]
}

// New creates an empty graph.
func New[N comparable, E Weighted]() *Graph[N, E] {
	return &Graph[N, E]{nodes: map[N]*Node[N, E]{}}
}

// Get returns the node with the given identity, or nil.
func (g *Graph[N, E]) Get(id N) *Node[N, E] { return g.nodes[id] }

// GetOrInsert returns the node with the given identity, creating an empty
// node if absent.
func (g *Graph[N, E]) GetOrInsert(id N) *Node[N, E] {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &Node[N, E]{id: id}
	g.nodes[id] = n
	return n
}

// Connect appends an edge from src to dst. Both endpoints must already be
// present in the graph.
func (g *Graph[N, E]) Connect(src N, action E, dst N) {
	from, ok := g.nodes[src]
	if !ok {
		panic("graph: connect from unknown node")
	}
	if _, ok := g.nodes[dst]; !ok {
		panic("graph: connect to unknown node")
	}
	from.Connect(action, dst)
}

// Len returns the number of nodes.
func (g *Graph[N, E]) Len() int { return len(g.nodes) }

// NodeIDs returns the identities of all nodes in unspecified order.
func (g *Graph[N, E]) NodeIDs() []N {
	ids := make([]N, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	return ids
}
