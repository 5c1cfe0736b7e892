package graph

import (
	"errors"
	"slices"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/list"
)

var (
	ErrNilGraph       = errors.New("[graph] graph is nil")
	ErrVertexNotFound = errors.New("[graph] vertex not found")
	ErrEdgeNotFound   = errors.New("[graph] edge not found")
	ErrNegativeWeight = errors.New("[graph] negative edge weight")
	ErrNoPath         = errors.New("[graph] no path between vertices")
)

// adjacency keeps the outgoing edges in the connecting order.
type adjacency[V comparable] struct {
	targets []V
	weights map[V]float64
}

func (adj *adjacency[V]) set(v V, w float64) {
	if _, ok := adj.weights[v]; !ok {
		adj.targets = append(adj.targets, v)
	}
	adj.weights[v] = w
}

func (adj *adjacency[V]) remove(v V) bool {
	if _, ok := adj.weights[v]; !ok {
		return false
	}
	delete(adj.weights, v)
	adj.targets = slices.DeleteFunc(adj.targets, func(t V) bool {
		return t == v
	})
	return true
}

type GraphOpt[V comparable] func(*Graph[V])

// WithDirected stores every edge in one direction only.
func WithDirected[V comparable]() GraphOpt[V] {
	return func(g *Graph[V]) {
		g.directed = true
	}
}

type Graph[V comparable] struct {
	vertices []V
	adj      map[V]*adjacency[V]
	edges    int64
	directed bool
}

func NewGraph[V comparable](opts ...GraphOpt[V]) *Graph[V] {
	g := &Graph[V]{
		vertices: make([]V, 0, 16),
		adj:      make(map[V]*adjacency[V], 16),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

func (g *Graph[V]) IsDirected() bool {
	return g.directed
}

// Order is the number of vertices.
func (g *Graph[V]) Order() int64 {
	return int64(len(g.vertices))
}

// Size is the number of edges. An undirected edge counts once.
func (g *Graph[V]) Size() int64 {
	return g.edges
}

// Vertices returns a copy of the vertices in the adding order.
func (g *Graph[V]) Vertices() []V {
	return slices.Clone(g.vertices)
}

func (g *Graph[V]) HasVertex(v V) bool {
	_, ok := g.adj[v]
	return ok
}

// AddVertex returns false if the vertex exists already.
func (g *Graph[V]) AddVertex(v V) bool {
	if g.HasVertex(v) {
		return false
	}
	g.vertices = append(g.vertices, v)
	g.adj[v] = &adjacency[V]{
		targets: make([]V, 0, 4),
		weights: make(map[V]float64, 4),
	}
	return true
}

// RemoveVertex removes the vertex together with its incident edges.
func (g *Graph[V]) RemoveVertex(v V) bool {
	adj, ok := g.adj[v]
	if !ok {
		return false
	}
	if !g.directed {
		for _, t := range adj.targets {
			if t != v {
				g.adj[t].remove(v)
			}
		}
		g.edges -= int64(len(adj.targets))
	} else {
		g.edges -= int64(len(adj.targets))
		for u, uAdj := range g.adj {
			if u != v && uAdj.remove(v) {
				g.edges--
			}
		}
	}
	delete(g.adj, v)
	g.vertices = slices.DeleteFunc(g.vertices, func(u V) bool {
		return u == v
	})
	return true
}

// Connect adds the missing vertices and the edge a -> b, or overwrites the
// weight of an existing edge.
func (g *Graph[V]) Connect(a, b V, w float64) error {
	if w < 0 {
		return infra.WrapErrorStack(ErrNegativeWeight)
	}
	g.AddVertex(a)
	g.AddVertex(b)
	if !g.IsAdjacent(a, b) {
		g.edges++
	}
	g.adj[a].set(b, w)
	if !g.directed {
		g.adj[b].set(a, w)
	}
	return nil
}

func (g *Graph[V]) Disconnect(a, b V) bool {
	adj, ok := g.adj[a]
	if !ok || !adj.remove(b) {
		return false
	}
	if !g.directed {
		g.adj[b].remove(a)
	}
	g.edges--
	return true
}

// IsAdjacent reports whether the edge a -> b exists.
func (g *Graph[V]) IsAdjacent(a, b V) bool {
	adj, ok := g.adj[a]
	if !ok {
		return false
	}
	_, ok = adj.weights[b]
	return ok
}

// IsConnected reports whether every vertex is reachable from the first
// added one. An empty graph is connected.
func (g *Graph[V]) IsConnected() bool {
	if len(g.vertices) == 0 {
		return true
	}
	if g.edges < int64(len(g.vertices)-1) {
		return false
	}
	reached := int64(0)
	_ = g.BFS(g.vertices[0], func(int64, V) bool {
		reached++
		return true
	})
	return reached == g.Order()
}

// Clear removes all vertices and edges.
func (g *Graph[V]) Clear() {
	clear(g.adj)
	clear(g.vertices)
	g.vertices = g.vertices[:0]
	g.edges = 0
}

func (g *Graph[V]) Neighbors(v V) ([]V, error) {
	adj, ok := g.adj[v]
	if !ok {
		return nil, infra.WrapErrorStack(ErrVertexNotFound)
	}
	return slices.Clone(adj.targets), nil
}

func (g *Graph[V]) Weight(a, b V) (float64, error) {
	if !g.HasVertex(a) || !g.HasVertex(b) {
		return 0, infra.WrapErrorStack(ErrVertexNotFound)
	}
	w, ok := g.adj[a].weights[b]
	if !ok {
		return 0, infra.WrapErrorStack(ErrEdgeNotFound)
	}
	return w, nil
}

func (g *Graph[V]) SetWeight(a, b V, w float64) error {
	if w < 0 {
		return infra.WrapErrorStack(ErrNegativeWeight)
	}
	if !g.IsAdjacent(a, b) {
		return infra.WrapErrorStack(ErrEdgeNotFound)
	}
	return g.Connect(a, b, w)
}

// BFS visits the vertices reachable from src level by level. The depth of
// src is 0. Returning false from fn stops the walk.
func (g *Graph[V]) BFS(src V, fn func(depth int64, v V) bool) error {
	if !g.HasVertex(src) {
		return infra.WrapErrorStack(ErrVertexNotFound)
	}
	type visit struct {
		v     V
		depth int64
	}
	visited := map[V]struct{}{src: {}}
	queue := list.NewQueue[visit]()
	queue.Enqueue(visit{v: src})
	for !queue.IsEmpty() {
		cur, _ := queue.Dequeue()
		if !fn(cur.depth, cur.v) {
			return nil
		}
		for _, t := range g.adj[cur.v].targets {
			if _, ok := visited[t]; ok {
				continue
			}
			visited[t] = struct{}{}
			queue.Enqueue(visit{v: t, depth: cur.depth + 1})
		}
	}
	return nil
}

// DFS visits the vertices reachable from src in pre-order, neighbors in the
// connecting order. fn receives the visiting sequence number.
func (g *Graph[V]) DFS(src V, fn func(idx int64, v V) bool) error {
	if !g.HasVertex(src) {
		return infra.WrapErrorStack(ErrVertexNotFound)
	}
	visited := make(map[V]struct{}, len(g.vertices))
	stack := list.NewStack[V]()
	stack.Push(src)
	idx := int64(0)
	for !stack.IsEmpty() {
		v, _ := stack.Pop()
		if _, ok := visited[v]; ok {
			continue
		}
		visited[v] = struct{}{}
		if !fn(idx, v) {
			return nil
		}
		idx++
		targets := g.adj[v].targets
		for i := len(targets) - 1; i >= 0; i-- {
			if _, ok := visited[targets[i]]; !ok {
				stack.Push(targets[i])
			}
		}
	}
	return nil
}
