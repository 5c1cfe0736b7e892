package graph

import (
	"math"

	"github.com/samber/lo"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/queue"
)

// vertexEntry carries the tentative distance of a vertex inside the heap.
type vertexEntry[V comparable] struct {
	vertex V
	dist   float64
	index  int64
}

func (e *vertexEntry[V]) Index() int64 {
	return e.index
}

func (e *vertexEntry[V]) SetIndex(idx int64) {
	e.index = idx
}

func vertexEntryCmp[V comparable]() infra.Comparator[*vertexEntry[V]] {
	cmp := infra.OrderedKeyCmp[float64]()
	return func(i, j *vertexEntry[V]) int64 {
		return cmp(i.dist, j.dist)
	}
}

// ShortestPaths is the single source result of Dijkstra.
type ShortestPaths[V comparable] struct {
	source V
	dist   map[V]float64
	prev   map[V]V
}

func (sp *ShortestPaths[V]) Source() V {
	return sp.source
}

// Distance returns +Inf for an unreachable vertex.
func (sp *ShortestPaths[V]) Distance(v V) float64 {
	d, ok := sp.dist[v]
	if !ok {
		return math.Inf(1)
	}
	return d
}

func (sp *ShortestPaths[V]) Reachable(v V) bool {
	return !math.IsInf(sp.Distance(v), 1)
}

// PathTo returns the vertices from the source to v, both included.
func (sp *ShortestPaths[V]) PathTo(v V) ([]V, error) {
	if !sp.Reachable(v) {
		return nil, infra.WrapErrorStack(ErrNoPath)
	}
	return backtrack[V](sp.source, v, sp.prev), nil
}

func backtrack[V comparable](src, dst V, prev map[V]V) []V {
	path := []V{dst}
	for cur := dst; cur != src; {
		cur = prev[cur]
		path = append(path, cur)
	}
	return lo.Reverse(path)
}

// Dijkstra computes the weighted shortest paths from src. All vertices are
// loaded at +Inf except src, then the closest unsettled vertex is extracted
// and its neighbors are relaxed in place.
func Dijkstra[V comparable](g *Graph[V], src V) (*ShortestPaths[V], error) {
	if g == nil {
		return nil, infra.WrapErrorStack(ErrNilGraph)
	}
	if !g.HasVertex(src) {
		return nil, infra.WrapErrorStack(ErrVertexNotFound)
	}

	loaded := lo.Map(g.vertices, func(v V, _ int) *vertexEntry[V] {
		e := &vertexEntry[V]{vertex: v, dist: math.Inf(1), index: -1}
		if v == src {
			e.dist = 0
		}
		return e
	})
	entries := lo.KeyBy(loaded, func(e *vertexEntry[V]) V {
		return e.vertex
	})
	h := queue.BuildIndexedMinHeap[*vertexEntry[V]](
		vertexEntryCmp[V](),
		loaded,
		queue.WithIndexedMinHeapCapacity(len(loaded)),
	)

	sp := &ShortestPaths[V]{
		source: src,
		dist:   make(map[V]float64, len(entries)),
		prev:   make(map[V]V, len(entries)),
	}
	for !h.IsEmpty() {
		u, err := h.ExtractMin()
		if err != nil {
			return nil, err
		}
		if math.IsInf(u.dist, 1) {
			// The rest is unreachable.
			break
		}
		sp.dist[u.vertex] = u.dist

		adj := g.adj[u.vertex]
		for _, t := range adj.targets {
			if _, settled := sp.dist[t]; settled {
				continue
			}
			next := entries[t]
			if alt := u.dist + adj.weights[t]; alt < next.dist {
				next.dist = alt
				sp.prev[t] = u.vertex
				h.Reorder(next)
			}
		}
	}
	return sp, nil
}

// MinPath returns the path from src to dst with the fewest edges, weights
// ignored. Ties keep the first discovered predecessor.
func MinPath[V comparable](g *Graph[V], src, dst V) ([]V, error) {
	if g == nil {
		return nil, infra.WrapErrorStack(ErrNilGraph)
	}
	if !g.HasVertex(src) || !g.HasVertex(dst) {
		return nil, infra.WrapErrorStack(ErrVertexNotFound)
	}

	hops := lo.Map(g.vertices, func(v V, _ int) queue.PQItem[V] {
		if v == src {
			return queue.NewPriorityQueueItem[V](v, 0)
		}
		return queue.NewPriorityQueueItem[V](v, math.MaxInt64)
	})
	items := lo.KeyBy(hops, func(item queue.PQItem[V]) V {
		return item.Value()
	})
	h := queue.BuildIndexedMinHeap[queue.PQItem[V]](
		queue.PQItemComparator[V](),
		hops,
		queue.WithIndexedMinHeapCapacity(len(hops)),
	)

	settled := make(map[V]struct{}, len(hops))
	prev := make(map[V]V, len(hops))
	for !h.IsEmpty() {
		u, err := h.ExtractMin()
		if err != nil {
			return nil, err
		}
		if u.Priority() == math.MaxInt64 {
			break
		}
		if u.Value() == dst {
			return backtrack[V](src, dst, prev), nil
		}
		settled[u.Value()] = struct{}{}

		for _, t := range g.adj[u.Value()].targets {
			if _, ok := settled[t]; ok {
				continue
			}
			next := items[t]
			if alt := u.Priority() + 1; alt < next.Priority() {
				next.SetPriority(alt)
				prev[t] = u.Value()
				h.Reorder(next)
			}
		}
	}
	return nil, infra.WrapErrorStack(ErrNoPath)
}
