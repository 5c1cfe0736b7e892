// Package graph is an adjacency map graph consuming the list and queue
// primitives of xtree.
//
// Traversals (BFS, DFS) run on the list stack and queue. The shortest path
// searches (MinPath, Dijkstra, AllPairsShortestPaths) drive the indexed
// min-heap only through ExtractMin and Reorder: every vertex is loaded once
// by the bulk build and re-sifted in place after each relaxation.
//
// Edge weights are non-negative float64. A graph is undirected unless it is
// created WithDirected.
//
// Not thread safe. AllPairsShortestPaths only reads the graph, so it must not
// run concurrently with a mutation.
package graph
