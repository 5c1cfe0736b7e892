package graph_test

import (
	"fmt"

	"github.com/benz9527/xtree/lib/graph"
)

func ExampleDijkstra() {
	g := graph.NewGraph[string]()
	_ = g.Connect("A", "B", 4)
	_ = g.Connect("A", "C", 1)
	_ = g.Connect("C", "B", 2)

	sp, err := graph.Dijkstra[string](g, "A")
	if err != nil {
		panic(err)
	}
	path, _ := sp.PathTo("B")
	fmt.Println(sp.Distance("B"), path)
	// Output: 3 [A C B]
}
