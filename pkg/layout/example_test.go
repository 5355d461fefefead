package layout_test

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/layout"
)

func ExampleNew() {
	g := graph.New()
	for _, id := range []string{"root", "left", "right", "loner"} {
		_ = g.AddNode(graph.Node{ID: id})
	}
	_ = g.AddChild("root", "left")
	_ = g.AddChild("root", "right")

	l, err := layout.New(layout.Tree, g, layout.WithRoot("root"))
	if err != nil {
		panic(err)
	}
	pos := l.Compute(0).Positions()
	for _, id := range slices.Sorted(maps.Keys(pos)) {
		fmt.Printf("%-5s (%.2f, %.2f)\n", id, pos[id].X, pos[id].Y)
	}
	// Output:
	// left  (0.05, 0.95)
	// loner (1.07, 0.00)
	// right (0.95, 0.95)
	// root  (0.50, 0.05)
}

func ExampleLayout_Commit() {
	g := graph.New()
	_ = g.AddNode(graph.Node{ID: "a"})
	_ = g.AddNode(graph.Node{ID: "b"})
	_ = g.AddChild("a", "b")

	if err := layout.NewRadialSync(g).Compute(0).Commit(g); err != nil {
		panic(err)
	}
	x, y := g.Position("b")
	fmt.Printf("b stored at (%.2f, %.2f)\n", x, y)
	// Output:
	// b stored at (0.95, 0.50)
}

func ExampleRescale() {
	fmt.Printf("%.2f\n", layout.Rescale(5, 0, 10, 0.05, 0.95))
	fmt.Printf("%.2f\n", layout.Rescale(3, 3, 3, 0.05, 0.95))
	// Output:
	// 0.50
	// 0.50
}
