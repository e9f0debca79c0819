package dag

// visit colors for the depth-first traversal.
const (
	white = iota // unvisited
	gray         // in the current recursion stack
	black        // fully processed
)

// TopoSort returns every task ID exactly once, with each task preceded by
// all of its dependencies. The traversal is depth-first with three colors;
// revisiting a gray node means the graph has a cycle, and the sort fails
// with a CycleError naming that node. No partial order is returned on
// failure. Iteration is over sorted IDs, so the result is deterministic for
// a given graph.
func TopoSort(g *Graph) ([]string, error) {
	color := make(map[string]int, len(g.Nodes))
	result := make([]string, 0, len(g.Nodes))

	var visit func(id string) error
	visit = func(id string) error {
		switch color[id] {
		case black:
			return nil
		case gray:
			return &CycleError{NodeID: id}
		}
		color[id] = gray

		// Dependencies first, so each node lands after everything it needs.
		for _, depID := range g.RevAdj[id] {
			if err := visit(depID); err != nil {
				return err
			}
		}

		color[id] = black
		result = append(result, id)
		return nil
	}

	for _, id := range g.sortedIDs() {
		if err := visit(id); err != nil {
			return nil, err
		}
	}

	return result, nil
}
