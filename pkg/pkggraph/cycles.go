package pkggraph

import "strings"

// Cycle is a dependency loop, expressed as the chain of package keys with
// the starting package repeated at the end (a -> b -> a).
type Cycle []string

// String renders the cycle as "a -> b -> a".
func (c Cycle) String() string {
	return strings.Join(c, " -> ")
}

// Cycles reports dependency loops in the graph. Cycles are not an error
// for depview (renderers iterate entries non-recursively and cannot loop),
// but commands surface them as warnings since they usually indicate a
// broken environment.
//
// Each distinct loop is reported once, regardless of how many entries it
// is reachable from. Detection order follows insertion order, so the
// result is deterministic for a given graph.
func (g *PackageDAG) Cycles() []Cycle {
	const (
		white = iota // unvisited
		gray         // on the current DFS path
		black        // fully explored
	)

	color := make(map[string]int, len(g.order))
	var stack []string
	var cycles []Cycle
	reported := make(map[string]bool)

	var visit func(key string)
	visit = func(key string) {
		color[key] = gray
		stack = append(stack, key)

		if e, ok := g.entries[key]; ok {
			for _, d := range e.Deps {
				switch color[d.Key] {
				case white:
					visit(d.Key)
				case gray:
					cycle := extractCycle(stack, d.Key)
					if id := cycle.canonical(); !reported[id] {
						reported[id] = true
						cycles = append(cycles, cycle)
					}
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[key] = black
	}

	for _, key := range g.order {
		if color[key] == white {
			visit(key)
		}
	}
	return cycles
}

// extractCycle slices the DFS stack from the first occurrence of start and
// closes the loop by repeating start at the end.
func extractCycle(stack []string, start string) Cycle {
	for i, key := range stack {
		if key == start {
			cycle := make(Cycle, 0, len(stack)-i+1)
			cycle = append(cycle, stack[i:]...)
			return append(cycle, start)
		}
	}
	return Cycle{start, start}
}

// canonical rotates the cycle so the lexicographically smallest key comes
// first, making equal loops found via different entry points comparable.
func (c Cycle) canonical() string {
	if len(c) < 2 {
		return c.String()
	}
	loop := c[:len(c)-1]
	min := 0
	for i := range loop {
		if loop[i] < loop[min] {
			min = i
		}
	}
	rotated := make([]string, 0, len(loop))
	rotated = append(rotated, loop[min:]...)
	rotated = append(rotated, loop[:min]...)
	return strings.Join(rotated, " -> ")
}
