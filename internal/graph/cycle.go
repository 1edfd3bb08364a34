package graph

import "sort"

type tarjan struct {
	graph   *Graph
	index   int
	stack   []string
	onStack map[string]bool
	indices map[string]int
	lowlink map[string]int
	sccs    [][]string
}

// Cycles returns the strongly connected components that form a cycle,
// including single nodes that need themselves.
func (g *Graph) Cycles() [][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	t := &tarjan{
		graph:   g,
		onStack: make(map[string]bool),
		indices: make(map[string]int),
		lowlink: make(map[string]int),
	}

	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if _, visited := t.indices[id]; !visited {
			t.strongConnect(id)
		}
	}

	var cycles [][]string
	for _, scc := range t.sccs {
		if len(scc) > 1 {
			sort.Strings(scc)
			cycles = append(cycles, scc)
			continue
		}
		for _, need := range g.nodes[scc[0]].Needs {
			if need == scc[0] {
				cycles = append(cycles, scc)
				break
			}
		}
	}

	return cycles
}

func (t *tarjan) strongConnect(id string) {
	t.indices[id] = t.index
	t.lowlink[id] = t.index
	t.index++
	t.stack = append(t.stack, id)
	t.onStack[id] = true

	for _, need := range t.graph.nodes[id].Needs {
		if _, exists := t.graph.nodes[need]; !exists {
			continue
		}

		if _, visited := t.indices[need]; !visited {
			t.strongConnect(need)
			t.lowlink[id] = min(t.lowlink[id], t.lowlink[need])
		} else if t.onStack[need] {
			t.lowlink[id] = min(t.lowlink[id], t.indices[need])
		}
	}

	if t.lowlink[id] != t.indices[id] {
		return
	}

	var scc []string
	for {
		n := len(t.stack) - 1
		w := t.stack[n]
		t.stack = t.stack[:n]
		t.onStack[w] = false
		scc = append(scc, w)
		if w == id {
			break
		}
	}
	t.sccs = append(t.sccs, scc)
}

func (g *Graph) HasCycle() bool {
	g.mu.RLock()
	if g.cycleValid {
		result := g.hasCycle
		g.mu.RUnlock()
		return result
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cycleValid {
		return g.hasCycle
	}

	g.hasCycle = g.hasCycleLocked()
	g.cycleValid = true
	return g.hasCycle
}

func (g *Graph) hasCycleLocked() bool {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(g.nodes))

	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		for _, need := range g.nodes[id].Needs {
			if _, exists := g.nodes[need]; !exists {
				continue
			}
			switch color[need] {
			case gray:
				return true
			case white:
				if visit(need) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}

	for id := range g.nodes {
		if color[id] == white && visit(id) {
			return true
		}
	}
	return false
}

// CyclePath returns the path of the first cycle reachable from start, with the
// repeated node at both ends, or nil when start reaches no cycle.
func (g *Graph) CyclePath(start string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	visited := make(map[string]bool)
	inPath := make(map[string]bool)
	var path []string

	var walk func(id string) []string
	walk = func(id string) []string {
		if inPath[id] {
			var cycle []string
			found := false
			for _, p := range path {
				if p == id {
					found = true
				}
				if found {
					cycle = append(cycle, p)
				}
			}
			return append(cycle, id)
		}

		if visited[id] {
			return nil
		}

		visited[id] = true
		path = append(path, id)
		inPath[id] = true

		if node, exists := g.nodes[id]; exists {
			for _, need := range node.Needs {
				if _, exists := g.nodes[need]; !exists {
					continue
				}
				if cycle := walk(need); cycle != nil {
					return cycle
				}
			}
		}

		path = path[:len(path)-1]
		inPath[id] = false
		return nil
	}

	return walk(start)
}
