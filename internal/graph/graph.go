// Package graph tracks which value-object types are coerced through which other
// value-object types, so that factory chains can be checked for cycles and for
// links that no registered factory can satisfy.
package graph

import (
	"sort"
	"sync"
)

type Node struct {
	ID    string
	Needs []string
}

type Graph struct {
	mu         sync.RWMutex
	nodes      map[string]*Node
	cycleValid bool
	hasCycle   bool
}

func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
	}
}

func (g *Graph) AddNode(id string, needs []string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes[id] = &Node{
		ID:    id,
		Needs: needs,
	}
	g.cycleValid = false
}

func (g *Graph) RemoveNode(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.nodes, id)
	g.cycleValid = false
}

func (g *Graph) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, exists := g.nodes[id]
	return exists
}

func (g *Graph) Needs(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	node, exists := g.nodes[id]
	if !exists {
		return nil
	}

	result := make([]string, len(node.Needs))
	copy(result, node.Needs)
	return result
}

// Missing returns every needed id that has no node of its own, sorted.
func (g *Graph) Missing() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var missing []string
	seen := make(map[string]bool)

	for _, node := range g.nodes {
		for _, need := range node.Needs {
			if _, exists := g.nodes[need]; !exists && !seen[need] {
				missing = append(missing, need)
				seen[need] = true
			}
		}
	}

	sort.Strings(missing)
	return missing
}
