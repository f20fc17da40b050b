package reachability

import "sort"

// Graph is the call graph between record methods. After construction every
// edge target is itself a node.
type Graph struct {
	adj map[string][]string
}

// BuildGraph parses each method body rooted at self and links the method to
// every locally defined method it calls.
func BuildGraph(methods map[string]string, self string, rules Rules) *Graph {
	g := &Graph{adj: make(map[string][]string, len(methods))}

	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		parser := NewCallParser(rules)
		parser.Parse(methods[name], self)

		key := NormalizeName(name)
		g.adj[key] = DeduplicateSlice(append(g.adj[key], parser.Methods()...))
	}

	g.prune()
	return g
}

// prune drops edges to names that are not defined methods: calls into
// unrelated objects or the host environment.
func (g *Graph) prune() {
	for node, edges := range g.adj {
		kept := edges[:0]
		for _, callee := range edges {
			if _, ok := g.adj[callee]; ok {
				kept = append(kept, callee)
			}
		}
		sort.Strings(kept)
		g.adj[node] = kept
	}
}

// Has reports whether name is a node.
func (g *Graph) Has(name string) bool {
	_, ok := g.adj[name]
	return ok
}

// Edges returns the methods name calls.
func (g *Graph) Edges(name string) []string {
	return g.adj[name]
}

// Nodes returns every method name in sorted order.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.adj))
	for name := range g.adj {
		nodes = append(nodes, name)
	}
	sort.Strings(nodes)
	return nodes
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.adj)
}
