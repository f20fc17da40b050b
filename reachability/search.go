package reachability

import "sort"

// SearchResult is the outcome of a reachability search.
type SearchResult struct {
	// Required holds every node reachable from the roots.
	Required Set
	// Aliased lists roots without a node that were resolved through the
	// alias table.
	Aliased []string
	// Unresolved lists roots that are neither nodes nor aliases.
	Unresolved []string
}

// Search runs a breadth-first traversal from roots. A root with no node of
// its own is looked up in aliases, which names the nodes it depends on;
// any other unknown root is reported and skipped.
func (g *Graph) Search(roots []string, aliases map[string][]string) SearchResult {
	result := SearchResult{Required: NewSet()}

	sorted := DeduplicateSlice(append([]string(nil), roots...))
	sort.Strings(sorted)

	var queue []string
	visit := func(name string) {
		if result.Required.Add(name) {
			queue = append(queue, name)
		}
	}

	for _, root := range sorted {
		if g.Has(root) {
			visit(root)
			continue
		}
		targets, ok := aliases[root]
		if !ok {
			result.Unresolved = append(result.Unresolved, root)
			continue
		}
		result.Aliased = append(result.Aliased, root)
		for _, target := range targets {
			if g.Has(target) {
				visit(target)
			}
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, callee := range g.adj[current] {
			visit(callee)
		}
	}

	return result
}
