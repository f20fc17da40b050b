package compile

import (
	"sort"
	"strings"

	"github.com/frosts/permafrost/reachability"
)

// Assemble rebuilds the library block from the required names. Problematic
// functions missing from required are cut out of the always-kept text;
// every other required name must resolve to a method body.
func (fs *FunctionSet) Assemble(required reachability.Set, d Dialect) (string, error) {
	header := fs.AlwaysTake
	for _, name := range sortedKeys(fs.Problematic) {
		if !required.Has(name) {
			header = strings.Replace(header, fs.Problematic[name], "", 1)
		}
	}
	header = tidyLines(header)

	var bodies []string
	for _, name := range methodOrder(required, d.ConstructorKeyword) {
		if _, ok := fs.Problematic[name]; ok {
			continue
		}
		body, err := fs.lookup(name, d)
		if err != nil {
			return "", err
		}
		bodies = append(bodies, body)
	}

	// Close the record class, then the namespace.
	library := strings.TrimRight(header+strings.Join(bodies, "\n"), " \t\r\n")
	return library + "\n}\n}", nil
}

func (fs *FunctionSet) lookup(name string, d Dialect) (string, error) {
	if body, ok := fs.Methods[name]; ok {
		return body, nil
	}
	if decorated, ok := d.GenericMethods[name]; ok {
		if body, ok := fs.Methods[decorated]; ok {
			return body, nil
		}
	}
	return "", &LookupError{Name: name}
}

// methodOrder lists required names with the constructor first and the rest
// sorted, so identical input always assembles identically.
func methodOrder(required reachability.Set, constructor string) []string {
	names := required.Sorted()
	if !required.Has(constructor) {
		return names
	}
	ordered := make([]string, 0, len(names))
	ordered = append(ordered, constructor)
	for _, name := range names {
		if name != constructor {
			ordered = append(ordered, name)
		}
	}
	return ordered
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
