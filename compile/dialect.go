package compile

import "github.com/frosts/permafrost/reachability"

// Dialect holds the names a script's library section is recognised by.
type Dialect struct {
	NamespaceMarker      string              // line marker opening the library block
	PublicAlias          string              // identifier user code reaches the library through
	SelfKeyword          string              // self reference inside record methods
	ConstructorKeyword   string              // first record method, splits helpers from methods
	RecordConstructor    string              // phrase that builds a new record value
	ReservedFields       []string            // record storage fields, never methods
	EscapeHatches        []string            // methods whose result is not a record
	ProblematicFunctions []string            // top-level functions kept only when used
	RootAliases          map[string][]string // user roots with no node of their own
	GenericMethods       map[string]string   // normalized name -> decorated key
}

// DefaultDialect returns the dialect of the frosts library.
func DefaultDialect() Dialect {
	return Dialect{
		NamespaceMarker:      "namespace fr",
		PublicAlias:          "fr",
		SelfKeyword:          "this",
		ConstructorKeyword:   "constructor",
		RecordConstructor:    "new DataFrame",
		ReservedFields:       []string{"values", "columns", "dtypes", "__headers"},
		EscapeHatches:        []string{"apply"},
		ProblematicFunctions: []string{"combine_dfs"},
		RootAliases: map[string][]string{
			// combine_dfs lives outside the class but delegates to concat_all.
			"combine_dfs": {"concat_all"},
		},
		GenericMethods: map[string]string{
			"apply": "apply<T>",
		},
	}
}

// Rules converts the dialect into call parser rules.
func (d Dialect) Rules() reachability.Rules {
	return reachability.Rules{
		SeedPhrases:    []string{d.RecordConstructor},
		ReservedFields: d.ReservedFields,
		EscapeHatches:  d.EscapeHatches,
	}
}

func (d Dialect) isProblematic(name string) bool {
	for _, p := range d.ProblematicFunctions {
		if p == name {
			return true
		}
	}
	return false
}
