package sqljson

import (
	"slices"

	"github.com/syssam/jsonvalue/dialect"
)

// Navigation is the way a dialect walks into a json document.
type Navigation uint8

// Navigation styles.
const (
	// ArrayOfKeysEmulation passes the path as a text array of keys to the
	// #>> operator: (doc)#>>array['a','0'].
	ArrayOfKeysEmulation Navigation = iota + 1
	// NativeOperator chains the dialect operator once per step:
	// (doc)->'a'->>0.
	NativeOperator
	// NativeFunction passes the whole path to the dialect json_value function.
	NativeFunction
)

// String returns the navigation name.
func (n Navigation) String() string {
	switch n {
	case ArrayOfKeysEmulation:
		return "array-of-keys"
	case NativeOperator:
		return "native-operator"
	case NativeFunction:
		return "native-function"
	default:
		return "unknown"
	}
}

// Combination is an (on error, on empty) pair of behavior kinds.
type Combination struct {
	OnError BehaviorKind
	OnEmpty BehaviorKind
}

// Profile holds the json_value capabilities of a dialect family.
// Renderers decide how to emulate a call from these facts alone.
type Profile struct {
	// Dialect is the canonical dialect name.
	Dialect string
	// NativeErrorClause and NativeEmptyClause report whether the dialect
	// accepts "... on error" and "... on empty" clauses.
	NativeErrorClause bool
	NativeEmptyClause bool
	// Combinations lists the supported (on error, on empty) pairs.
	Combinations []Combination
	// DefaultOnError and DefaultOnEmpty are the behaviors the dialect
	// applies when a clause is not given.
	DefaultOnError BehaviorKind
	DefaultOnEmpty BehaviorKind
	// Navigation selects the renderer.
	Navigation Navigation
	// CastParameterDocument requires a cast of untyped parameter documents
	// to DocumentType.
	CastParameterDocument bool
	DocumentType          string
	// LiteralPath requires the path to be known at compile time.
	LiteralPath bool
	// PathType is the cast target of a path given as a runtime value.
	PathType string
	// ReturningClause reports a native "returning <type>" clause. Without
	// it the result is wrapped in a cast.
	ReturningClause bool
	// StrictMode reports that the path accepts a "strict" prefix which
	// turns both empty and error results into errors.
	StrictMode bool
	// DocumentCheck names a function returning 1 for a well-formed
	// document. Set when the json function raises on malformed documents
	// in every mode, so null on error is emulated by guarding the call.
	DocumentCheck string
	// TryCast names a cast function yielding null for values that do not
	// convert. It replaces the outer cast when on error is null.
	TryCast string
}

// Supports reports whether the profile can render the given pair of
// resolved behavior kinds.
func (p *Profile) Supports(onError, onEmpty BehaviorKind) bool {
	return slices.Contains(p.Combinations, Combination{OnError: onError, OnEmpty: onEmpty})
}

// resolve replaces unspecified kinds with the dialect defaults.
func (p *Profile) resolve(onError, onEmpty BehaviorKind) (BehaviorKind, BehaviorKind) {
	if onError == BehaviorUnspecified {
		onError = p.DefaultOnError
	}
	if onEmpty == BehaviorUnspecified {
		onEmpty = p.DefaultOnEmpty
	}
	return onError, onEmpty
}

func (p *Profile) clone() *Profile {
	c := *p
	c.Combinations = slices.Clone(p.Combinations)
	return &c
}

func allCombinations() []Combination {
	kinds := []BehaviorKind{BehaviorNull, BehaviorError, BehaviorDefault}
	cs := make([]Combination, 0, len(kinds)*len(kinds))
	for _, e := range kinds {
		for _, m := range kinds {
			cs = append(cs, Combination{OnError: e, OnEmpty: m})
		}
	}
	return cs
}

// profiles is populated once and never mutated; lookups hand out copies.
var profiles = map[string]*Profile{
	// (doc)#>>array[...] raises on malformed documents and yields null
	// for missing keys, so only the matching clauses can be honored.
	dialect.CockroachDB: {
		Dialect:               dialect.CockroachDB,
		Combinations:          []Combination{{OnError: BehaviorError, OnEmpty: BehaviorNull}},
		DefaultOnError:        BehaviorError,
		DefaultOnEmpty:        BehaviorNull,
		Navigation:            ArrayOfKeysEmulation,
		CastParameterDocument: true,
		DocumentType:          "jsonb",
		LiteralPath:           true,
	},
	dialect.Postgres: {
		Dialect:               dialect.Postgres,
		NativeErrorClause:     true,
		NativeEmptyClause:     true,
		Combinations:          allCombinations(),
		DefaultOnError:        BehaviorNull,
		DefaultOnEmpty:        BehaviorNull,
		Navigation:            NativeFunction,
		CastParameterDocument: true,
		DocumentType:          "jsonb",
		PathType:              "jsonpath",
		ReturningClause:       true,
	},
	dialect.MySQL: {
		Dialect:           dialect.MySQL,
		NativeErrorClause: true,
		NativeEmptyClause: true,
		Combinations:      allCombinations(),
		DefaultOnError:    BehaviorNull,
		DefaultOnEmpty:    BehaviorNull,
		Navigation:        NativeFunction,
		LiteralPath:       true,
		ReturningClause:   true,
	},
	// MariaDB downgrades extraction errors to warnings.
	dialect.MariaDB: {
		Dialect:        dialect.MariaDB,
		Combinations:   []Combination{{OnError: BehaviorNull, OnEmpty: BehaviorNull}},
		DefaultOnError: BehaviorNull,
		DefaultOnEmpty: BehaviorNull,
		Navigation:     NativeFunction,
	},
	dialect.SQLite: {
		Dialect:        dialect.SQLite,
		Combinations:   []Combination{{OnError: BehaviorError, OnEmpty: BehaviorNull}},
		DefaultOnError: BehaviorError,
		DefaultOnEmpty: BehaviorNull,
		Navigation:     NativeOperator,
		LiteralPath:    true,
	},
	// Lax mode (the default) returns null for both; strict mode raises for both.
	// Malformed documents raise in lax mode too, hence the isjson guard.
	dialect.SQLServer: {
		Dialect: dialect.SQLServer,
		Combinations: []Combination{
			{OnError: BehaviorNull, OnEmpty: BehaviorNull},
			{OnError: BehaviorError, OnEmpty: BehaviorError},
		},
		DefaultOnError: BehaviorNull,
		DefaultOnEmpty: BehaviorNull,
		Navigation:     NativeFunction,
		StrictMode:     true,
		DocumentCheck:  "isjson",
		TryCast:        "try_cast",
	},
}

// LookupProfile returns a copy of the profile of the named dialect.
// Aliases accepted by dialect.Normalize are resolved.
func LookupProfile(name string) (*Profile, bool) {
	d, ok := dialect.Normalize(name)
	if !ok {
		return nil, false
	}
	p, ok := profiles[d]
	if !ok {
		return nil, false
	}
	return p.clone(), true
}

// Profiles returns copies of all profiles in dialect.Names order.
func Profiles() []*Profile {
	ps := make([]*Profile, 0, len(profiles))
	for _, name := range dialect.Names() {
		if p, ok := profiles[name]; ok {
			ps = append(ps, p.clone())
		}
	}
	return ps
}
