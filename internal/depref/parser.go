package depref

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex validates bare field and entity identifiers.
var nameRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// entityRegex parses entity references like `sales` or `sales.total`.
var entityRegex = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_-]*)(?:\.([a-zA-Z_][a-zA-Z0-9_-]*))?$`)

// Parse creates a Ref from its canonical string representation.
//
// Accepted forms:
//
//	field:<name>            same-scope field reference
//	entity:<name>           cross-scope entity reference
//	entity:<name>.<field>   cross-scope entity-field reference
//	node:<id>               named-node reference (id used verbatim)
//	volatile                volatile-function marker
func Parse(raw string) (Ref, error) {
	if raw == "" {
		return Ref{}, fmt.Errorf("dependency descriptor cannot be empty")
	}

	if raw == "volatile" {
		return Volatile(), nil
	}

	prefix, rest, found := strings.Cut(raw, ":")
	if !found {
		return Ref{}, fmt.Errorf("invalid dependency descriptor %q: missing kind prefix", raw)
	}
	if rest == "" {
		return Ref{}, fmt.Errorf("invalid dependency descriptor %q: empty reference", raw)
	}

	switch prefix {
	case "field":
		if !nameRegex.MatchString(rest) {
			return Ref{}, fmt.Errorf("invalid field name in descriptor %q", raw)
		}
		return Field(rest), nil
	case "entity":
		matches := entityRegex.FindStringSubmatch(rest)
		if matches == nil {
			return Ref{}, fmt.Errorf("invalid entity reference in descriptor %q", raw)
		}
		if matches[2] == "" {
			return Entity(matches[1]), nil
		}
		return EntityField(matches[1], matches[2]), nil
	case "node":
		return NamedNode(rest), nil
	default:
		return Ref{}, fmt.Errorf("unknown dependency descriptor kind %q in %q", prefix, raw)
	}
}

// ParseAll parses a list of raw descriptor strings, failing on the first
// invalid entry.
func ParseAll(raw []string) ([]Ref, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	refs := make([]Ref, 0, len(raw))
	for _, r := range raw {
		ref, err := Parse(r)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// String serializes the Ref into its canonical string representation.
func (r Ref) String() string {
	switch r.Kind {
	case KindField:
		return "field:" + r.Name
	case KindEntity:
		return "entity:" + r.Name
	case KindEntityField:
		return fmt.Sprintf("entity:%s.%s", r.Name, r.Field)
	case KindNamedNode:
		return "node:" + r.Name
	case KindVolatile:
		return "volatile"
	default:
		return fmt.Sprintf("unknown(%d)", int(r.Kind))
	}
}
