// Package schema defines the HCL block structures a sheet file is written in.
package schema

import "github.com/hashicorp/hcl/v2"

// Node represents a `node` block from a user's sheet file: one formula-bearing
// computation unit declared by id.
type Node struct {
	Name string `hcl:"name,label"`
	// Formula is the raw formula text; it is carried verbatim and never
	// evaluated by this program.
	Formula string `hcl:"formula"`
	// DependsOn lists dependency descriptors in their canonical string form,
	// e.g. "field:amount", "entity:sales.total", "node:tax_rate", "volatile".
	DependsOn []string `hcl:"depends_on,optional"`
	// ReturnType is an HCL type expression such as `number` or `list(string)`.
	ReturnType hcl.Expression `hcl:"return_type,optional"`
	Volatile   bool           `hcl:"volatile,optional"`
	// CacheTTL is a Go duration string such as "30s". Empty means unbounded.
	CacheTTL string `hcl:"cache_ttl,optional"`
}

// SheetConfig represents the top-level structure of a sheet file, containing
// all declared nodes.
type SheetConfig struct {
	Nodes []*Node  `hcl:"node,block"`
	Body  hcl.Body `hcl:",remain"`
}
