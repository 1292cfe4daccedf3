package depref

// Kind enumerates the closed set of dependency descriptor variants.
type Kind int

const (
	// KindField is a same-scope field reference, resolved to the field's
	// owning node through the host's field lookup.
	KindField Kind = iota
	// KindEntity is a cross-scope entity reference, resolved to a synthetic
	// node id namespaced to that entity.
	KindEntity
	// KindEntityField is a cross-scope entity-field reference, resolved to a
	// synthetic node id combining entity and field.
	KindEntityField
	// KindNamedNode is a direct reference to a node id, used verbatim.
	KindNamedNode
	// KindVolatile marks the declaring node as volatile. It never resolves
	// to an edge.
	KindVolatile
)

// Ref is a single parsed dependency descriptor. Exactly the fields implied by
// Kind are populated; the rest are zero.
type Ref struct {
	Kind Kind
	// Name holds the field name (KindField), entity name (KindEntity,
	// KindEntityField) or node id (KindNamedNode).
	Name string
	// Field holds the field name for KindEntityField only.
	Field string
}

// Field returns a same-scope field descriptor.
func Field(name string) Ref {
	return Ref{Kind: KindField, Name: name}
}

// Entity returns a cross-scope entity descriptor.
func Entity(name string) Ref {
	return Ref{Kind: KindEntity, Name: name}
}

// EntityField returns a cross-scope entity-field descriptor.
func EntityField(entity, field string) Ref {
	return Ref{Kind: KindEntityField, Name: entity, Field: field}
}

// NamedNode returns a descriptor referencing a node id verbatim.
func NamedNode(id string) Ref {
	return Ref{Kind: KindNamedNode, Name: id}
}

// Volatile returns the volatile-function marker descriptor.
func Volatile() Ref {
	return Ref{Kind: KindVolatile}
}
