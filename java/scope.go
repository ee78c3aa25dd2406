package java

// Scope resolves names and handles against a snapshot of a declaration
// tree owned by the host. Implementations must not change between the
// calls made for a single encode or decode.
type Scope interface {
	// Class returns the declaration behind a handle.
	Class(id ClassID) (ClassEntity, bool)
	// FindTopLevel looks up a top-level class by its dotted qualified name.
	FindTopLevel(qualifiedName string) (ClassID, bool)
	// FindNamedNested looks up a named member class of owner.
	FindNamedNested(owner ClassID, simpleName string) (ClassID, bool)
	// AnonymousChildren lists the anonymous and local classes whose
	// nearest enclosing class is owner, in source order.
	AnonymousChildren(owner ClassID) []ClassID
}

// MemberScope is implemented by scopes that can enumerate the members
// declared directly in a class.
type MemberScope interface {
	Scope
	Methods(owner ClassID) []MethodEntity
	Fields(owner ClassID) []FieldEntity
}
