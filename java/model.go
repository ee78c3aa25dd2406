package java

// ClassID is a handle to a class declaration owned by a Scope.
// Containment between classes is expressed through handles rather than
// pointers, so the declaration tree stays owned by the host.
type ClassID uint32

// NoClassID marks the absence of a class reference.
const NoClassID ClassID = 0

// IsValid reports whether the handle refers to a class.
func (id ClassID) IsValid() bool { return id != NoClassID }

type ClassKind uint8

const (
	ClassKindTopLevel ClassKind = iota + 1
	ClassKindNested
	// ClassKindAnonymous covers anonymous classes and local classes. Both
	// are identified by their position among the anonymous declarations
	// of their enclosing class.
	ClassKindAnonymous
	ClassKindTypeParameter
)

func (k ClassKind) String() string {
	switch k {
	case ClassKindTopLevel:
		return "top-level"
	case ClassKindNested:
		return "nested"
	case ClassKindAnonymous:
		return "anonymous"
	case ClassKindTypeParameter:
		return "type-parameter"
	}
	return "unknown"
}

type ClassEntity struct {
	ID ClassID
	// SimpleName is empty for anonymous classes. Local classes keep
	// their declared name even though it plays no part in encoding.
	SimpleName string
	// QualifiedName is the dotted package-qualified name. Only
	// meaningful for top-level classes.
	QualifiedName string
	Kind          ClassKind
	// Containing is the lexically enclosing class, or NoClassID for
	// top-level classes.
	Containing  ClassID
	IsStatic    bool
	IsEnum      bool
	IsInterface bool
}

// IsNamedInner reports whether instances of the class carry an implicit
// reference to an instance of their containing class.
func (c ClassEntity) IsNamedInner() bool {
	return c.Kind == ClassKindNested && !c.IsStatic && c.Containing.IsValid()
}

type TypeKind uint8

const (
	TypeKindPrimitive TypeKind = iota + 1
	TypeKindArray
	TypeKindClass
	TypeKindVariable
)

// Primitive is identified by its descriptor letter.
type Primitive byte

const (
	Byte    Primitive = 'B'
	Char    Primitive = 'C'
	Double  Primitive = 'D'
	Float   Primitive = 'F'
	Int     Primitive = 'I'
	Long    Primitive = 'J'
	Short   Primitive = 'S'
	Boolean Primitive = 'Z'
	Void    Primitive = 'V'
)

var primitiveNames = map[Primitive]string{
	Byte:    "byte",
	Char:    "char",
	Double:  "double",
	Float:   "float",
	Int:     "int",
	Long:    "long",
	Short:   "short",
	Boolean: "boolean",
	Void:    "void",
}

func (p Primitive) String() string {
	if name, ok := primitiveNames[p]; ok {
		return name
	}
	return "unknown"
}

// IsWide reports whether values of the type occupy two local variable slots.
func (p Primitive) IsWide() bool {
	return p == Long || p == Double
}

// PrimitiveByName maps a source keyword such as "int" to its primitive.
func PrimitiveByName(name string) (Primitive, bool) {
	for p, n := range primitiveNames {
		if n == name {
			return p, true
		}
	}
	return 0, false
}

// PrimitiveFromDescriptor maps a descriptor letter back to its primitive.
func PrimitiveFromDescriptor(c byte) (Primitive, bool) {
	p := Primitive(c)
	_, ok := primitiveNames[p]
	return p, ok
}

type TypeRef struct {
	Kind      TypeKind
	Primitive Primitive
	// Elem and Dims describe an array; Elem is never itself an array.
	Elem *TypeRef
	Dims int
	// Class is NoClassID when the reference did not resolve.
	Class ClassID
	// Name is the type as written in source, kept for diagnostics.
	Name string
	// Bound is the erasure of a type variable; nil erases to Object.
	Bound *TypeRef
}

func PrimitiveType(p Primitive) TypeRef {
	return TypeRef{Kind: TypeKindPrimitive, Primitive: p, Name: p.String()}
}

func ClassType(id ClassID, name string) TypeRef {
	return TypeRef{Kind: TypeKindClass, Class: id, Name: name}
}

func TypeVariable(name string, bound *TypeRef) TypeRef {
	return TypeRef{Kind: TypeKindVariable, Name: name, Bound: bound}
}

// ArrayOf wraps elem in dims array dimensions, flattening nested arrays.
func ArrayOf(elem TypeRef, dims int) TypeRef {
	if dims <= 0 {
		return elem
	}
	if elem.Kind == TypeKindArray {
		return ArrayOf(*elem.Elem, elem.Dims+dims)
	}
	e := elem
	return TypeRef{Kind: TypeKindArray, Elem: &e, Dims: dims, Name: elem.Name}
}

func (t TypeRef) IsVoid() bool {
	return t.Kind == TypeKindPrimitive && t.Primitive == Void
}

// IsWide reports whether the type occupies two local variable slots.
func (t TypeRef) IsWide() bool {
	return t.Kind == TypeKindPrimitive && t.Primitive.IsWide()
}

func (t TypeRef) String() string {
	if t.Kind == TypeKindArray {
		s := t.Elem.String()
		for i := 0; i < t.Dims; i++ {
			s += "[]"
		}
		return s
	}
	return t.Name
}

type EnclosingKind uint8

const (
	EnclosingInstance EnclosingKind = iota
	EnclosingStatic
	EnclosingEnumConstructor
)

type Parameter struct {
	Name string
	Type TypeRef
}

type MethodEntity struct {
	Owner         ClassID
	Name          string
	IsConstructor bool
	Parameters    []Parameter
	ReturnType    TypeRef
	IsVarArgs     bool
	Enclosing     EnclosingKind
}

func (m MethodEntity) IsStatic() bool {
	return m.Enclosing == EnclosingStatic
}

type FieldEntity struct {
	Owner    ClassID
	Name     string
	Type     TypeRef
	IsStatic bool
}
