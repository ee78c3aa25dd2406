package source

type DeclKind uint8

const (
	DeclClass DeclKind = iota + 1
	DeclInterface
	DeclEnum
	DeclRecord
	DeclAnnotation
)

func (k DeclKind) String() string {
	switch k {
	case DeclClass:
		return "class"
	case DeclInterface:
		return "interface"
	case DeclEnum:
		return "enum"
	case DeclRecord:
		return "record"
	case DeclAnnotation:
		return "@interface"
	}
	return "unknown"
}

// TypeExpr is a type as written in source with its type arguments
// removed.
type TypeExpr struct {
	// Name is the dotted name, or the keyword of a primitive type.
	Name      string
	Primitive bool
	Dims      int
	Span      Span
}

func (t TypeExpr) String() string {
	s := t.Name
	for i := 0; i < t.Dims; i++ {
		s += "[]"
	}
	return s
}

type TypeParam struct {
	Name   string
	Bounds []TypeExpr
}

type Import struct {
	Name     string
	OnDemand bool
	Static   bool
}

type File struct {
	Path    string
	Package string
	Imports []Import
	Types   []*ClassDecl
}

type ClassDecl struct {
	// Name is empty for anonymous classes.
	Name string
	Kind DeclKind
	// Anon marks an anonymous class body, Local a class declared in a
	// block. Both are listed in Parent.Inner.
	Anon   bool
	Local  bool
	Static bool
	Parent *ClassDecl
	File   *File

	TypeParams []TypeParam
	// ScopeTypeParams are the type parameters of the method an anonymous
	// or local class is declared in.
	ScopeTypeParams []TypeParam
	// Supers lists extends and implements clauses. For an anonymous
	// class it holds the instantiated type.
	Supers     []TypeExpr
	Components []ParamDecl

	Members []*ClassDecl
	Inner   []*ClassDecl
	// Visible lists the local classes in scope where an anonymous or
	// local class is declared, innermost last.
	Visible []*ClassDecl
	Methods []*MethodDecl
	Fields  []*FieldDecl

	Span Span
}

func (c *ClassDecl) member(name string) *ClassDecl {
	for _, m := range c.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

type ParamDecl struct {
	Name string
	Type TypeExpr
	Span Span
}

type MethodDecl struct {
	Name        string
	Constructor bool
	Static      bool
	TypeParams  []TypeParam
	Params      []ParamDecl
	// Return is the zero TypeExpr for constructors.
	Return  TypeExpr
	VarArgs bool
	Span    Span
}

type FieldDecl struct {
	Name   string
	Type   TypeExpr
	Static bool
	Span   Span
}
