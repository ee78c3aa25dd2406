package java

import (
	"strings"
)

const (
	ConstructorName       = "<init>"
	StaticInitializerName = "<clinit>"

	objectDescriptor = "Ljava/lang/Object;"
	enumSynthetics   = "Ljava/lang/String;I"
)

// TypeDescriptor encodes a type as a field descriptor, e.g. "[[I" or
// "Ljava/lang/String;". Type variables encode as their erasure.
func (c *Codec) TypeDescriptor(t TypeRef) (string, error) {
	var sb strings.Builder
	if err := c.appendType(&sb, t, 0); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (c *Codec) appendType(sb *strings.Builder, t TypeRef, depth int) error {
	switch t.Kind {
	case TypeKindPrimitive:
		if _, ok := primitiveNames[t.Primitive]; !ok {
			return &ResolutionError{Name: t.Name, Err: ErrUnresolvedType}
		}
		sb.WriteByte(byte(t.Primitive))
		return nil
	case TypeKindArray:
		if t.Elem == nil {
			return &ResolutionError{Name: t.Name, Err: ErrUnresolvedType}
		}
		for i := 0; i < t.Dims; i++ {
			sb.WriteByte('[')
		}
		return c.appendType(sb, *t.Elem, depth)
	case TypeKindClass:
		if !t.Class.IsValid() {
			return &ResolutionError{Name: t.Name, Err: ErrUnresolvedType}
		}
		name, err := c.InternalName(t.Class)
		if err != nil {
			return err
		}
		sb.WriteByte('L')
		sb.WriteString(name)
		sb.WriteByte(';')
		return nil
	case TypeKindVariable:
		// Bounds can refer to other type variables; a cycle would only
		// come from a malformed tree.
		if t.Bound == nil || depth > 16 {
			sb.WriteString(objectDescriptor)
			return nil
		}
		return c.appendType(sb, *t.Bound, depth+1)
	}
	return &ResolutionError{Name: t.Name, Err: ErrUnresolvedType}
}

// MethodDescriptor encodes a method the way the compiler emits it,
// including synthetic leading parameters: the name and ordinal of enum
// constructors and the outer instance of inner-class constructors.
func (c *Codec) MethodDescriptor(m MethodEntity) (string, error) {
	var sb strings.Builder
	sb.WriteByte('(')
	outer, err := c.syntheticOuter(m)
	if err != nil {
		return "", err
	}
	switch {
	case m.Enclosing == EnclosingEnumConstructor:
		sb.WriteString(enumSynthetics)
	case outer.IsValid():
		name, err := c.InternalName(outer)
		if err != nil {
			return "", err
		}
		sb.WriteByte('L')
		sb.WriteString(name)
		sb.WriteByte(';')
	}
	for _, p := range m.Parameters {
		if err := c.appendType(&sb, p.Type, 0); err != nil {
			return "", err
		}
	}
	sb.WriteByte(')')

	ret := m.ReturnType
	if ret.Kind == 0 || m.IsConstructor {
		ret = PrimitiveType(Void)
	}
	if err := c.appendType(&sb, ret, 0); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// syntheticOuter returns the class whose instance is passed as the
// implicit first argument of m, or NoClassID.
func (c *Codec) syntheticOuter(m MethodEntity) (ClassID, error) {
	if !m.IsConstructor || m.Enclosing == EnclosingEnumConstructor {
		return NoClassID, nil
	}
	owner, ok := c.scope.Class(m.Owner)
	if !ok {
		return NoClassID, &ResolutionError{Class: m.Owner, Name: m.Name, Err: ErrUnknownClass}
	}
	if !owner.IsNamedInner() {
		return NoClassID, nil
	}
	return owner.Containing, nil
}

func (c *Codec) FieldDescriptor(f FieldEntity) (string, error) {
	return c.TypeDescriptor(f.Type)
}

// InternalMethodName returns "<init>" for constructors and the declared
// name otherwise.
func InternalMethodName(m MethodEntity) string {
	if m.IsConstructor {
		return ConstructorName
	}
	return m.Name
}

// MethodKey joins the internal name and descriptor of a method, the form
// used to key method mappings, e.g. "<init>(LOuter;)V".
func (c *Codec) MethodKey(m MethodEntity) (string, error) {
	desc, err := c.MethodDescriptor(m)
	if err != nil {
		return "", err
	}
	return InternalMethodName(m) + desc, nil
}
