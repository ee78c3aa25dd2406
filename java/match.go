package java

// ErasureEqual reports whether two types have the same erasure. Types that
// cannot be encoded are never equal to anything.
func (c *Codec) ErasureEqual(a, b TypeRef) bool {
	da, err := c.TypeDescriptor(a)
	if err != nil {
		return false
	}
	db, err := c.TypeDescriptor(b)
	if err != nil {
		return false
	}
	return da == db
}

// MatchesMethod reports whether m could override or be overridden by
// pattern: both are constructors or neither is, their parameters are
// erasure-equal, and for methods their return types are too.
func (c *Codec) MatchesMethod(m, pattern MethodEntity) bool {
	if m.IsConstructor != pattern.IsConstructor {
		return false
	}
	if len(m.Parameters) != len(pattern.Parameters) {
		return false
	}
	for i := range m.Parameters {
		a, b := m.Parameters[i].Type, pattern.Parameters[i].Type
		if a.Kind == TypeKindPrimitive && (b.Kind != TypeKindPrimitive || a.Primitive != b.Primitive) {
			return false
		}
		if !c.ErasureEqual(a, b) {
			return false
		}
	}
	if m.IsConstructor {
		return true
	}
	return c.ErasureEqual(returnOrVoid(m.ReturnType), returnOrVoid(pattern.ReturnType))
}

func (c *Codec) MatchesField(f, pattern FieldEntity) bool {
	return c.ErasureEqual(f.Type, pattern.Type)
}

func returnOrVoid(t TypeRef) TypeRef {
	if t.Kind == 0 {
		return PrimitiveType(Void)
	}
	return t
}

// ParameterSlots returns the local variable slot of each declared
// parameter of m. Slot numbering accounts for the receiver, for
// synthetic leading parameters and for two-slot long and double values.
func (c *Codec) ParameterSlots(m MethodEntity) []int {
	slot := 0
	if !m.IsStatic() {
		slot = 1
	}
	if m.Enclosing == EnclosingEnumConstructor {
		slot += 2
	} else if outer, err := c.syntheticOuter(m); err == nil && outer.IsValid() {
		slot++
	}

	slots := make([]int, len(m.Parameters))
	for i, p := range m.Parameters {
		slots[i] = slot
		if p.Type.IsWide() {
			slot += 2
		} else {
			slot++
		}
	}
	return slots
}

// SuperScope is implemented by scopes that know the direct supertypes of
// their classes.
type SuperScope interface {
	MemberScope
	Supertypes(id ClassID) []ClassID
}

// SuperConstructors returns the constructors of all transitive
// supertypes of owner whose descriptor equals descriptor.
func (c *Codec) SuperConstructors(owner ClassID, descriptor string) []MethodEntity {
	ss, ok := c.scope.(SuperScope)
	if !ok {
		return nil
	}

	var result []MethodEntity
	seen := map[ClassID]bool{owner: true}
	queue := append([]ClassID(nil), ss.Supertypes(owner)...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		for _, m := range ss.Methods(id) {
			if !m.IsConstructor {
				continue
			}
			if desc, err := c.MethodDescriptor(m); err == nil && desc == descriptor {
				result = append(result, m)
			}
		}
		queue = append(queue, ss.Supertypes(id)...)
	}
	return result
}
