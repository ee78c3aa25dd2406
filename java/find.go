package java

import (
	"strings"
)

// FindClass resolves a dotted binary name such as
// "com.example.Outer$Inner$2" to the class it names. Segments made only of
// digits are anonymous positions; all others are member class names. A
// false result means no declaration in the scope matches.
//
// Slash separated internal names are accepted as well.
func (c *Codec) FindClass(binaryName string) (ClassID, bool) {
	binaryName = InternalToSourceName(binaryName)

	dollar := strings.IndexByte(binaryName, '$')
	if dollar == -1 {
		return c.scope.FindTopLevel(binaryName)
	}

	current, ok := c.scope.FindTopLevel(binaryName[:dollar])
	if !ok {
		return NoClassID, false
	}
	for _, segment := range strings.Split(binaryName[dollar+1:], "$") {
		current, ok = c.findInner(current, segment)
		if !ok {
			return NoClassID, false
		}
	}
	return current, true
}

func (c *Codec) findInner(owner ClassID, segment string) (ClassID, bool) {
	index, numeric := parseAnonymousIndex(segment)
	if !numeric {
		return c.scope.FindNamedNested(owner, segment)
	}
	children := c.scope.AnonymousChildren(owner)
	if index < 1 || index > len(children) {
		return NoClassID, false
	}
	return children[index-1], true
}

// parseAnonymousIndex reports whether segment consists only of digits and
// returns its value. Values too large to be a position come back as -1.
func parseAnonymousIndex(segment string) (int, bool) {
	if segment == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(segment); i++ {
		ch := segment[i]
		if ch < '0' || ch > '9' {
			return 0, false
		}
		n = n*10 + int(ch-'0')
	}
	if len(segment) > 9 {
		return -1, true
	}
	return n, true
}

// FindMethod resolves a method key, given as internal name and descriptor,
// to a method declared in owner.
func (c *Codec) FindMethod(owner ClassID, name, descriptor string) (MethodEntity, bool) {
	ms, ok := c.scope.(MemberScope)
	if !ok {
		return MethodEntity{}, false
	}
	for _, m := range ms.Methods(owner) {
		if InternalMethodName(m) != name {
			continue
		}
		desc, err := c.MethodDescriptor(m)
		if err != nil {
			continue
		}
		if desc == descriptor {
			return m, true
		}
	}
	return MethodEntity{}, false
}

// FindField resolves a field of owner by name. Fields cannot be
// overloaded, so the descriptor is only checked when given.
func (c *Codec) FindField(owner ClassID, name, descriptor string) (FieldEntity, bool) {
	ms, ok := c.scope.(MemberScope)
	if !ok {
		return FieldEntity{}, false
	}
	for _, f := range ms.Fields(owner) {
		if f.Name != name {
			continue
		}
		if descriptor == "" {
			return f, true
		}
		if desc, err := c.FieldDescriptor(f); err == nil && desc == descriptor {
			return f, true
		}
	}
	return FieldEntity{}, false
}
