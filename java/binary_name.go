package java

import (
	"strconv"
	"strings"
)

// Codec converts declarations into their byte-code names and descriptors
// and back. It holds no state besides the scope, so a Codec is safe for
// concurrent use as long as the scope is.
type Codec struct {
	scope Scope
}

func NewCodec(scope Scope) *Codec {
	return &Codec{scope: scope}
}

func (c *Codec) Scope() Scope {
	return c.scope
}

// BinaryName returns the dotted binary name of a class, e.g.
// "com.example.Outer$Inner$1".
func (c *Codec) BinaryName(id ClassID) (string, error) {
	var sb strings.Builder
	if err := c.appendBinaryName(&sb, id); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// InternalName returns the slash separated name used inside class files,
// e.g. "com/example/Outer$Inner$1".
func (c *Codec) InternalName(id ClassID) (string, error) {
	name, err := c.BinaryName(id)
	if err != nil {
		return "", err
	}
	return SourceToInternalName(name), nil
}

func (c *Codec) appendBinaryName(sb *strings.Builder, id ClassID) error {
	cls, ok := c.scope.Class(id)
	if !ok {
		return &ResolutionError{Class: id, Err: ErrUnknownClass}
	}

	var segments []string
	visited := make(map[ClassID]bool)
	for {
		if visited[cls.ID] {
			return resolutionError(cls, ErrDetached)
		}
		visited[cls.ID] = true

		switch cls.Kind {
		case ClassKindTypeParameter:
			return resolutionError(cls, ErrTypeParameter)
		case ClassKindTopLevel:
			if cls.QualifiedName == "" {
				return resolutionError(cls, ErrDetached)
			}
			sb.WriteString(cls.QualifiedName)
			for i := len(segments) - 1; i >= 0; i-- {
				sb.WriteByte('$')
				sb.WriteString(segments[i])
			}
			return nil
		}

		if !cls.Containing.IsValid() {
			return resolutionError(cls, ErrDetached)
		}
		parent, ok := c.scope.Class(cls.Containing)
		if !ok {
			return resolutionError(cls, ErrDetached)
		}

		switch cls.Kind {
		case ClassKindNested:
			if cls.SimpleName == "" {
				return resolutionError(cls, ErrDetached)
			}
			segments = append(segments, cls.SimpleName)
		case ClassKindAnonymous:
			pos := c.anonymousPosition(parent.ID, cls.ID)
			if pos == 0 {
				return resolutionError(cls, ErrAnonymousIndex)
			}
			segments = append(segments, strconv.Itoa(pos))
		default:
			return resolutionError(cls, ErrDetached)
		}
		cls = parent
	}
}

// anonymousPosition returns the 1-based position of child among the
// anonymous children of parent, or 0 if it is not one of them.
func (c *Codec) anonymousPosition(parent, child ClassID) int {
	for i, id := range c.scope.AnonymousChildren(parent) {
		if id == child {
			return i + 1
		}
	}
	return 0
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
