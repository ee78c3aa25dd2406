package codebase

import (
	"fmt"
	"strings"

	"github.com/dhamidi/scribe/java"
	"github.com/dhamidi/scribe/java/source"
)

// Description is the byte-code identity of a declaration together with
// its mapped documentation.
type Description struct {
	Kind source.DeclarationKind
	// Owner is the binary name of the class, or of the declaring class
	// for members.
	Owner      string
	Name       string
	Descriptor string
	Parameters []string
	Javadoc    string
	// Err is set when the declaration has no byte-code identity.
	Err error
}

func (s Snapshot) DescribeAt(path string, line, column int) (Description, bool) {
	d, ok := s.Universe.DeclarationAt(path, line, column)
	if !ok {
		return Description{}, false
	}
	return s.Describe(d), true
}

func (s Snapshot) Describe(d source.Declaration) Description {
	desc := Description{Kind: d.Kind}
	owner := d.Class
	switch d.Kind {
	case source.DeclarationMethod:
		owner = d.Method.Owner
	case source.DeclarationField:
		owner = d.Field.Owner
	}
	desc.Owner, desc.Err = s.Codec.BinaryName(owner)
	if desc.Err != nil {
		return desc
	}

	switch d.Kind {
	case source.DeclarationClass:
		desc.Descriptor = "L" + java.SourceToInternalName(desc.Owner) + ";"
		desc.Javadoc = s.Mappings.ClassJavadoc(d.Class)
	case source.DeclarationMethod:
		desc.Name = java.InternalMethodName(d.Method)
		desc.Descriptor, desc.Err = s.Codec.MethodDescriptor(d.Method)
		if desc.Err != nil {
			return desc
		}
		for i := range d.Method.Parameters {
			desc.Parameters = append(desc.Parameters, s.Mappings.ParameterName(d.Method, i))
		}
		desc.Javadoc = s.Mappings.MethodJavadoc(d.Method)
	case source.DeclarationField:
		desc.Name = d.Field.Name
		desc.Descriptor, desc.Err = s.Codec.FieldDescriptor(d.Field)
		if desc.Err != nil {
			return desc
		}
		desc.Javadoc = s.Mappings.FieldJavadoc(d.Field)
	}
	return desc
}

// Key returns the mapping key of the declaration, e.g.
// "com/example/Outer$1.run()V".
func (d Description) Key() string {
	owner := java.SourceToInternalName(d.Owner)
	switch d.Kind {
	case source.DeclarationMethod:
		return owner + "." + d.Name + d.Descriptor
	case source.DeclarationField:
		return owner + "." + d.Name + ":" + d.Descriptor
	}
	return owner
}

func (d Description) Markdown() string {
	var b strings.Builder
	if d.Err != nil {
		fmt.Fprintf(&b, "**no byte-code name**: %s\n", d.Err)
		return b.String()
	}
	fmt.Fprintf(&b, "`%s`\n", d.Key())
	if len(d.Parameters) > 0 {
		fmt.Fprintf(&b, "\nParameters: %s\n", strings.Join(d.Parameters, ", "))
	}
	if d.Javadoc != "" {
		fmt.Fprintf(&b, "\n---\n\n```java\n%s\n```\n", d.Javadoc)
	}
	return b.String()
}

// MapJavadoc stores documentation for the declaration at a position.
func (s Snapshot) MapJavadoc(path string, line, column int, text string) error {
	d, ok := s.Universe.DeclarationAt(path, line, column)
	if !ok {
		return fmt.Errorf("%s:%d:%d: no declaration", path, line, column)
	}
	switch d.Kind {
	case source.DeclarationMethod:
		return s.Mappings.SetMethodJavadoc(d.Method, text)
	case source.DeclarationField:
		return s.Mappings.SetFieldJavadoc(d.Field, text)
	default:
		return s.Mappings.SetClassJavadoc(d.Class, text)
	}
}

// MapParameter renames the index-th parameter of the method at a position.
func (s Snapshot) MapParameter(path string, line, column, index int, name string) error {
	d, ok := s.Universe.DeclarationAt(path, line, column)
	if !ok || d.Kind != source.DeclarationMethod {
		return fmt.Errorf("%s:%d:%d: no method", path, line, column)
	}
	return s.Mappings.SetParameterName(d.Method, index, name)
}
