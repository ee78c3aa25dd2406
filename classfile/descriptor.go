package classfile

import (
	"fmt"
	"strings"
)

type FieldType struct {
	BaseType   string
	ClassName  string
	ArrayDepth int
}

func (ft *FieldType) String() string {
	var sb strings.Builder
	if ft.BaseType != "" {
		sb.WriteString(ft.BaseType)
	} else {
		sb.WriteString(strings.ReplaceAll(ft.ClassName, "/", "."))
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (ft *FieldType) IsArray() bool {
	return ft.ArrayDepth > 0
}

func (ft *FieldType) IsPrimitive() bool {
	return ft.BaseType != "" && ft.ArrayDepth == 0
}

// IsWide reports whether a value of this type takes two local variable
// slots.
func (ft *FieldType) IsWide() bool {
	return ft.ArrayDepth == 0 && (ft.BaseType == "long" || ft.BaseType == "double")
}

type MethodDescriptor struct {
	Parameters []FieldType
	// ReturnType is nil for void.
	ReturnType *FieldType
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") ")
	if md.ReturnType != nil {
		sb.WriteString(md.ReturnType.String())
	} else {
		sb.WriteString("void")
	}
	return sb.String()
}

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

func ParseFieldDescriptor(desc string) (*FieldType, error) {
	ft, n := parseFieldType(desc, 0)
	if ft == nil {
		return nil, fmt.Errorf("invalid field descriptor %q", desc)
	}
	if n != len(desc) {
		return nil, fmt.Errorf("invalid field descriptor %q: trailing %q", desc, desc[n:])
	}
	return ft, nil
}

func ParseMethodDescriptor(desc string) (*MethodDescriptor, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, fmt.Errorf("invalid method descriptor %q: missing '('", desc)
	}

	md := &MethodDescriptor{}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		ft, consumed := parseFieldType(desc, i)
		if ft == nil {
			return nil, fmt.Errorf("invalid method descriptor %q: bad parameter at %d", desc, i)
		}
		md.Parameters = append(md.Parameters, *ft)
		i += consumed
	}
	if i >= len(desc) {
		return nil, fmt.Errorf("invalid method descriptor %q: missing ')'", desc)
	}
	i++

	if i < len(desc) && desc[i] == 'V' {
		i++
	} else {
		ft, consumed := parseFieldType(desc, i)
		if ft == nil {
			return nil, fmt.Errorf("invalid method descriptor %q: bad return type", desc)
		}
		md.ReturnType = ft
		i += consumed
	}
	if i != len(desc) {
		return nil, fmt.Errorf("invalid method descriptor %q: trailing %q", desc, desc[i:])
	}
	return md, nil
}

func parseFieldType(desc string, start int) (*FieldType, int) {
	ft := &FieldType{}
	i := start
	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}
	if i >= len(desc) {
		return nil, 0
	}

	if base, ok := baseTypes[desc[i]]; ok {
		ft.BaseType = base
		return ft, i - start + 1
	}
	if desc[i] != 'L' {
		return nil, 0
	}
	semicolon := strings.IndexByte(desc[i:], ';')
	if semicolon <= 1 {
		return nil, 0
	}
	ft.ClassName = desc[i+1 : i+semicolon]
	return ft, i - start + semicolon + 1
}
