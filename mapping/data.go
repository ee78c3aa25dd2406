// Package mapping holds documentation and parameter names keyed by the
// byte-code identity of the declarations they describe.
package mapping

import (
	"slices"
)

type ClassData struct {
	// Name is the internal name, e.g. "com/example/Outer$1".
	Name    string
	Javadoc []string
	methods map[string]*MethodData
	fields  map[string]*FieldData
}

type MethodData struct {
	Name       string
	Descriptor string
	Javadoc    []string
	// Parameters are ordered by JVM slot.
	Parameters []ParameterData
}

type FieldData struct {
	Name       string
	Descriptor string
	Javadoc    []string
}

// ParameterData describes a parameter by its local variable slot. Empty
// strings mean no mapping.
type ParameterData struct {
	Index   int
	Name    string
	Javadoc string
}

func newClassData(name string) *ClassData {
	return &ClassData{
		Name:    name,
		methods: map[string]*MethodData{},
		fields:  map[string]*FieldData{},
	}
}

func (c *ClassData) clone() ClassData {
	return ClassData{Name: c.Name, Javadoc: slices.Clone(c.Javadoc)}
}

func (m *MethodData) clone() MethodData {
	out := *m
	out.Javadoc = slices.Clone(m.Javadoc)
	out.Parameters = slices.Clone(m.Parameters)
	return out
}

// Parameter returns the data for the parameter in the given slot.
func (m *MethodData) Parameter(index int) (ParameterData, bool) {
	i, ok := m.find(index)
	if !ok {
		return ParameterData{}, false
	}
	return m.Parameters[i], true
}

func (m *MethodData) find(index int) (int, bool) {
	return slices.BinarySearchFunc(m.Parameters, index, func(p ParameterData, index int) int {
		return p.Index - index
	})
}

func (m *MethodData) parameter(index int) *ParameterData {
	i, ok := m.find(index)
	if !ok {
		m.Parameters = slices.Insert(m.Parameters, i, ParameterData{Index: index})
	}
	return &m.Parameters[i]
}

// parameterNamed finds a parameter by its mapped name, or by its declared
// name when it has no mapped one.
func (m *MethodData) parameterNamed(name string, declared []ParameterData) *ParameterData {
	for i := range m.Parameters {
		if m.Parameters[i].Name == name {
			return &m.Parameters[i]
		}
	}
	for _, d := range declared {
		if d.Name != name {
			continue
		}
		p := m.parameter(d.Index)
		if p.Name == "" {
			return p
		}
	}
	return nil
}

func (m *MethodData) hasDocs() bool {
	if len(m.Javadoc) > 0 {
		return true
	}
	for _, p := range m.Parameters {
		if p.Javadoc != "" {
			return true
		}
	}
	return false
}

func (f *FieldData) clone() FieldData {
	out := *f
	out.Javadoc = slices.Clone(f.Javadoc)
	return out
}
