package mapping

import (
	"fmt"

	"github.com/dhamidi/scribe/java"
)

// Mappings looks up and edits a store through the declarations of one
// universe snapshot. Declarations that cannot be encoded have no mapping.
type Mappings struct {
	store *Store
	codec *java.Codec
}

func For(store *Store, codec *java.Codec) *Mappings {
	return &Mappings{store: store, codec: codec}
}

func (m *Mappings) Store() *Store {
	return m.store
}

func (m *Mappings) methodKey(me java.MethodEntity) (owner, name, descriptor string, err error) {
	if owner, err = m.codec.InternalName(me.Owner); err != nil {
		return "", "", "", err
	}
	if descriptor, err = m.codec.MethodDescriptor(me); err != nil {
		return "", "", "", err
	}
	return owner, java.InternalMethodName(me), descriptor, nil
}

func (m *Mappings) Class(id java.ClassID) (ClassData, bool) {
	name, err := m.codec.InternalName(id)
	if err != nil {
		return ClassData{}, false
	}
	return m.store.Class(name)
}

func (m *Mappings) Method(me java.MethodEntity) (MethodData, bool) {
	owner, name, desc, err := m.methodKey(me)
	if err != nil {
		return MethodData{}, false
	}
	return m.store.Method(owner, name, desc)
}

func (m *Mappings) Field(fe java.FieldEntity) (FieldData, bool) {
	owner, err := m.codec.InternalName(fe.Owner)
	if err != nil {
		return FieldData{}, false
	}
	return m.store.Field(owner, fe.Name)
}

// Parameter returns the data for the i-th declared parameter of me.
func (m *Mappings) Parameter(me java.MethodEntity, i int) (ParameterData, bool) {
	md, ok := m.Method(me)
	if !ok {
		return ParameterData{}, false
	}
	slot, err := m.slot(me, i)
	if err != nil {
		return ParameterData{}, false
	}
	return md.Parameter(slot)
}

// ParameterName returns the mapped name of the i-th declared parameter,
// falling back to its declared name.
func (m *Mappings) ParameterName(me java.MethodEntity, i int) string {
	if p, ok := m.Parameter(me, i); ok && p.Name != "" {
		return p.Name
	}
	if i < 0 || i >= len(me.Parameters) {
		return ""
	}
	return me.Parameters[i].Name
}

func (m *Mappings) SetClassJavadoc(id java.ClassID, text string) error {
	name, err := m.codec.InternalName(id)
	if err != nil {
		return err
	}
	m.store.SetClassJavadoc(name, text)
	return nil
}

func (m *Mappings) SetFieldJavadoc(fe java.FieldEntity, text string) error {
	owner, err := m.codec.InternalName(fe.Owner)
	if err != nil {
		return err
	}
	desc, err := m.codec.FieldDescriptor(fe)
	if err != nil {
		return err
	}
	m.store.SetFieldJavadoc(owner, fe.Name, desc, text)
	return nil
}

// SetMethodJavadoc stores the documentation of a method. @param tags may
// name a parameter by its mapped or its declared name.
func (m *Mappings) SetMethodJavadoc(me java.MethodEntity, text string) error {
	owner, name, desc, err := m.methodKey(me)
	if err != nil {
		return err
	}
	slots := m.codec.ParameterSlots(me)
	declared := make([]ParameterData, len(me.Parameters))
	for i, p := range me.Parameters {
		declared[i] = ParameterData{Index: slots[i], Name: p.Name}
	}
	m.store.setMethodJavadoc(owner, name, desc, text, declared)
	return nil
}

func (m *Mappings) slot(me java.MethodEntity, i int) (int, error) {
	if i < 0 || i >= len(me.Parameters) {
		return 0, fmt.Errorf("method %s has no parameter %d", me.Name, i)
	}
	return m.codec.ParameterSlots(me)[i], nil
}

func (m *Mappings) SetParameterName(me java.MethodEntity, i int, paramName string) error {
	owner, name, desc, err := m.methodKey(me)
	if err != nil {
		return err
	}
	slot, err := m.slot(me, i)
	if err != nil {
		return err
	}
	m.store.SetParameterName(owner, name, desc, slot, paramName)
	return nil
}

func (m *Mappings) SetParameterJavadoc(me java.MethodEntity, i int, text string) error {
	owner, name, desc, err := m.methodKey(me)
	if err != nil {
		return err
	}
	slot, err := m.slot(me, i)
	if err != nil {
		return err
	}
	m.store.SetParameterJavadoc(owner, name, desc, slot, text)
	return nil
}

// MethodJavadoc renders the mapped documentation of a method, or returns
// "" when there is none.
func (m *Mappings) MethodJavadoc(me java.MethodEntity) string {
	md, ok := m.Method(me)
	if !ok {
		return ""
	}
	slots := m.codec.ParameterSlots(me)
	return RenderMethod(md, func(index int) string {
		for i, slot := range slots {
			if slot == index {
				return me.Parameters[i].Name
			}
		}
		return ""
	})
}

func (m *Mappings) ClassJavadoc(id java.ClassID) string {
	c, ok := m.Class(id)
	if !ok {
		return ""
	}
	return Render(c.Javadoc)
}

func (m *Mappings) FieldJavadoc(fe java.FieldEntity) string {
	f, ok := m.Field(fe)
	if !ok {
		return ""
	}
	return Render(f.Javadoc)
}
