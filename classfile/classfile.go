// Package classfile reads the parts of a compiled class that identify
// it and its members: names, descriptors and the InnerClasses table.
package classfile

const Magic = 0xCAFEBABE

type AccessFlags uint16

const (
	AccPublic    AccessFlags = 0x0001
	AccPrivate   AccessFlags = 0x0002
	AccProtected AccessFlags = 0x0004
	AccStatic    AccessFlags = 0x0008
	AccFinal     AccessFlags = 0x0010
	AccVarargs   AccessFlags = 0x0080
	AccInterface AccessFlags = 0x0200
	AccAbstract  AccessFlags = 0x0400
	AccSynthetic AccessFlags = 0x1000
	AccEnum      AccessFlags = 0x4000
	AccMandated  AccessFlags = 0x8000
)

func (f AccessFlags) IsPublic() bool    { return f&AccPublic != 0 }
func (f AccessFlags) IsFinal() bool     { return f&AccFinal != 0 }
func (f AccessFlags) IsStatic() bool    { return f&AccStatic != 0 }
func (f AccessFlags) IsVarargs() bool   { return f&AccVarargs != 0 }
func (f AccessFlags) IsInterface() bool { return f&AccInterface != 0 }
func (f AccessFlags) IsSynthetic() bool { return f&AccSynthetic != 0 }
func (f AccessFlags) IsEnum() bool      { return f&AccEnum != 0 }

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []MemberInfo
	Methods      []MemberInfo
	Attributes   []AttributeInfo
}

// MemberInfo is a field_info or method_info structure; both share a layout.
type MemberInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (m *MemberInfo) Name(cp ConstantPool) string {
	return cp.Utf8(m.NameIndex)
}

func (m *MemberInfo) Descriptor(cp ConstantPool) string {
	return cp.Utf8(m.DescriptorIndex)
}

type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
}

// InnerClass is one row of the InnerClasses attribute with its indices
// resolved. OuterClass is empty for local and anonymous classes, and
// InnerName is empty for anonymous classes.
type InnerClass struct {
	InnerClass  string
	OuterClass  string
	InnerName   string
	AccessFlags AccessFlags
}

func (ic InnerClass) IsAnonymous() bool {
	return ic.InnerName == ""
}

// ClassName returns the internal name of the class, e.g. "a/b/C$1".
func (cf *ClassFile) ClassName() string {
	return cf.ConstantPool.ClassName(cf.ThisClass)
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.ConstantPool.ClassName(cf.SuperClass)
}

// Method finds a method by name and, when descriptor is non-empty, by
// descriptor.
func (cf *ClassFile) Method(name, descriptor string) *MemberInfo {
	return findMember(cf.Methods, cf.ConstantPool, name, descriptor)
}

func (cf *ClassFile) Field(name, descriptor string) *MemberInfo {
	return findMember(cf.Fields, cf.ConstantPool, name, descriptor)
}

func findMember(members []MemberInfo, cp ConstantPool, name, descriptor string) *MemberInfo {
	for i := range members {
		if members[i].Name(cp) != name {
			continue
		}
		if descriptor == "" || members[i].Descriptor(cp) == descriptor {
			return &members[i]
		}
	}
	return nil
}

func (cf *ClassFile) Attribute(name string) *AttributeInfo {
	for i := range cf.Attributes {
		if cf.ConstantPool.Utf8(cf.Attributes[i].NameIndex) == name {
			return &cf.Attributes[i]
		}
	}
	return nil
}

// InnerClasses decodes the InnerClasses attribute, or returns nil when the
// class has none.
func (cf *ClassFile) InnerClasses() []InnerClass {
	attr := cf.Attribute("InnerClasses")
	if attr == nil || len(attr.Info) < 2 {
		return nil
	}
	info := attr.Info
	count := int(be16(info[0:2]))
	if len(info) < 2+count*8 {
		return nil
	}

	result := make([]InnerClass, 0, count)
	for off := 2; off < 2+count*8; off += 8 {
		entry := InnerClass{
			InnerClass:  cf.ConstantPool.ClassName(be16(info[off : off+2])),
			AccessFlags: AccessFlags(be16(info[off+6 : off+8])),
		}
		if idx := be16(info[off+2 : off+4]); idx != 0 {
			entry.OuterClass = cf.ConstantPool.ClassName(idx)
		}
		if idx := be16(info[off+4 : off+6]); idx != 0 {
			entry.InnerName = cf.ConstantPool.Utf8(idx)
		}
		result = append(result, entry)
	}
	return result
}

func be16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}
