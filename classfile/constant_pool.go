package classfile

type ConstantTag uint8

const (
	ConstantUtf8               ConstantTag = 1
	ConstantInteger            ConstantTag = 3
	ConstantFloat              ConstantTag = 4
	ConstantLong               ConstantTag = 5
	ConstantDouble             ConstantTag = 6
	ConstantClass              ConstantTag = 7
	ConstantString             ConstantTag = 8
	ConstantFieldref           ConstantTag = 9
	ConstantMethodref          ConstantTag = 10
	ConstantInterfaceMethodref ConstantTag = 11
	ConstantNameAndType        ConstantTag = 12
	ConstantMethodHandle       ConstantTag = 15
	ConstantMethodType         ConstantTag = 16
	ConstantDynamic            ConstantTag = 17
	ConstantInvokeDynamic      ConstantTag = 18
	ConstantModule             ConstantTag = 19
	ConstantPackage            ConstantTag = 20
)

// Constant is a constant pool entry. Only the fields relevant to its tag
// are set: Utf8 for CONSTANT_Utf8, Ref for entries that point at a single
// other entry, and Ref plus Ref2 for entries that point at two.
type Constant struct {
	Tag  ConstantTag
	Utf8 string
	Ref  uint16
	Ref2 uint16
	Raw  uint64
}

// ConstantPool is indexed from 1 like in the class file; slot 0 and the
// second slot of long and double entries are nil.
type ConstantPool []*Constant

func (cp ConstantPool) get(index uint16, tag ConstantTag) *Constant {
	if int(index) >= len(cp) {
		return nil
	}
	c := cp[index]
	if c == nil || c.Tag != tag {
		return nil
	}
	return c
}

func (cp ConstantPool) Utf8(index uint16) string {
	if c := cp.get(index, ConstantUtf8); c != nil {
		return c.Utf8
	}
	return ""
}

func (cp ConstantPool) ClassName(index uint16) string {
	if c := cp.get(index, ConstantClass); c != nil {
		return cp.Utf8(c.Ref)
	}
	return ""
}

func (cp ConstantPool) NameAndType(index uint16) (name, descriptor string) {
	if c := cp.get(index, ConstantNameAndType); c != nil {
		return cp.Utf8(c.Ref), cp.Utf8(c.Ref2)
	}
	return "", ""
}
