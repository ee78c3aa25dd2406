// Package classfiletest assembles minimal class files for tests.
package classfiletest

import (
	"bytes"
	"encoding/binary"
)

type member struct {
	flags      uint16
	name, desc uint16
}

type innerClass struct {
	inner, outer, name uint16
	flags              uint16
}

// Builder produces a class file with a constant pool, members and an
// optional InnerClasses attribute. Method bodies are never emitted.
type Builder struct {
	pool    bytes.Buffer
	count   uint16
	utf8    map[string]uint16
	classes map[string]uint16

	flags      uint16
	this       uint16
	super      uint16
	interfaces []uint16
	fields     []member
	methods    []member
	inners     []innerClass
}

func New(internalName string) *Builder {
	b := &Builder{
		count:   1,
		utf8:    map[string]uint16{},
		classes: map[string]uint16{},
		flags:   0x0021,
	}
	b.this = b.Class(internalName)
	b.super = b.Class("java/lang/Object")
	return b
}

func (b *Builder) Utf8(s string) uint16 {
	if idx, ok := b.utf8[s]; ok {
		return idx
	}
	b.pool.WriteByte(1)
	binary.Write(&b.pool, binary.BigEndian, uint16(len(s)))
	b.pool.WriteString(s)
	idx := b.count
	b.count++
	b.utf8[s] = idx
	return idx
}

func (b *Builder) Class(internalName string) uint16 {
	if idx, ok := b.classes[internalName]; ok {
		return idx
	}
	name := b.Utf8(internalName)
	b.pool.WriteByte(7)
	binary.Write(&b.pool, binary.BigEndian, name)
	idx := b.count
	b.count++
	b.classes[internalName] = idx
	return idx
}

// Long adds a CONSTANT_Long entry, which occupies two pool slots.
func (b *Builder) Long(v int64) uint16 {
	b.pool.WriteByte(5)
	binary.Write(&b.pool, binary.BigEndian, v)
	idx := b.count
	b.count += 2
	return idx
}

func (b *Builder) Flags(flags uint16) *Builder {
	b.flags = flags
	return b
}

func (b *Builder) Super(internalName string) *Builder {
	b.super = b.Class(internalName)
	return b
}

func (b *Builder) Implements(internalName string) *Builder {
	b.interfaces = append(b.interfaces, b.Class(internalName))
	return b
}

func (b *Builder) Field(flags uint16, name, desc string) *Builder {
	b.fields = append(b.fields, member{flags, b.Utf8(name), b.Utf8(desc)})
	return b
}

func (b *Builder) Method(flags uint16, name, desc string) *Builder {
	b.methods = append(b.methods, member{flags, b.Utf8(name), b.Utf8(desc)})
	return b
}

// InnerClass adds an InnerClasses row. Empty outer or name are written
// as index 0.
func (b *Builder) InnerClass(inner, outer, name string, flags uint16) *Builder {
	ic := innerClass{inner: b.Class(inner), flags: flags}
	if outer != "" {
		ic.outer = b.Class(outer)
	}
	if name != "" {
		ic.name = b.Utf8(name)
	}
	b.inners = append(b.inners, ic)
	return b
}

func (b *Builder) Bytes() []byte {
	var attrName uint16
	if len(b.inners) > 0 {
		attrName = b.Utf8("InnerClasses")
	}

	var out bytes.Buffer
	w := func(v any) { binary.Write(&out, binary.BigEndian, v) }

	w(uint32(0xCAFEBABE))
	w(uint16(0))
	w(uint16(61))
	w(b.count)
	out.Write(b.pool.Bytes())
	w(b.flags)
	w(b.this)
	w(b.super)
	w(uint16(len(b.interfaces)))
	for _, i := range b.interfaces {
		w(i)
	}
	for _, members := range [][]member{b.fields, b.methods} {
		w(uint16(len(members)))
		for _, m := range members {
			w(m.flags)
			w(m.name)
			w(m.desc)
			w(uint16(0))
		}
	}

	if len(b.inners) == 0 {
		w(uint16(0))
		return out.Bytes()
	}
	w(uint16(1))
	w(attrName)
	w(uint32(2 + 8*len(b.inners)))
	w(uint16(len(b.inners)))
	for _, ic := range b.inners {
		w(ic.inner)
		w(ic.outer)
		w(ic.name)
		w(ic.flags)
	}
	return out.Bytes()
}
