package classpath

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/scribe/classfile"
	"github.com/dhamidi/scribe/java"
)

type FindingKind uint8

const (
	// FindingUnresolvable: the declaration has no byte-code identity.
	FindingUnresolvable FindingKind = iota + 1
	FindingMissingClass
	FindingMissingMethod
	FindingMissingField
	// FindingUndecodable: a compiled inner class name does not decode to
	// a declaration.
	FindingUndecodable
)

func (k FindingKind) String() string {
	switch k {
	case FindingUnresolvable:
		return "unresolvable"
	case FindingMissingClass:
		return "missing class"
	case FindingMissingMethod:
		return "missing method"
	case FindingMissingField:
		return "missing field"
	case FindingUndecodable:
		return "undecodable"
	}
	return "unknown"
}

type Finding struct {
	Kind FindingKind
	// Class is the internal name, or the source name when the class
	// could not be encoded.
	Class  string
	Member string
	Err    error
}

func (f Finding) String() string {
	var sb strings.Builder
	sb.WriteString(f.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(f.Class)
	if f.Member != "" {
		sb.WriteString(".")
		sb.WriteString(f.Member)
	}
	if f.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(f.Err.Error())
	}
	return sb.String()
}

type Report struct {
	Classes  int
	Methods  int
	Fields   int
	Findings []Finding
}

func (r *Report) add(f Finding) {
	log.Infof("%s", f)
	r.Findings = append(r.Findings, f)
}

// Verify encodes every class in ids together with its members and checks
// that the compiled classes carry the same names and descriptors. Members
// are only checked when the codec's scope enumerates them.
func Verify(codec *java.Codec, loader Loader, ids []java.ClassID) (*Report, error) {
	members, _ := codec.Scope().(java.MemberScope)
	report := &Report{}

	for _, id := range ids {
		name, err := codec.InternalName(id)
		if err != nil {
			report.add(Finding{Kind: FindingUnresolvable, Class: sourceName(codec, id), Err: err})
			continue
		}
		report.Classes++

		data, err := loader.LoadCompiledBytes(name)
		if errors.Is(err, ErrNotFound) {
			report.add(Finding{Kind: FindingMissingClass, Class: name})
			continue
		}
		if err != nil {
			return report, err
		}
		cf, err := classfile.ParseBytes(data)
		if err != nil {
			return report, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		if got := cf.ClassName(); got != name {
			report.add(Finding{Kind: FindingMissingClass, Class: name, Err: fmt.Errorf("class file declares %s", got)})
			continue
		}

		if members != nil {
			verifyMembers(report, codec, members, id, name, cf)
		}
		verifyInnerClasses(report, codec, name, cf)
	}
	return report, nil
}

func verifyMembers(report *Report, codec *java.Codec, members java.MemberScope, id java.ClassID, className string, cf *classfile.ClassFile) {
	for _, m := range members.Methods(id) {
		report.Methods++
		desc, err := codec.MethodDescriptor(m)
		if err != nil {
			report.add(Finding{Kind: FindingUnresolvable, Class: className, Member: m.Name, Err: err})
			continue
		}
		name := java.InternalMethodName(m)
		if cf.Method(name, desc) == nil {
			report.add(Finding{Kind: FindingMissingMethod, Class: className, Member: name + desc})
		}
	}

	for _, f := range members.Fields(id) {
		report.Fields++
		desc, err := codec.FieldDescriptor(f)
		if err != nil {
			report.add(Finding{Kind: FindingUnresolvable, Class: className, Member: f.Name, Err: err})
			continue
		}
		if cf.Field(f.Name, desc) == nil {
			report.add(Finding{Kind: FindingMissingField, Class: className, Member: f.Name + ":" + desc})
		}
	}
}

// verifyInnerClasses decodes the direct inner classes the compiler
// recorded for the class.
func verifyInnerClasses(report *Report, codec *java.Codec, className string, cf *classfile.ClassFile) {
	prefix := className + "$"
	for _, ic := range cf.InnerClasses() {
		rest, ok := strings.CutPrefix(ic.InnerClass, prefix)
		if !ok || rest == "" || strings.Contains(rest, "$") {
			continue
		}
		if ic.AccessFlags.IsSynthetic() {
			continue
		}
		if _, ok := codec.FindClass(ic.InnerClass); !ok {
			report.add(Finding{Kind: FindingUndecodable, Class: ic.InnerClass})
		}
	}
}

func sourceName(codec *java.Codec, id java.ClassID) string {
	e, ok := codec.Scope().Class(id)
	if !ok {
		return fmt.Sprintf("#%d", id)
	}
	if e.QualifiedName != "" {
		return e.QualifiedName
	}
	if e.SimpleName != "" {
		return e.SimpleName
	}
	return fmt.Sprintf("<anonymous #%d>", id)
}
