package source

import (
	"sort"

	"github.com/dhamidi/scribe/java"
)

type DeclarationKind uint8

const (
	DeclarationClass DeclarationKind = iota + 1
	DeclarationMethod
	DeclarationField
)

// Declaration is a class or member declared in a source file, located by
// the span of its name.
type Declaration struct {
	Kind   DeclarationKind
	Class  java.ClassID
	Method java.MethodEntity
	Field  java.FieldEntity
	Span   Span
}

type classRecord struct {
	entity   java.ClassEntity
	file     string
	span     Span
	external bool
}

// Universe is an immutable snapshot of the classes declared in a set of
// source files, plus the external classes they refer to. It implements
// java.Scope, java.MemberScope and java.SuperScope.
type Universe struct {
	classes   []classRecord
	topLevel  map[string]java.ClassID
	nested    map[java.ClassID]map[string]java.ClassID
	anonymous map[java.ClassID][]java.ClassID
	methods   map[java.ClassID][]java.MethodEntity
	fields    map[java.ClassID][]java.FieldEntity
	supers    map[java.ClassID][]java.ClassID
	decls     map[string][]Declaration
}

var (
	_ java.Scope       = (*Universe)(nil)
	_ java.MemberScope = (*Universe)(nil)
	_ java.SuperScope  = (*Universe)(nil)
)

func newUniverse() *Universe {
	return &Universe{
		classes:   make([]classRecord, 1),
		topLevel:  map[string]java.ClassID{},
		nested:    map[java.ClassID]map[string]java.ClassID{},
		anonymous: map[java.ClassID][]java.ClassID{},
		methods:   map[java.ClassID][]java.MethodEntity{},
		fields:    map[java.ClassID][]java.FieldEntity{},
		supers:    map[java.ClassID][]java.ClassID{},
		decls:     map[string][]Declaration{},
	}
}

func (u *Universe) add(rec classRecord) java.ClassID {
	id := java.ClassID(len(u.classes))
	rec.entity.ID = id
	u.classes = append(u.classes, rec)

	e := rec.entity
	switch e.Kind {
	case java.ClassKindTopLevel:
		u.topLevel[e.QualifiedName] = id
	case java.ClassKindNested:
		if u.nested[e.Containing] == nil {
			u.nested[e.Containing] = map[string]java.ClassID{}
		}
		u.nested[e.Containing][e.SimpleName] = id
	case java.ClassKindAnonymous:
		u.anonymous[e.Containing] = append(u.anonymous[e.Containing], id)
	}
	return id
}

func (u *Universe) record(id java.ClassID) (classRecord, bool) {
	if !id.IsValid() || int(id) >= len(u.classes) {
		return classRecord{}, false
	}
	return u.classes[id], true
}

func (u *Universe) Class(id java.ClassID) (java.ClassEntity, bool) {
	rec, ok := u.record(id)
	return rec.entity, ok
}

func (u *Universe) FindTopLevel(qualifiedName string) (java.ClassID, bool) {
	id, ok := u.topLevel[qualifiedName]
	return id, ok
}

func (u *Universe) FindNamedNested(owner java.ClassID, simpleName string) (java.ClassID, bool) {
	id, ok := u.nested[owner][simpleName]
	return id, ok
}

func (u *Universe) AnonymousChildren(owner java.ClassID) []java.ClassID {
	return u.anonymous[owner]
}

func (u *Universe) Methods(owner java.ClassID) []java.MethodEntity {
	return u.methods[owner]
}

func (u *Universe) Fields(owner java.ClassID) []java.FieldEntity {
	return u.fields[owner]
}

func (u *Universe) Supertypes(id java.ClassID) []java.ClassID {
	return u.supers[id]
}

// IsExternal reports whether the class was only referenced, not declared,
// in the scanned sources.
func (u *Universe) IsExternal(id java.ClassID) bool {
	rec, ok := u.record(id)
	return ok && rec.external
}

// Location returns the file and name span of a declared class.
func (u *Universe) Location(id java.ClassID) (string, Span, bool) {
	rec, ok := u.record(id)
	if !ok || rec.external {
		return "", Span{}, false
	}
	return rec.file, rec.span, true
}

// Classes returns every declared class in declaration order.
func (u *Universe) Classes() []java.ClassID {
	var ids []java.ClassID
	for i := 1; i < len(u.classes); i++ {
		if !u.classes[i].external {
			ids = append(ids, java.ClassID(i))
		}
	}
	return ids
}

func (u *Universe) Files() []string {
	files := make([]string, 0, len(u.decls))
	for f := range u.decls {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Declarations returns the declarations of a file in source order.
func (u *Universe) Declarations(file string) []Declaration {
	return u.decls[file]
}

// DeclarationAt finds the declaration whose name covers the 1-based line
// and column.
func (u *Universe) DeclarationAt(file string, line, column int) (Declaration, bool) {
	for _, d := range u.decls[file] {
		if d.Span.Contains(line, column) {
			return d, true
		}
	}
	return Declaration{}, false
}
