package java

import "testing"

// testScope is a minimal Scope backed by slices, enough to build the
// declaration shapes the codec cares about.
type testScope struct {
	classes   []ClassEntity
	anonymous map[ClassID][]ClassID
	methods   map[ClassID][]MethodEntity
	fields    map[ClassID][]FieldEntity
	supers    map[ClassID][]ClassID
}

func newTestScope() *testScope {
	return &testScope{
		anonymous: make(map[ClassID][]ClassID),
		methods:   make(map[ClassID][]MethodEntity),
		fields:    make(map[ClassID][]FieldEntity),
		supers:    make(map[ClassID][]ClassID),
	}
}

func (s *testScope) add(c ClassEntity) ClassID {
	c.ID = ClassID(len(s.classes) + 1)
	s.classes = append(s.classes, c)
	if c.Kind == ClassKindAnonymous && c.Containing.IsValid() {
		s.anonymous[c.Containing] = append(s.anonymous[c.Containing], c.ID)
	}
	return c.ID
}

func (s *testScope) topLevel(name string) ClassID {
	simple := name
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			simple = name[i+1:]
			break
		}
	}
	return s.add(ClassEntity{SimpleName: simple, QualifiedName: name, Kind: ClassKindTopLevel})
}

func (s *testScope) nested(owner ClassID, name string, static bool) ClassID {
	return s.add(ClassEntity{SimpleName: name, Kind: ClassKindNested, Containing: owner, IsStatic: static})
}

func (s *testScope) anon(owner ClassID) ClassID {
	return s.add(ClassEntity{Kind: ClassKindAnonymous, Containing: owner})
}

func (s *testScope) Class(id ClassID) (ClassEntity, bool) {
	if !id.IsValid() || int(id) > len(s.classes) {
		return ClassEntity{}, false
	}
	return s.classes[id-1], true
}

func (s *testScope) FindTopLevel(name string) (ClassID, bool) {
	for _, c := range s.classes {
		if c.Kind == ClassKindTopLevel && c.QualifiedName == name {
			return c.ID, true
		}
	}
	return NoClassID, false
}

func (s *testScope) FindNamedNested(owner ClassID, name string) (ClassID, bool) {
	for _, c := range s.classes {
		if c.Kind == ClassKindNested && c.Containing == owner && c.SimpleName == name {
			return c.ID, true
		}
	}
	return NoClassID, false
}

func (s *testScope) AnonymousChildren(owner ClassID) []ClassID {
	return s.anonymous[owner]
}

func (s *testScope) Methods(owner ClassID) []MethodEntity { return s.methods[owner] }
func (s *testScope) Fields(owner ClassID) []FieldEntity   { return s.fields[owner] }
func (s *testScope) Supertypes(id ClassID) []ClassID      { return s.supers[id] }

func TestTestScopeHandles(t *testing.T) {
	s := newTestScope()
	id := s.topLevel("com.example.Foo")
	c, ok := s.Class(id)
	if !ok {
		t.Fatal("expected class")
	}
	if c.SimpleName != "Foo" {
		t.Errorf("SimpleName = %q, want %q", c.SimpleName, "Foo")
	}
	if _, ok := s.Class(NoClassID); ok {
		t.Error("NoClassID should not resolve")
	}
}
