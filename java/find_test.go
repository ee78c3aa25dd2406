package java

import "testing"

func TestFindClass(t *testing.T) {
	s := newTestScope()
	foo := s.topLevel("com.example.Foo")
	bar := s.nested(foo, "Bar", true)
	a := s.anon(foo)
	b := s.anon(foo)
	c := s.anon(foo)
	inB := s.anon(b)
	named := s.nested(b, "Helper", false)
	codec := NewCodec(s)

	tests := []struct {
		name string
		in   string
		want ClassID
	}{
		{"top level", "com.example.Foo", foo},
		{"named nested", "com.example.Foo$Bar", bar},
		{"first anonymous", "com.example.Foo$1", a},
		{"second anonymous", "com.example.Foo$2", b},
		{"third anonymous", "com.example.Foo$3", c},
		{"anonymous in anonymous", "com.example.Foo$2$1", inB},
		{"named in anonymous", "com.example.Foo$2$Helper", named},
		{"internal form", "com/example/Foo$2$Helper", named},
		{"leading zero", "com.example.Foo$01", a},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := codec.FindClass(tt.in)
			if !ok {
				t.Fatalf("FindClass(%q) found nothing", tt.in)
			}
			if got != tt.want {
				t.Errorf("FindClass(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindClassMisses(t *testing.T) {
	s := newTestScope()
	foo := s.topLevel("com.example.Foo")
	s.nested(foo, "Bar", true)
	s.anon(foo)
	codec := NewCodec(s)

	tests := []struct {
		name string
		in   string
	}{
		{"unknown top level", "com.example.Missing"},
		{"unknown top level with inner", "com.example.Missing$Bar"},
		{"unknown named nested", "com.example.Foo$Baz"},
		{"nested of wrong class", "com.example.Foo$Bar$Bar"},
		{"anonymous out of range", "com.example.Foo$2"},
		{"anonymous zero", "com.example.Foo$0"},
		{"huge index", "com.example.Foo$99999999999999999999"},
		{"empty segment", "com.example.Foo$"},
		{"double dollar", "com.example.Foo$$Bar"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := codec.FindClass(tt.in); ok {
				t.Errorf("FindClass(%q) = %d, want no match", tt.in, got)
			}
		})
	}
}

func TestFindClassNumericNameIsAnonymousIndex(t *testing.T) {
	s := newTestScope()
	foo := s.topLevel("Foo")
	numeric := s.nested(foo, "1", true)
	anon := s.anon(foo)
	codec := NewCodec(s)

	got, ok := codec.FindClass("Foo$1")
	if !ok {
		t.Fatal("FindClass(Foo$1) found nothing")
	}
	if got != anon {
		t.Errorf("FindClass(Foo$1) = %d, want anonymous class %d", got, anon)
	}
	if got == numeric {
		t.Error("digit-only segment resolved as a member class name")
	}
}

func TestFindMembers(t *testing.T) {
	s := newTestScope()
	str := s.topLevel("java.lang.String")
	outer := s.topLevel("Outer")
	inner := s.nested(outer, "Inner", false)
	s.methods[outer] = []MethodEntity{
		{Owner: outer, Name: "get", ReturnType: PrimitiveType(Int)},
		{Owner: outer, Name: "get", Parameters: []Parameter{{Name: "key", Type: ClassType(str, "String")}}, ReturnType: PrimitiveType(Int)},
		{Owner: outer, Name: "broken", Parameters: []Parameter{{Name: "x", Type: ClassType(NoClassID, "Nope")}}},
	}
	s.methods[inner] = []MethodEntity{
		{Owner: inner, Name: "Inner", IsConstructor: true},
	}
	s.fields[outer] = []FieldEntity{
		{Owner: outer, Name: "name", Type: ClassType(str, "String")},
	}
	codec := NewCodec(s)

	t.Run("overload by descriptor", func(t *testing.T) {
		m, ok := codec.FindMethod(outer, "get", "(Ljava/lang/String;)I")
		if !ok {
			t.Fatal("FindMethod found nothing")
		}
		if len(m.Parameters) != 1 || m.Parameters[0].Name != "key" {
			t.Errorf("FindMethod returned %+v", m)
		}
	})

	t.Run("constructor with synthetic parameter", func(t *testing.T) {
		if _, ok := codec.FindMethod(inner, "<init>", "(LOuter;)V"); !ok {
			t.Error("FindMethod(<init>(LOuter;)V) found nothing")
		}
		if _, ok := codec.FindMethod(inner, "<init>", "()V"); ok {
			t.Error("source signature must not match the compiled descriptor")
		}
	})

	t.Run("unencodable methods never match", func(t *testing.T) {
		if _, ok := codec.FindMethod(outer, "broken", "(LNope;)V"); ok {
			t.Error("FindMethod matched a method with an unresolved parameter")
		}
	})

	t.Run("field", func(t *testing.T) {
		if _, ok := codec.FindField(outer, "name", ""); !ok {
			t.Error("FindField by name found nothing")
		}
		if _, ok := codec.FindField(outer, "name", "Ljava/lang/String;"); !ok {
			t.Error("FindField by name and descriptor found nothing")
		}
		if _, ok := codec.FindField(outer, "name", "I"); ok {
			t.Error("FindField matched a wrong descriptor")
		}
	})
}
