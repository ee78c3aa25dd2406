package classfile

import "testing"

func TestParseFieldDescriptor(t *testing.T) {
	tests := []struct {
		desc string
		want string
		wide bool
	}{
		{"I", "int", false},
		{"J", "long", true},
		{"[J", "long[]", false},
		{"[[Ljava/lang/String;", "java.lang.String[][]", false},
		{"Lcom/example/Outer$Inner;", "com.example.Outer$Inner", false},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ft, err := ParseFieldDescriptor(tt.desc)
			if err != nil {
				t.Fatalf("ParseFieldDescriptor() error = %v", err)
			}
			if got := ft.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if ft.IsWide() != tt.wide {
				t.Errorf("IsWide() = %v, want %v", ft.IsWide(), tt.wide)
			}
		})
	}

	for _, bad := range []string{"", "V", "[", "L;", "Ljava/lang/String", "II", "Q"} {
		if _, err := ParseFieldDescriptor(bad); err == nil {
			t.Errorf("ParseFieldDescriptor(%q) succeeded, want error", bad)
		}
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	tests := []struct {
		desc   string
		want   string
		params int
	}{
		{"()V", "() void", 0},
		{"(Ljava/lang/String;I)V", "(java.lang.String, int) void", 2},
		{"(Lcom/example/Outer;)V", "(com.example.Outer) void", 1},
		{"([IJ)[Ljava/lang/Object;", "(int[], long) java.lang.Object[]", 2},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			md, err := ParseMethodDescriptor(tt.desc)
			if err != nil {
				t.Fatalf("ParseMethodDescriptor() error = %v", err)
			}
			if len(md.Parameters) != tt.params {
				t.Errorf("len(Parameters) = %d, want %d", len(md.Parameters), tt.params)
			}
			if got := md.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "V", "(", "(I", "()", "()VV", "(V)V", "(X)V"} {
		if _, err := ParseMethodDescriptor(bad); err == nil {
			t.Errorf("ParseMethodDescriptor(%q) succeeded, want error", bad)
		}
	}
}
