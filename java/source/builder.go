package source

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/scribe/java"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("scribe.source")

// Bounds of type variables are followed at most this deep, which breaks
// cycles such as <A extends B, B extends A>.
const maxBoundDepth = 8

// Builder collects parsed files and known external class names and turns
// them into a Universe.
type Builder struct {
	files     []*File
	externals []string
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) AddSource(path string, src []byte) error {
	f, err := Parse(path, src)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	b.files = append(b.files, f)
	return nil
}

// AddParsed adds a file parsed earlier, so that hosts can rebuild a
// universe without parsing unchanged files again.
func (b *Builder) AddParsed(f *File) {
	b.files = append(b.files, f)
}

func (b *Builder) AddFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}
	return b.AddSource(path, src)
}

// AddExternal registers classes known from compiled code by their binary
// names, e.g. "java.util.Map$Entry", so that on-demand imports can find
// them. Anonymous and local classes are ignored.
func (b *Builder) AddExternal(binaryNames ...string) {
	b.externals = append(b.externals, binaryNames...)
}

// Load parses every path and builds a universe. Files that cannot be read
// or parsed are logged and skipped; their errors are returned joined.
func Load(paths []string, externals []string) (*Universe, error) {
	b := NewBuilder()
	var errs []error
	for _, path := range paths {
		if err := b.AddFile(path); err != nil {
			log.Warningf("skipping %s: %s", path, err)
			errs = append(errs, err)
		}
	}
	b.AddExternal(externals...)
	return b.Build(), errors.Join(errs...)
}

func (b *Builder) Build() *Universe {
	r := &resolver{
		u:   newUniverse(),
		ids: map[*ClassDecl]java.ClassID{},
	}

	for _, f := range b.files {
		r.u.decls[f.Path] = nil
		for _, c := range f.Types {
			r.register(c, java.NoClassID)
		}
	}
	for _, name := range b.externals {
		r.registerExternal(name)
	}

	// Resolving a name may add external classes that other files see
	// through on-demand imports. Resolve until no class is added, then
	// record members against the final set.
	for {
		n := len(r.u.classes)
		for _, f := range b.files {
			for _, c := range f.Types {
				r.resolveSupertypes(c)
			}
		}
		for _, f := range b.files {
			for _, c := range f.Types {
				r.resolveTypes(c)
			}
		}
		if len(r.u.classes) == n {
			break
		}
	}
	for _, f := range b.files {
		for _, c := range f.Types {
			r.resolveMembers(c)
		}
	}

	for _, decls := range r.u.decls {
		sort.SliceStable(decls, func(i, j int) bool {
			return decls[i].Span.Start.Offset < decls[j].Span.Start.Offset
		})
	}
	log.Debugf("built universe with %d classes from %d files", len(r.u.classes)-1, len(b.files))
	return r.u
}

type resolver struct {
	u   *Universe
	ids map[*ClassDecl]java.ClassID
}

func (r *resolver) register(c *ClassDecl, parent java.ClassID) {
	e := java.ClassEntity{
		SimpleName:  c.Name,
		IsStatic:    c.Static,
		IsEnum:      c.Kind == DeclEnum,
		IsInterface: c.Kind == DeclInterface || c.Kind == DeclAnnotation,
	}
	switch {
	case !parent.IsValid():
		e.Kind = java.ClassKindTopLevel
		e.QualifiedName = qualify(c.File.Package, c.Name)
		if prev, ok := r.u.topLevel[e.QualifiedName]; ok {
			file, _, _ := r.u.Location(prev)
			log.Warningf("%s: class %s is also declared in %s", c.File.Path, e.QualifiedName, file)
		}
	case c.Anon || c.Local:
		e.Kind = java.ClassKindAnonymous
		e.Containing = parent
	default:
		e.Kind = java.ClassKindNested
		e.Containing = parent
	}

	id := r.u.add(classRecord{entity: e, file: c.File.Path, span: c.Span})
	r.ids[c] = id

	for _, m := range c.Members {
		r.register(m, id)
	}
	for _, inner := range c.Inner {
		r.register(inner, id)
	}
}

func (r *resolver) registerExternal(binaryName string) {
	binaryName = strings.ReplaceAll(binaryName, "/", ".")
	parts := strings.Split(binaryName, "$")
	for _, seg := range parts[1:] {
		if seg == "" || isDigit(seg[0]) {
			return
		}
	}
	id, ok := r.u.topLevel[parts[0]]
	if !ok {
		id = r.addExternalTop(parts[0])
	}
	r.walkNested(id, parts[1:])
}

func (r *resolver) addExternalTop(qualifiedName string) java.ClassID {
	simple := qualifiedName[strings.LastIndexByte(qualifiedName, '.')+1:]
	return r.u.add(classRecord{
		entity: java.ClassEntity{
			SimpleName:    simple,
			QualifiedName: qualifiedName,
			Kind:          java.ClassKindTopLevel,
		},
		external: true,
	})
}

func (r *resolver) addExternalNested(owner java.ClassID, name string) java.ClassID {
	return r.u.add(classRecord{
		entity: java.ClassEntity{
			SimpleName: name,
			Kind:       java.ClassKindNested,
			Containing: owner,
			IsStatic:   true,
		},
		external: true,
	})
}

func (r *resolver) resolveSupertypes(c *ClassDecl) {
	id := r.ids[c]
	delete(r.u.supers, id)
	ctx, typeParams := c, []TypeParam(nil)
	if c.Anon {
		ctx, typeParams = c.Parent, c.ScopeTypeParams
	}
	for _, s := range c.Supers {
		t := r.resolveType(ctx, typeParams, s, 0)
		if t.Kind == java.TypeKindClass && t.Class.IsValid() {
			r.u.supers[id] = append(r.u.supers[id], t.Class)
		}
	}
	for _, m := range c.Members {
		r.resolveSupertypes(m)
	}
	for _, inner := range c.Inner {
		r.resolveSupertypes(inner)
	}
}

// resolveTypes resolves the member types of c and its inner classes
// without recording anything but the external classes they name.
func (r *resolver) resolveTypes(c *ClassDecl) {
	for _, m := range c.Methods {
		for _, p := range m.Params {
			r.resolveType(c, m.TypeParams, p.Type, 0)
		}
		if !m.Constructor {
			r.resolveType(c, m.TypeParams, m.Return, 0)
		}
	}
	for _, f := range c.Fields {
		r.resolveType(c, nil, f.Type, 0)
	}
	for _, m := range c.Members {
		r.resolveTypes(m)
	}
	for _, inner := range c.Inner {
		r.resolveTypes(inner)
	}
}

func (r *resolver) resolveMembers(c *ClassDecl) {
	id := r.ids[c]
	path := c.File.Path
	r.u.decls[path] = append(r.u.decls[path], Declaration{Kind: DeclarationClass, Class: id, Span: c.Span})

	for _, m := range c.Methods {
		me := java.MethodEntity{
			Owner:         id,
			Name:          m.Name,
			IsConstructor: m.Constructor,
			IsVarArgs:     m.VarArgs,
		}
		switch {
		case m.Static:
			me.Enclosing = java.EnclosingStatic
		case m.Constructor && c.Kind == DeclEnum:
			me.Enclosing = java.EnclosingEnumConstructor
		}
		for _, p := range m.Params {
			me.Parameters = append(me.Parameters, java.Parameter{
				Name: p.Name,
				Type: r.resolveType(c, m.TypeParams, p.Type, 0),
			})
		}
		if !m.Constructor {
			me.ReturnType = r.resolveType(c, m.TypeParams, m.Return, 0)
		}
		r.u.methods[id] = append(r.u.methods[id], me)
		r.u.decls[path] = append(r.u.decls[path], Declaration{Kind: DeclarationMethod, Class: id, Method: me, Span: m.Span})
	}

	for _, f := range c.Fields {
		fe := java.FieldEntity{
			Owner:    id,
			Name:     f.Name,
			Type:     r.resolveType(c, nil, f.Type, 0),
			IsStatic: f.Static,
		}
		r.u.fields[id] = append(r.u.fields[id], fe)
		r.u.decls[path] = append(r.u.decls[path], Declaration{Kind: DeclarationField, Class: id, Field: fe, Span: f.Span})
	}

	for _, m := range c.Members {
		r.resolveMembers(m)
	}
	for _, inner := range c.Inner {
		r.resolveMembers(inner)
	}
}

func (r *resolver) resolveType(ctx *ClassDecl, typeParams []TypeParam, t TypeExpr, depth int) java.TypeRef {
	if t.Primitive {
		p, _ := java.PrimitiveByName(t.Name)
		return java.ArrayOf(java.PrimitiveType(p), t.Dims)
	}

	if !strings.Contains(t.Name, ".") {
		if tp, ok := lookupTypeParam(ctx, typeParams, t.Name); ok {
			var bound *java.TypeRef
			if len(tp.Bounds) > 0 && depth < maxBoundDepth {
				b := r.resolveType(ctx, typeParams, tp.Bounds[0], depth+1)
				bound = &b
			}
			return java.ArrayOf(java.TypeVariable(t.Name, bound), t.Dims)
		}
	}

	id := r.resolveClassName(ctx, t.Name)
	if !id.IsValid() {
		log.Debugf("%s: unresolved type %s", t.Span.Start, t.Name)
	}
	return java.ArrayOf(java.ClassType(id, t.Name), t.Dims)
}

func lookupTypeParam(ctx *ClassDecl, typeParams []TypeParam, name string) (TypeParam, bool) {
	for _, tp := range typeParams {
		if tp.Name == name {
			return tp, true
		}
	}
	for c := ctx; c != nil; c = c.Parent {
		for _, list := range [][]TypeParam{c.TypeParams, c.ScopeTypeParams} {
			for _, tp := range list {
				if tp.Name == name {
					return tp, true
				}
			}
		}
	}
	return TypeParam{}, false
}

func (r *resolver) resolveClassName(ctx *ClassDecl, name string) java.ClassID {
	parts := strings.Split(name, ".")
	if id := r.resolveSimple(ctx, parts[0]); id.IsValid() {
		return r.walkNested(id, parts[1:])
	}
	if len(parts) > 1 && !startsUpper(parts[0]) {
		return r.resolveQualified(name, true)
	}
	return java.NoClassID
}

// resolveSimple looks a simple type name up the way the compiler does:
// enclosing classes and their inherited members, local classes in scope,
// the file, single-type imports, the package, on-demand imports and
// finally java.lang.
func (r *resolver) resolveSimple(ctx *ClassDecl, name string) java.ClassID {
	for c := ctx; c != nil; c = c.Parent {
		if !c.Anon && c.Name == name {
			return r.ids[c]
		}
		if m := c.member(name); m != nil {
			return r.ids[m]
		}
		if id := r.inheritedMember(r.ids[c], name); id.IsValid() {
			return id
		}
		for i := len(c.Visible) - 1; i >= 0; i-- {
			if c.Visible[i].Name == name {
				return r.ids[c.Visible[i]]
			}
		}
	}

	f := ctx.File
	for _, t := range f.Types {
		if t.Name == name {
			return r.ids[t]
		}
	}
	for _, imp := range f.Imports {
		if !imp.Static && !imp.OnDemand && lastSegment(imp.Name) == name {
			return r.resolveQualified(imp.Name, true)
		}
	}
	if id, ok := r.u.topLevel[qualify(f.Package, name)]; ok {
		return id
	}
	for _, imp := range f.Imports {
		if imp.Static || !imp.OnDemand {
			continue
		}
		if id, ok := r.u.topLevel[imp.Name+"."+name]; ok {
			return id
		}
		if wellKnown[imp.Name+"."+name] {
			return r.resolveQualified(imp.Name+"."+name, true)
		}
		if owner := r.resolveQualified(imp.Name, false); owner.IsValid() {
			if id, ok := r.u.FindNamedNested(owner, name); ok {
				return id
			}
		}
	}
	if javaLang[name] {
		return r.resolveQualified("java.lang."+name, true)
	}
	return java.NoClassID
}

func (r *resolver) inheritedMember(id java.ClassID, name string) java.ClassID {
	seen := map[java.ClassID]bool{id: true}
	queue := append([]java.ClassID(nil), r.u.supers[id]...)
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if seen[s] {
			continue
		}
		seen[s] = true
		if found, ok := r.u.FindNamedNested(s, name); ok {
			return found
		}
		queue = append(queue, r.u.supers[s]...)
	}
	return java.NoClassID
}

// resolveQualified resolves a dotted name against the known top-level
// classes. With allowExternal, a name that matches nothing becomes an
// external class whose package is everything before the first
// capitalised segment.
func (r *resolver) resolveQualified(name string, allowExternal bool) java.ClassID {
	parts := strings.Split(name, ".")
	for i := len(parts); i >= 1; i-- {
		if id, ok := r.u.topLevel[strings.Join(parts[:i], ".")]; ok {
			return r.walkNested(id, parts[i:])
		}
	}
	if !allowExternal {
		return java.NoClassID
	}

	k := len(parts) - 1
	for i, part := range parts {
		if startsUpper(part) {
			k = i
			break
		}
	}
	qn := strings.Join(parts[:k+1], ".")
	log.Debugf("treating %s as external class", qn)
	return r.walkNested(r.addExternalTop(qn), parts[k+1:])
}

// walkNested follows member class names from id. External classes grow
// the members they are asked for; declared classes must have them.
func (r *resolver) walkNested(id java.ClassID, names []string) java.ClassID {
	for _, name := range names {
		next, ok := r.u.FindNamedNested(id, name)
		if !ok {
			if !r.u.IsExternal(id) {
				return java.NoClassID
			}
			next = r.addExternalNested(id, name)
		}
		id = next
	}
	return id
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

func lastSegment(name string) string {
	return name[strings.LastIndexByte(name, '.')+1:]
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
