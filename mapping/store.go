package mapping

import (
	"slices"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("scribe.mapping")

// Store is an in-memory mapping container. Declarations are turned into
// keys with a codec, so a store stays valid across universe rebuilds as
// long as the byte-code identities do not change.
//
// Lookups return copies. All changes go through the Set methods, which
// mark the store as modified.
type Store struct {
	mu       sync.RWMutex
	classes  map[string]*ClassData
	modified bool
}

func New() *Store {
	return &Store{classes: map[string]*ClassData{}}
}

func (s *Store) Modified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// ClearModified resets the modified flag, typically after the host has
// persisted the store.
func (s *Store) ClearModified() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modified = false
}

// ClassNames lists the internal names of all mapped classes, sorted.
func (s *Store) ClassNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.classes))
	for name := range s.classes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func methodKey(name, descriptor string) string {
	return name + descriptor
}

func (s *Store) Class(internalName string) (ClassData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.classes[internalName]
	if !ok {
		return ClassData{}, false
	}
	return c.clone(), true
}

func (s *Store) Method(owner, name, descriptor string) (MethodData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.classes[owner]
	if !ok {
		return MethodData{}, false
	}
	m, ok := c.methods[methodKey(name, descriptor)]
	if !ok {
		return MethodData{}, false
	}
	return m.clone(), true
}

func (s *Store) Field(owner, name string) (FieldData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.classes[owner]
	if !ok {
		return FieldData{}, false
	}
	f, ok := c.fields[name]
	if !ok {
		return FieldData{}, false
	}
	return f.clone(), true
}

func (s *Store) classLocked(internalName string) *ClassData {
	c, ok := s.classes[internalName]
	if !ok {
		c = newClassData(internalName)
		s.classes[internalName] = c
	}
	return c
}

func (s *Store) methodLocked(owner, name, descriptor string) *MethodData {
	c := s.classLocked(owner)
	key := methodKey(name, descriptor)
	m, ok := c.methods[key]
	if !ok {
		m = &MethodData{Name: name, Descriptor: descriptor}
		c.methods[key] = m
	}
	return m
}

func (s *Store) fieldLocked(owner, name, descriptor string) *FieldData {
	c := s.classLocked(owner)
	f, ok := c.fields[name]
	if !ok {
		f = &FieldData{Name: name, Descriptor: descriptor}
		c.fields[name] = f
	}
	return f
}

func (s *Store) SetClassJavadoc(internalName, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classLocked(internalName).Javadoc = splitLines(text)
	s.modified = true
}

func (s *Store) SetFieldJavadoc(owner, name, descriptor, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fieldLocked(owner, name, descriptor).Javadoc = splitLines(text)
	s.modified = true
}

// SetMethodJavadoc replaces the documentation of a method. Lines starting
// with "@param name" are removed from the method text; their description
// is stored on the parameter whose mapped name is name.
//
// The text is the whole comment, so parameters without an @param line
// lose their documentation. Use SetParameterJavadoc to change a single
// parameter.
func (s *Store) SetMethodJavadoc(owner, name, descriptor, text string) {
	s.setMethodJavadoc(owner, name, descriptor, text, nil)
}

// setMethodJavadoc is SetMethodJavadoc where @param tags may also name
// unmapped parameters by their declared name.
func (s *Store) setMethodJavadoc(owner, name, descriptor, text string, declared []ParameterData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.methodLocked(owner, name, descriptor)
	lines, tags := splitParamTags(splitLines(text))
	m.Javadoc = lines
	for i := range m.Parameters {
		m.Parameters[i].Javadoc = ""
	}
	for _, tag := range tags {
		if p := m.parameterNamed(tag.name, declared); p != nil {
			p.Javadoc = tag.text
		} else {
			log.Debugf("%s.%s%s: no parameter named %s", owner, name, descriptor, tag.name)
		}
	}
	s.modified = true
}

func (s *Store) SetParameterName(owner, name, descriptor string, index int, paramName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methodLocked(owner, name, descriptor).parameter(index).Name = strings.TrimSpace(paramName)
	s.modified = true
}

func (s *Store) SetParameterJavadoc(owner, name, descriptor string, index int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methodLocked(owner, name, descriptor).parameter(index).Javadoc = strings.TrimSpace(text)
	s.modified = true
}

// splitLines turns edited text into javadoc lines. Text that is empty or
// only spaces clears the documentation.
func splitLines(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return commentLines(text)
}

type paramTag struct {
	name, text string
}

func splitParamTags(lines []string) ([]string, []paramTag) {
	var kept []string
	var tags []paramTag
	for _, line := range lines {
		if !strings.HasPrefix(line, "@param") {
			kept = append(kept, line)
			continue
		}
		rest, ok := strings.CutPrefix(line, "@param ")
		if !ok {
			continue
		}
		name, text, _ := strings.Cut(rest, " ")
		if name != "" {
			tags = append(tags, paramTag{name: name, text: text})
		}
	}
	return kept, tags
}
