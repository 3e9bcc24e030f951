package bindings

import (
	"fmt"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/types"
)

// Scope is one link of the binding chain: global, class, method body, or
// nested block (spec §4.2: "Scopes chain: global -> class -> method body ->
// nested block"). Lookup walks the enclosing chain; LookupLocal does not.
type Scope struct {
	enclosing *Scope
	bindings  map[string]*Binding
}

// New creates a scope with no enclosing scope (the global scope).
func New() *Scope {
	return &Scope{bindings: make(map[string]*Binding)}
}

// NewEnclosed creates a scope chained to enc.
func NewEnclosed(enc *Scope) *Scope {
	return &Scope{enclosing: enc, bindings: make(map[string]*Binding)}
}

// Enclosing returns the scope this one is chained to, or nil for the
// global scope.
func (s *Scope) Enclosing() *Scope { return s.enclosing }

// SetEnclosing rechains s onto enc, used when a class's scope is spliced in
// under whatever scope it was declared.
func (s *Scope) SetEnclosing(enc *Scope) { s.enclosing = enc }

// Lookup walks s and its enclosing chain for name, returning the first
// match.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	for scope := s; scope != nil; scope = scope.enclosing {
		if b, ok := scope.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// LookupLocal looks up name in s only, ignoring the enclosing chain.
func (s *Scope) LookupLocal(name string) (*Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

// InsertLocalObject inserts a LocalObject binding for decl. It is an error
// if name is already bound in this scope (spec §4.2: "inserting any other
// kind with a duplicate name is an error").
func (s *Scope) InsertLocalObject(decl *ast.VariableDeclaration) error {
	return s.insertUnique(decl.Name, newLocalObjectBinding(decl))
}

// InsertClass inserts a Class binding.
func (s *Scope) InsertClass(name string, def types.Definition) error {
	return s.insertUnique(name, newClassBinding(def))
}

// InsertDataMember inserts a DataMember binding.
func (s *Scope) InsertDataMember(name string, def types.Definition) error {
	return s.insertUnique(name, newDataMemberBinding(def))
}

// RemoveDataMember removes a previously inserted data-member binding. Used
// when a primary-ctor-arg data member's parameter binding needs to give way
// to its promoted member form, or vice versa.
func (s *Scope) RemoveDataMember(name string) bool {
	if b, ok := s.bindings[name]; ok && b.Kind == DataMember {
		delete(s.bindings, name)
		return true
	}
	return false
}

// InsertGenericTypeParameter inserts a GenericTypeParameter binding.
func (s *Scope) InsertGenericTypeParameter(name string, def types.Definition) error {
	return s.insertUnique(name, newGenericTypeParameterBinding(def))
}

// InsertLabel inserts a Label binding.
func (s *Scope) InsertLabel(name string) error {
	return s.insertUnique(name, newLabelBinding())
}

// InsertMethod inserts def as a new Method binding, or appends it to the
// existing binding's overload list if name is already bound to a method
// (spec §4.2: "Inserting a method name that already exists appends to the
// overload list").
func (s *Scope) InsertMethod(name string, def types.Definition) error {
	existing, ok := s.bindings[name]
	if !ok {
		s.bindings[name] = newMethodBinding(def)
		return nil
	}
	if existing.Kind != Method {
		return fmt.Errorf("%q is already declared as a %s", name, existing.Kind)
	}
	existing.Overloads = append(existing.Overloads, def)
	return nil
}

// UpdateMethodName re-keys a method binding from oldName to newName without
// disturbing its overload list (spec §4.2), e.g. when a constructor is
// renamed to `<ClassName>_init`.
func (s *Scope) UpdateMethodName(oldName, newName string) bool {
	b, ok := s.bindings[oldName]
	if !ok || b.Kind != Method {
		return false
	}
	delete(s.bindings, oldName)
	s.bindings[newName] = b
	return true
}

// RemoveObsoleteLocalBindings drops any LocalObject binding whose key no
// longer matches its current identifier, used after unique-renaming during
// inlining (spec §4.2).
func (s *Scope) RemoveObsoleteLocalBindings() {
	for key, b := range s.bindings {
		if b.Kind == LocalObject && b.LocalObject != nil && b.LocalObject.Name != key {
			delete(s.bindings, key)
		}
	}
}

// CopyFrom duplicates every binding of from into s, used to seed a class's
// scope from its parents' (spec §4.3 "Parents' bindings are copied into the
// class's bindings").
func (s *Scope) CopyFrom(from *Scope) {
	for name, b := range from.bindings {
		s.bindings[name] = b
	}
}

// Use imports only Class, Method, and DataMember bindings from used into s
// (spec §4.2: "`use(scope)` imports only classes, methods, and data members
// from another scope").
func (s *Scope) Use(used *Scope) {
	for name, b := range used.bindings {
		switch b.Kind {
		case Class, Method, DataMember:
			s.bindings[name] = b
		}
	}
}

func (s *Scope) insertUnique(name string, b *Binding) error {
	if existing, ok := s.bindings[name]; ok {
		return fmt.Errorf("%q is already declared as a %s", name, existing.Kind)
	}
	s.bindings[name] = b
	return nil
}
