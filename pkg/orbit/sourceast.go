package orbit

import (
	"fmt"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/sema"
	"github.com/fenlang/orbitc/internal/types"
	"github.com/tidwall/gjson"
)

// IngestSourceAST walks the source-AST JSON document spec §6 describes
// ("an ordered list of top-level Definitions... Classes carry parent names
// as identifiers (unresolved), members in source order, and generic
// parameter declarations") and replays it onto tree through the same
// Start*/Finish*/Add* calls a hand-written parser driver would use.
//
// Scope: this ingests declarations — classes, their data members and method
// signatures, enumeration variants, forward declarations, free functions,
// and import markers — not statement/expression bodies. A method's JSON
// entry controls only whether it is abstract (`"abstract": true`, Body
// stays nil) or concrete (Body becomes an empty block); filling concrete
// bodies with real statements is an external front end's job, same as
// producing the JSON in the first place. tree.Run()'s passes still execute
// meaningfully over the result: return-statement checking, generic
// concretization, closure conversion, and clone-method generation all
// operate on signatures and class shape, which this ingests in full.
func IngestSourceAST(tree *sema.Tree, doc string) error {
	if !gjson.Valid(doc) {
		return fmt.Errorf("source AST document is not valid JSON")
	}
	var ingestErr error
	gjson.Get(doc, "definitions").ForEach(func(_, def gjson.Result) bool {
		if err := ingestDefinition(tree, def); err != nil {
			ingestErr = err
			return false
		}
		return true
	})
	return ingestErr
}

func ingestDefinition(tree *sema.Tree, def gjson.Result) error {
	kind := def.Get("kind").String()
	name := def.Get("name").String()
	at := positionOf(def)

	switch kind {
	case "class":
		return ingestClass(tree, def, name, at)
	case "function":
		return ingestFunction(tree, def, name, at)
	case "forward":
		tree.AddGlobalDefinition(defs.NewForwardDeclaration(name, at))
		return nil
	case "import":
		return tree.UseModule(name, at)
	default:
		return fmt.Errorf("%s: unrecognized definition kind %q", at, kind)
	}
}

func ingestClass(tree *sema.Tree, def gjson.Result, name string, at ast.Position) error {
	var generics []*defs.GenericTypeParameterDefinition
	for _, g := range def.Get("generics").Array() {
		generics = append(generics, defs.NewGenericTypeParameter(g.String(), at))
	}

	var parents []*defs.ClassDefinition
	for _, p := range def.Get("parents").Array() {
		parentName := p.String()
		parent := tree.LookupClass(parentName)
		if parent == nil {
			return fmt.Errorf("%s: class %q names unknown parent %q (forward declarations are not resolved by the ingester; declare parents earlier in the document)", at, name, parentName)
		}
		parents = append(parents, parent)
	}

	props := defs.ClassProperties{
		IsInterface:   def.Get("isInterface").Bool(),
		IsProcess:     def.Get("isProcess").Bool(),
		IsMessage:     def.Get("isMessage").Bool(),
		IsClosure:     def.Get("isClosure").Bool(),
		IsEnumeration: def.Get("isEnumeration").Bool(),
	}

	class, err := defs.NewClass(name, generics, parents, tree.GlobalScope, props, at)
	if err != nil {
		return fmt.Errorf("%s: %w", at, err)
	}
	if err := tree.GlobalScope.InsertClass(name, class); err != nil {
		return fmt.Errorf("%s: %w", at, err)
	}
	tree.StartClass(class)

	for _, dm := range def.Get("dataMembers").Array() {
		member := defs.NewDataMember(
			dm.Get("name").String(),
			buildType(dm.Get("type"), tree),
			accessOf(dm),
			dm.Get("static").Bool(),
			dm.Get("primaryCtorArg").Bool(),
			positionOf(dm),
		)
		tree.AddClassMember(member)
	}

	for _, md := range def.Get("methods").Array() {
		method, err := buildMethod(md, tree)
		if err != nil {
			tree.FinishClass()
			return err
		}
		tree.AddClassMember(method)
	}

	if variants := def.Get("variants"); variants.Exists() {
		class.RawVariants = buildVariants(variants, tree)
	}

	tree.FinishClass()
	return nil
}

func ingestFunction(tree *sema.Tree, def gjson.Result, name string, at ast.Position) error {
	method, err := buildMethod(def, tree)
	if err != nil {
		return err
	}
	method.IsFunction = true
	if err := tree.GlobalFunctions.AddMethod(method); err != nil {
		return fmt.Errorf("%s: %w", at, err)
	}
	return nil
}

func buildMethod(md gjson.Result, tree *sema.Tree) (*defs.MethodDefinition, error) {
	at := positionOf(md)
	var returnType *types.Type
	if rt := md.Get("returnType"); rt.Exists() {
		returnType = buildType(rt, tree)
	}
	method := defs.NewMethod(md.Get("name").String(), returnType, accessOf(md), md.Get("static").Bool(), at)
	method.IsConstructor = md.Get("constructor").Bool()

	for _, a := range md.Get("args").Array() {
		method.AddArgument(&ast.VariableDeclaration{
			At:       positionOf(a),
			Name:     a.Get("name").String(),
			TypeName: a.Get("type.name").String(),
			Type:     buildType(a.Get("type"), tree),
			Form:     ast.TypedDecl,
		})
	}

	if !md.Get("abstract").Bool() {
		method.Body = &ast.Block{}
	}
	return method, nil
}

func buildVariants(variants gjson.Result, tree *sema.Tree) []defs.RawVariant {
	var out []defs.RawVariant
	for _, v := range variants.Array() {
		rv := defs.RawVariant{Name: v.Get("name").String(), At: positionOf(v)}
		for _, f := range v.Get("fields").Array() {
			rv.Fields = append(rv.Fields, &ast.VariableDeclaration{
				At:             positionOf(f),
				Name:           f.Get("name").String(),
				TypeName:       f.Get("type.name").String(),
				Type:           buildType(f.Get("type"), tree),
				Form:           ast.TypedDecl,
				PrimaryCtorArg: true,
			})
		}
		out = append(out, rv)
	}
	return out
}

// buildType resolves a {"name": "...", "array": bool} type reference. Named
// built-ins resolve directly; anything else is looked up in tree's global
// scope so the Type carries a Definition where one is already known (a
// class declared earlier in the same document, or one of the bootstrap
// built-ins) — exactly the resolution a parser's name-binding pass would
// otherwise have to do, pulled forward here because the JSON document
// names parents and member types the same unresolved way.
func buildType(r gjson.Result, tree *sema.Tree) *types.Type {
	name := r.Get("name").String()
	t := types.CreateNamed(name)
	if r.Get("array").Bool() {
		t = types.ArrayOf(t)
	}
	if !t.IsBuiltIn() {
		if cls := tree.LookupClass(name); cls != nil {
			t.SetDefinition(cls)
		}
	}
	return t
}

func accessOf(r gjson.Result) defs.AccessLevel {
	if r.Get("access").String() == "private" {
		return defs.Private
	}
	return defs.Public
}

func positionOf(r gjson.Result) ast.Position {
	return ast.Position{
		File:   r.Get("file").String(),
		Line:   int(r.Get("line").Int()),
		Column: int(r.Get("column").Int()),
	}
}
