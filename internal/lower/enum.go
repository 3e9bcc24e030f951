package lower

import (
	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/bindings"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/types"
)

const (
	retvalVariableName = "retval"
	callMethodName      = "call"
)

// VariantInfo records the shape EnumGenerator produced for one variant, and
// resolves Open Question 1 (enum tagged-union layout, SPEC_FULL.md §C.1):
// whether any of the variant's fields are reference-typed, which an emitter
// would need to know to decide whether the generated `$<Variant>Data`
// nested class owns a reference that must be released when `$tag` matches.
type VariantInfo struct {
	Name           string
	Tag            int
	DataClassName  string // empty if the variant carries no fields
	Fields         []*ast.VariableDeclaration
	OwnsReferences bool
}

// EnumGenerator builds the tagged-union layout and variant constructors
// spec §4.6 "Enumeration generation" describes, grounded on
// EnumGenerator.cpp. Unlike the C++ original (which drives a shared Tree
// to open/close class scopes), this Go port operates directly on an
// already-constructed enum ClassDefinition: internal/sema is responsible
// for class/scope bookkeeping (startClass/finishClass equivalents) and
// calls EnumGenerator only to populate members.
type EnumGenerator struct {
	Enum     *defs.ClassDefinition
	variants []VariantInfo
}

// NewEnumGenerator builds a generator targeting an already-started enum
// class (spec §4.6: the `$tag` data member is added when the class is
// opened, before any variant is generated).
func NewEnumGenerator(enumClass *defs.ClassDefinition) *EnumGenerator {
	return &EnumGenerator{Enum: enumClass}
}

// GenerateVariant appends the members for one `VariantName(fields...)`
// (or `VariantName` with no fields) declaration: a static tag constant, an
// optional nested `$<Variant>Data` class plus its holding data member, and
// the static variant-constructor method (spec §4.6, scenario 2 of spec §8).
func (g *EnumGenerator) GenerateVariant(variantName string, fields []*ast.VariableDeclaration, at ast.Position) error {
	tag := len(g.variants)
	info := VariantInfo{Name: variantName, Tag: tag, Fields: fields}

	staticTag := defs.NewDataMember("$"+variantName+"Tag", types.Create(types.Int), defs.Public, true, false, at)
	staticTag.Init = &ast.IntLiteral{Value: int64(tag)}
	g.Enum.AppendMember(staticTag)

	if len(fields) > 0 {
		dataClassName := "$" + variantName + "Data"
		dataClass, err := defs.NewClass(dataClassName, nil, nil, g.Enum.Scope, defs.ClassProperties{IsEnumerationVariant: true}, at)
		if err != nil {
			return err
		}
		dataClass.AddPrimaryCtorArgsAsDataMembers(fields)
		for _, f := range fields {
			if f.ResolvedType() != nil && f.ResolvedType().IsReference() {
				info.OwnsReferences = true
			}
		}
		g.Enum.AppendMember(dataClass)

		variantDataType := types.CreateNamed(dataClassName)
		variantDataType.SetDefinition(dataClass)
		variantDataMember := defs.NewDataMember("$"+variantName, variantDataType, defs.Public, false, false, at)
		g.Enum.AppendMember(variantDataMember)
		info.DataClassName = dataClassName
	}

	g.variants = append(g.variants, info)
	g.Enum.AppendMember(g.generateVariantConstructor(variantName, fields, at))
	return nil
}

// generateVariantConstructor produces:
//
//	static [EnumName] [VariantName]([Field0Type] $0, ...) {
//	    [EnumName] retval
//	    retval.$tag = $[VariantName]Tag
//	    retval.$[VariantName].$0 = $0
//	    ...
//	    return retval
//	}
func (g *EnumGenerator) generateVariantConstructor(variantName string, fields []*ast.VariableDeclaration, at ast.Position) *defs.MethodDefinition {
	enumType := types.CreateNamed(g.Enum.Name)
	enumType.SetDefinition(g.Enum)

	ctor := defs.NewMethod(variantName, enumType, defs.Public, true, at)
	ctor.IsEnumCtor = true
	for _, f := range fields {
		ctor.AddArgument(f)
	}

	var stmts []ast.Statement
	retvalDecl := &ast.VariableDeclaration{Name: retvalVariableName, TypeName: g.Enum.Name, Form: ast.TypedDecl, At: at}
	stmts = append(stmts, &ast.VarDeclarationStmt{Decl: retvalDecl})
	stmts = append(stmts, &ast.ExpressionStatement{Expr: &ast.Binary{
		Op:    ast.OpAssign,
		Left:  &ast.MemberSelector{Receiver: &ast.NamedEntity{Name: retvalVariableName}, Member: &ast.Member{Name: EnumTagFieldName}},
		Right: &ast.NamedEntity{Name: "$" + variantName + "Tag"},
	}})

	if len(fields) > 0 {
		variantAccess := &ast.MemberSelector{
			Receiver: &ast.NamedEntity{Name: retvalVariableName},
			Member:   &ast.Member{Name: "$" + variantName},
		}
		for _, f := range fields {
			stmts = append(stmts, &ast.ExpressionStatement{Expr: &ast.Binary{
				Op:   ast.OpAssign,
				Left: &ast.MemberSelector{Receiver: variantAccess, Member: &ast.Member{Name: f.Name}},
				Right: &ast.NamedEntity{Name: f.Name},
			}})
		}
	}

	stmts = append(stmts, &ast.Return{Expr: &ast.NamedEntity{Name: retvalVariableName}})
	ctor.Body = &ast.Block{Statements: stmts}
	return ctor
}

// GenerateVariantsFromRaw drives GenerateVariant over every variant the
// front end recorded on g.Enum (defs.ClassDefinition.RawVariants), ensuring
// the `$tag` field exists first — internal/sema calls this once per
// enumeration during GenerateCloneMethods rather than calling
// GenerateVariant itself, keeping variant-shape bookkeeping inside
// internal/lower.
func (g *EnumGenerator) GenerateVariantsFromRaw() error {
	if findDataMember(g.Enum, EnumTagFieldName) == nil {
		g.Enum.AppendMember(defs.NewDataMember(EnumTagFieldName, types.Create(types.Int), defs.Public, false, false, g.Enum.At))
	}
	for _, rv := range g.Enum.RawVariants {
		if err := g.GenerateVariant(rv.Name, rv.Fields, rv.At); err != nil {
			return err
		}
	}
	return nil
}

// Variants returns the variant shapes generated so far, in declaration
// order (tag-ascending, since tags are assigned densely in source order).
func (g *EnumGenerator) Variants() []VariantInfo { return g.variants }

// VariantNames returns the variant-constructor method names, the seed for
// a match expression's enumeration coverage set (spec §4.5).
func (g *EnumGenerator) VariantNames() []string {
	names := make([]string, len(g.variants))
	for i, v := range g.variants {
		names[i] = v.Name
	}
	return names
}

// GenerateDeepCopyMethod fills the `_deepCopy` body
// GenerateEmptyDeepCopy stubbed for a message enumeration: a match over
// `$tag` that reconstructs each variant by calling its constructor with
// deep-copied field values (spec §4.6 pass 5; no C++ source file for this
// body survived in original_source, so the shape is inferred directly from
// the copy-constructor pattern CloneGenerator.cpp establishes for
// reference/enum-typed members applied per variant field).
func (g *EnumGenerator) GenerateDeepCopyMethod(scope *bindings.Scope) {
	deepCopy := findMethod(g.Enum, DeepCopyMethodName)
	if deepCopy == nil {
		return
	}

	var cases []*ast.MatchCase
	for _, v := range g.variants {
		pattern := &ast.ClassDecomposition{ClassName: g.Enum.Name, IsEnumVariant: true, EnumVariantName: v.Name}
		args := make([]ast.Expression, len(v.Fields))
		for i, f := range v.Fields {
			pattern.Members = append(pattern.Members, ast.DecompositionMember{Pattern: &ast.NamedEntity{Name: f.Name}})
			args[i] = fieldDeepCopyExpr(f)
		}
		cases = append(cases, &ast.MatchCase{
			Pattern: pattern,
			Result:  &ast.Member{Kind: ast.MethodCallAccess, Name: v.Name, Arguments: args},
		})
	}

	match := &ast.Match{Subject: &ast.NamedEntity{Name: OtherParamName}, Cases: cases}
	deepCopy.Body = &ast.Block{Statements: []ast.Statement{&ast.Return{Expr: match}}}
}

// fieldDeepCopyExpr produces the deep-copy expression for one bound
// variant field: a plain reference for a primitive, a recursive
// `_deepCopy` call for an enum, `(Type) field._clone()` for a reference.
func fieldDeepCopyExpr(f *ast.VariableDeclaration) ast.Expression {
	t := f.ResolvedType()
	if t == nil || t.IsPrimitive() {
		return &ast.NamedEntity{Name: f.Name}
	}
	if t.IsEnumeration() {
		return &ast.MemberSelector{
			Receiver: &ast.ClassName{Name: t.FullConstructedName()},
			Member:   &ast.Member{Kind: ast.MethodCallAccess, Name: DeepCopyMethodName, Arguments: []ast.Expression{&ast.NamedEntity{Name: f.Name}}},
		}
	}
	return &ast.TypeCast{
		TargetTypeName: t.FullConstructedName(),
		Operand: &ast.MemberSelector{
			Receiver: &ast.NamedEntity{Name: f.Name},
			Member:   &ast.Member{Kind: ast.MethodCallAccess, Name: CloneMethodName},
		},
	}
}

// GenerateConvertableEnum builds the `<Name><_>` companion class
// EnumGenerator.cpp emits for a generic enumeration's no-data variants
// (spec §4.6: "a parallel concrete class `<Name><_>` is generated holding
// just the tag and the no-data constructors"), plus the implicit-conversion
// constructor on the full enum that accepts it.
func GenerateConvertableEnum(fullEnum *defs.ClassDefinition, noDataVariants []VariantInfo, scope *bindings.Scope, at ast.Position) (*defs.ClassDefinition, error) {
	if len(noDataVariants) == 0 {
		return nil, nil
	}

	placeholderArg := types.Create(types.Placeholder)
	convertibleName := fullEnum.Name + "<" + placeholderArg.String() + ">"
	convertible, err := defs.NewClass(convertibleName, nil, nil, scope, defs.ClassProperties{IsEnumeration: true, IsGenerated: true}, at)
	if err != nil {
		return nil, err
	}
	convertible.AppendMember(defs.NewDataMember(EnumTagFieldName, types.Create(types.Int), defs.Public, false, false, at))
	gen := NewEnumGenerator(convertible)
	for _, v := range noDataVariants {
		staticTag := defs.NewDataMember("$"+v.Name+"Tag", types.Create(types.Int), defs.Public, true, false, at)
		staticTag.Init = &ast.IntLiteral{Value: int64(v.Tag)}
		convertible.AppendMember(staticTag)
		gen.variants = append(gen.variants, VariantInfo{Name: v.Name, Tag: v.Tag})
		convertible.AppendMember(gen.generateVariantConstructor(v.Name, nil, at))
	}

	// init([Enum]<_> other) { $tag = other.$tag }
	initMethod := defs.NewMethod("init", nil, defs.Public, false, at)
	initMethod.IsConstructor = true
	argType := types.CreateNamed(convertibleName)
	argType.SetDefinition(convertible)
	initMethod.AddArgument(&ast.VariableDeclaration{Name: OtherParamName, TypeName: convertibleName, Type: argType, Form: ast.TypedDecl})
	initMethod.Body = &ast.Block{Statements: []ast.Statement{
		&ast.ExpressionStatement{Expr: &ast.Binary{
			Op:    ast.OpAssign,
			Left:  &ast.NamedEntity{Name: EnumTagFieldName},
			Right: &ast.MemberSelector{Receiver: &ast.NamedEntity{Name: OtherParamName}, Member: &ast.Member{Name: EnumTagFieldName}},
		}},
	}}
	fullEnum.AppendMember(initMethod)

	return convertible, nil
}
