// Package lower implements the generated-code strategies spec §4.6 names:
// clone/deep-copy bodies for message classes, tagged-union layout and
// variant constructors for enumerations, and the closure interface/
// capturing-class pair for anonymous functions. internal/sema's pass
// driver calls into this package once the class shells it needs
// (GenerateEmptyCopyConstructorAndClone, GenerateEmptyDeepCopy) already
// exist; lower fills in their bodies.
package lower

import (
	"fmt"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/types"
)

// Well-known generated-code identifiers, named the way
// CloneGenerator.cpp/EnumGenerator.cpp spell them (spec §4.6, §6).
const (
	CloneMethodName    = "_clone"
	DeepCopyMethodName = "_deepCopy"
	OtherParamName     = "other"
	ElementParamName   = "element"
	EnumTagFieldName   = "$tag"
)

// CloneGenerator fills in the copy constructor and `_clone` bodies
// GenerateEmptyCopyConstructorAndClone stubbed out at parse time, grounded
// on CloneGenerator.cpp.
type CloneGenerator struct {
	Class *defs.ClassDefinition
}

// NewCloneGenerator builds a generator for class.
func NewCloneGenerator(class *defs.ClassDefinition) *CloneGenerator {
	return &CloneGenerator{Class: class}
}

// Generate fills the class's copy constructor and `_clone` bodies (spec
// §4.6 pass 5, CloneGenerator::generate).
func (g *CloneGenerator) Generate() error {
	if err := g.generateCopyConstructor(); err != nil {
		return err
	}
	g.generateCloneMethod()
	return nil
}

// generateCloneMethod produces:
//
//	ClassName _clone() { return new ClassName(this) }
func (g *CloneGenerator) generateCloneMethod() {
	clone := findMethod(g.Class, CloneMethodName)
	if clone == nil {
		return
	}
	ctorCall := &ast.HeapAllocation{
		ClassName: g.Class.Name,
		Arguments: []ast.Expression{&ast.ThisExpr{}},
	}
	clone.Body = &ast.Block{Statements: []ast.Statement{
		&ast.Return{Expr: ctorCall},
	}}
}

// generateCopyConstructor produces the member-by-member copy constructor
// body described by CloneGenerator.cpp's doc comment (reproduced in spec
// §4.6 "Clone-method generation").
func (g *CloneGenerator) generateCopyConstructor() error {
	ctor := g.Class.GetCopyConstructor()
	if ctor == nil {
		return fmt.Errorf("class %q has no copy constructor to generate a body for", g.Class.Name)
	}

	var stmts []ast.Statement
	if call, err := g.baseClassConstructorCall(); err != nil {
		return err
	} else if call != nil {
		stmts = append(stmts, call)
	}

	for _, dm := range g.Class.DataMembers {
		if dm.Static {
			continue
		}
		switch {
		case dm.Type.IsArray():
			s, err := g.arrayMemberInit(dm)
			if err != nil {
				return err
			}
			stmts = append(stmts, s...)
		case dm.Type.IsPrimitive():
			stmts = append(stmts, primitiveMemberInit(dm.Name))
		case dm.Type.IsEnumeration():
			stmts = append(stmts, enumMemberInit(dm.Name, dm.Type))
		default:
			if err := checkNonPrimitiveMember(dm); err != nil {
				return err
			}
			stmts = append(stmts, referenceMemberInit(dm.Name, dm.Type))
		}
	}

	ctor.Body = &ast.Block{Statements: stmts}
	return nil
}

// baseClassConstructorCall produces `BaseClassName(other)`, skipped when
// the base is `object` (CloneGenerator::generateBaseClassConstructorCall).
func (g *CloneGenerator) baseClassConstructorCall() (ast.Statement, error) {
	base := g.Class.BaseClass
	if base == nil || base.Name == "object" {
		return nil, nil
	}
	if !base.IsMessage() {
		return nil, fmt.Errorf("the base class of message class %q must also be a message class", g.Class.Name)
	}
	call := &ast.HeapAllocation{
		ClassName: base.Name,
		Arguments: []ast.Expression{&ast.NamedEntity{Name: OtherParamName}},
	}
	return &ast.ConstructorCall{Kind: ast.BaseCtorCall, ClassName: base.Name, Arguments: call.Arguments}, nil
}

// primitiveMemberInit produces `member = other.member`.
func primitiveMemberInit(memberName string) ast.Statement {
	rhs := &ast.MemberSelector{
		Receiver: &ast.NamedEntity{Name: OtherParamName},
		Member:   &ast.Member{Kind: ast.DataMemberAccess, Name: memberName},
	}
	return &ast.ExpressionStatement{Expr: &ast.Binary{
		Op:    ast.OpAssign,
		Left:  &ast.NamedEntity{Name: memberName},
		Right: rhs,
	}}
}

// enumMemberInit produces `member = MemberType._deepCopy(other.member)`.
func enumMemberInit(memberName string, memberType *types.Type) ast.Statement {
	deepCopyCall := &ast.Member{
		Kind: ast.MethodCallAccess,
		Name: DeepCopyMethodName,
		Arguments: []ast.Expression{
			&ast.MemberSelector{
				Receiver: &ast.NamedEntity{Name: OtherParamName},
				Member:   &ast.Member{Kind: ast.DataMemberAccess, Name: memberName},
			},
		},
	}
	rhs := &ast.MemberSelector{Receiver: &ast.ClassName{Name: memberType.FullConstructedName()}, Member: deepCopyCall}
	return &ast.ExpressionStatement{Expr: &ast.Binary{
		Op:    ast.OpAssign,
		Left:  &ast.NamedEntity{Name: memberName},
		Right: rhs,
	}}
}

// referenceMemberInit produces `member = (MemberType) other.member._clone`.
func referenceMemberInit(memberName string, memberType *types.Type) ast.Statement {
	clonedMember := &ast.MemberSelector{
		Receiver: &ast.NamedEntity{Name: OtherParamName},
		Member: &ast.MemberSelector{
			Receiver: &ast.NamedEntity{Name: memberName},
			Member:   &ast.Member{Kind: ast.MethodCallAccess, Name: CloneMethodName},
		},
	}
	rhs := &ast.TypeCast{TargetTypeName: memberType.FullConstructedName(), Operand: clonedMember}
	return &ast.ExpressionStatement{Expr: &ast.Binary{
		Op:    ast.OpAssign,
		Left:  &ast.NamedEntity{Name: memberName},
		Right: rhs,
	}}
}

// arrayMemberInit produces:
//
//	memberArray = new MemberArrayType[other.memberArray.length()]
//	memberArray.appendAll(other.memberArray)               // primitive elements
//	// or:
//	other.memberArray.each |element| {
//	    memberArray.append((ArrayType) element._clone)       // reference elements
//	    memberArray.append(MemberType._deepCopy(element))    // enum elements
//	}
func (g *CloneGenerator) arrayMemberInit(dm *defs.DataMemberDefinition) ([]ast.Statement, error) {
	sizeAccess := &ast.MemberSelector{
		Receiver: &ast.NamedEntity{Name: OtherParamName},
		Member: &ast.MemberSelector{
			Receiver: &ast.NamedEntity{Name: dm.Name},
			Member:   &ast.Member{Kind: ast.MethodCallAccess, Name: "length"},
		},
	}
	allocation := &ast.ArrayAllocation{ElementTypeName: dm.Type.FullConstructedName(), Capacity: sizeAccess}
	alloc := &ast.ExpressionStatement{Expr: &ast.Binary{Op: ast.OpAssign, Left: &ast.NamedEntity{Name: dm.Name}, Right: allocation}}

	elemType := types.CreateArrayElementType(dm.Type)
	if elemType.IsPrimitive() {
		appendAll := &ast.MemberSelector{
			Receiver: &ast.NamedEntity{Name: dm.Name},
			Member: &ast.Member{
				Kind: ast.MethodCallAccess,
				Name: "appendAll",
				Arguments: []ast.Expression{
					&ast.MemberSelector{Receiver: &ast.NamedEntity{Name: OtherParamName}, Member: &ast.Member{Kind: ast.DataMemberAccess, Name: dm.Name}},
				},
			},
		}
		return []ast.Statement{alloc, &ast.ExpressionStatement{Expr: appendAll}}, nil
	}

	if err := checkNonPrimitiveMember(dm); err != nil {
		return nil, err
	}
	return []ast.Statement{alloc, arrayForEachClone(dm.Name, elemType)}, nil
}

func arrayForEachClone(memberName string, elemType *types.Type) ast.Statement {
	var appendArg ast.Expression
	if elemType.IsEnumeration() {
		appendArg = &ast.MemberSelector{
			Receiver: &ast.ClassName{Name: elemType.FullConstructedName()},
			Member: &ast.Member{
				Kind:      ast.MethodCallAccess,
				Name:      DeepCopyMethodName,
				Arguments: []ast.Expression{&ast.NamedEntity{Name: ElementParamName}},
			},
		}
	} else {
		appendArg = &ast.TypeCast{
			TargetTypeName: elemType.FullConstructedName(),
			Operand: &ast.MemberSelector{
				Receiver: &ast.NamedEntity{Name: ElementParamName},
				Member:   &ast.Member{Kind: ast.MethodCallAccess, Name: CloneMethodName},
			},
		}
	}

	appendCall := &ast.Member{Kind: ast.MethodCallAccess, Name: "append", Arguments: []ast.Expression{appendArg}}
	lambdaBody := &ast.Block{Statements: []ast.Statement{
		&ast.ExpressionStatement{Expr: &ast.MemberSelector{Receiver: &ast.NamedEntity{Name: memberName}, Member: appendCall}},
	}}
	eachCall := &ast.Member{
		Kind: ast.MethodCallAccess,
		Name: "each",
		LambdaBlock: &ast.Lambda{
			Params: []ast.Param{{Name: ElementParamName}},
			Body:   lambdaBody,
		},
	}
	eachSelector := &ast.MemberSelector{
		Receiver: &ast.NamedEntity{Name: OtherParamName},
		Member: &ast.MemberSelector{
			Receiver: &ast.NamedEntity{Name: memberName},
			Member:   eachCall,
		},
	}
	return &ast.ExpressionStatement{Expr: eachSelector}
}

func checkNonPrimitiveMember(dm *defs.DataMemberDefinition) error {
	if !dm.Type.IsMessageOrPrimitive() {
		return fmt.Errorf("non-primitive member %q of a message class must be of message-class type", dm.Name)
	}
	return nil
}

func findMethod(class *defs.ClassDefinition, name string) *defs.MethodDefinition {
	for _, m := range class.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func findDataMember(class *defs.ClassDefinition, name string) *defs.DataMemberDefinition {
	for _, dm := range class.DataMembers {
		if dm.Name == name {
			return dm
		}
	}
	return nil
}
