package sema

import (
	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/errors"
)

// RunCheckReturnStatements is pass 2 (spec §4.6): every non-void method with
// a body must not be able to fall off its end without returning a value,
// grounded on MethodDefinition::checkReturnStatements.
func (t *Tree) RunCheckReturnStatements() {
	for _, c := range t.classes() {
		for _, m := range c.Methods {
			// generated stubs (a message class's empty _clone, an enum's
			// _deepCopy) receive their bodies in pass 5, after this check.
			if m.ReturnType.IsVoid() || m.Body == nil || m.IsGenerated {
				continue
			}
			if mayFallThrough(m.Body) {
				t.addError(errors.New(errors.MissingReturn, "missing return at end of method "+m.Name, m.Pos()))
			}
		}
	}
}

// mayFallThrough reports whether control can reach the end of block without
// passing through a Return, Jump, or an exhaustively-covered terminal
// statement, mirroring BlockStatement::mayFallThrough's structural check.
func mayFallThrough(block *ast.Block) bool {
	if len(block.Statements) == 0 {
		return true
	}
	return stmtMayFallThrough(block.Statements[len(block.Statements)-1])
}

func stmtMayFallThrough(s ast.Statement) bool {
	switch v := s.(type) {
	case *ast.Return:
		return false
	case *ast.Jump:
		return false
	case *ast.Block:
		return mayFallThrough(v)
	case *ast.If:
		if v.ElseBranch == nil {
			return true
		}
		return mayFallThrough(v.Then) || stmtMayFallThrough(v.ElseBranch)
	case *ast.While:
		// A `while true` with no break inside never falls through; any
		// other condition may exit the loop normally.
		if lit, ok := v.Condition.(*ast.BoolLiteral); ok && lit.Value {
			return containsBreak(v.Body)
		}
		return true
	default:
		return true
	}
}

func containsBreak(block *ast.Block) bool {
	for _, s := range block.Statements {
		switch v := s.(type) {
		case *ast.Break:
			return true
		case *ast.If:
			if containsBreak(v.Then) {
				return true
			}
			if eb, ok := v.ElseBranch.(*ast.Block); ok && containsBreak(eb) {
				return true
			}
		case *ast.Block:
			if containsBreak(v) {
				return true
			}
		}
	}
	return false
}
