package sema

import (
	"fmt"

	"github.com/fenlang/orbitc/internal/ast"
	"github.com/fenlang/orbitc/internal/defs"
	"github.com/fenlang/orbitc/internal/errors"
	"github.com/fenlang/orbitc/internal/pattern"
	"github.com/fenlang/orbitc/internal/types"
)

// matchResultTemp names the temporary a lowered match assigns its chosen
// case's result into (spec §4.4 "Match expression").
const matchResultTemp = "__match_result"

// lowerMatch rewrites a *ast.Match into an if/else-if chain — one branch
// per case, with the pattern's bindings opening the case body and any guard
// nested as an inner if after them — that assigns the winning
// case's result expression into a result temporary, returning the
// temporary reference the original expression's use site should be
// replaced with plus the prelude statements the caller must splice in
// immediately before the statement containing the match (spec §4.6
// TypeCheckAndTransform, "Match"; ast.Temporary is the node spec §4.4
// names for exactly this "statement-expression duality"). Exhaustiveness
// is checked with internal/pattern's MatchCoverage before lowering
// (testable property 6).
func (c *checker) lowerMatch(m *ast.Match) (*ast.Temporary, []ast.Statement, []*errors.CompilerError) {
	var errs []*errors.CompilerError

	c.matchSeq++
	resultName := fmt.Sprintf("%s_%d", matchResultTemp, c.matchSeq)

	subjPre, subj := c.checkExpr(m.Subject)
	m.Subject = subj

	coverage := coverageFor(m.Subject)
	var resultType *types.Type
	var chain *ast.If
	var root ast.Statement
	exhausted := false
	for _, mc := range m.Cases {
		if exhausted {
			errs = append(errs, errors.New(errors.Pattern, "unreachable match case", mc.At))
			continue
		}
		pat, err := pattern.Create(mc.Pattern, c.ctx.Bindings)
		if err != nil {
			errs = append(errs, errors.New(errors.Pattern, err.Error(), mc.At))
			continue
		}
		guardPresent := mc.Guard != nil
		if pat.IsMatchExhaustive(m.Subject, coverage, guardPresent) {
			coverage.MarkAllCovered()
			exhausted = true
		}

		cond := pat.GenerateComparisonExpression(m.Subject)

		// the pattern's bindings open the case body and are in scope for
		// both the guard and the result (spec §8 scenario 3: `Rectangle(w,h)
		// if w==h -> Shape.Square(w)`).
		body := &ast.Block{}
		for _, d := range pat.VariablesCreatedByPattern() {
			if d.Type == nil && d.Initializer != nil {
				d.Type = d.Initializer.ResolvedType()
			}
			_ = c.ctx.Bindings.InsertLocalObject(d)
			body.Statements = append(body.Statements, &ast.VarDeclarationStmt{Decl: d})
		}

		if mc.Guard != nil {
			_, guard := c.checkExpr(mc.Guard)
			mc.Guard = guard
		}

		_, result := c.checkExpr(mc.Result)
		mc.Result = result
		if mc.Result != nil && mc.Result.ResolvedType() != nil {
			resultType = types.CalculateCommonType(resultType, mc.Result.ResolvedType())
		}

		assign := &ast.ExpressionStatement{Expr: &ast.Binary{
			Op:    ast.OpAssign,
			Left:  &ast.NamedEntity{Name: resultName},
			Right: mc.Result,
		}}
		// a guard tests after the bindings exist, so it nests inside the
		// case body rather than joining the outer comparison.
		if mc.Guard != nil {
			body.Statements = append(body.Statements, &ast.If{
				StmtBase:  ast.StmtBase{At: mc.At},
				Condition: mc.Guard,
				Then:      &ast.Block{Statements: []ast.Statement{assign}},
			})
		} else {
			body.Statements = append(body.Statements, assign)
		}

		// an exhaustive-and-final case needs no test: its body runs bare
		// (spec §4.4 "Match expression").
		var branch ast.Statement
		if cond == nil {
			branch = body
		} else {
			branch = &ast.If{StmtBase: ast.StmtBase{At: mc.At}, Condition: cond, Then: body}
		}
		if root == nil {
			root = branch
		} else if chain != nil {
			chain.ElseBranch = branch
		}
		chain, _ = branch.(*ast.If)
	}

	if !coverage.AreAllCasesCovered() {
		errs = append(errs, errors.New(errors.Pattern, "non-exhaustive match", m.Pos()))
	}
	if resultType == nil {
		resultType = types.Void_()
	}

	resultDecl := &ast.VariableDeclaration{Name: resultName, Form: ast.TypedDecl, Type: resultType, At: m.Pos()}
	_ = c.ctx.Bindings.InsertLocalObject(resultDecl)
	stmts := append(subjPre, &ast.VarDeclarationStmt{Decl: resultDecl})
	if root != nil {
		stmts = append(stmts, root)
	}
	result := &ast.Temporary{Declaration: resultDecl}
	result.SetResolvedType(resultType)
	return result, stmts, errs
}

// coverageFor picks the MatchCoverage kind spec §4.4/§4.5 assigns to a
// match's subject: boolean subjects need exactly true/false, enum subjects
// need every variant, anything else needs an explicit wildcard.
func coverageFor(subject ast.Expression) *pattern.MatchCoverage {
	t := subject.ResolvedType()
	if t == nil {
		return pattern.NewOtherCoverage()
	}
	if t.IsBool() {
		return pattern.NewBoolCoverage()
	}
	if t.IsEnumeration() {
		if variantNames, ok := enumVariantNames(t); ok {
			return pattern.NewEnumCoverage(variantNames)
		}
	}
	return pattern.NewOtherCoverage()
}

// enumVariantNames reads the variant set back off t's class definition, as
// parsed (defs.ClassDefinition.RawVariants), so exhaustiveness checking
// doesn't need the generated `$<Variant>Tag` static members to exist yet.
func enumVariantNames(t *types.Type) ([]string, bool) {
	cls, ok := types.AsClass(t.Definition)
	if !ok {
		return nil, false
	}
	def, ok := cls.(*defs.ClassDefinition)
	if !ok || len(def.RawVariants) == 0 {
		return nil, false
	}
	names := make([]string, len(def.RawVariants))
	for i, rv := range def.RawVariants {
		names[i] = rv.Name
	}
	return names, true
}
