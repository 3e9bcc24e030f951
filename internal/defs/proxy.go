package defs

import "github.com/fenlang/orbitc/internal/ast"

// ProxyContract is what internal/sema records in place of guessing at a
// process interface proxy's generated internals (spec.md Open Question 2):
// the interface being proxied, the method set the proxy must forward, and
// whether its constructor takes a process name argument. Proxy class
// generation itself is an external collaborator's job; orbitc only hands
// the contract down the pipeline via ast.ProcessProxyAllocation.
type ProxyContract struct {
	InterfaceName string
	Methods       []*MethodDefinition

	// HasProcessNameArg is set when the interface's implementing process
	// was spawned with an explicit name, so the proxy's constructor takes
	// that name as its sole argument.
	HasProcessNameArg bool
}

// NewProxyContract builds a contract for iface, copying its method list
// (a proxy forwards every method the interface declares, spec §4.3
// "Process interface proxies").
func NewProxyContract(iface *ClassDefinition, hasProcessNameArg bool) *ProxyContract {
	methods := make([]*MethodDefinition, len(iface.Methods))
	copy(methods, iface.Methods)
	return &ProxyContract{
		InterfaceName:     iface.Name,
		Methods:           methods,
		HasProcessNameArg: hasProcessNameArg,
	}
}

// ProcessProxyAllocationFor builds the AST node Tree.cpp's
// HeapAllocationExpression lowering would have produced: `new Iface(...)`
// rewritten to carry the proxy contract instead of a literal class name
// (spec.md §4.4, SPEC_FULL.md §C.2).
func ProcessProxyAllocationFor(contract *ProxyContract, processNameArg ast.Expression, ctorArgs []ast.Expression, at ast.Position) *ast.ProcessProxyAllocation {
	return &ast.ProcessProxyAllocation{
		ExprBase:        ast.ExprBase{At: at},
		InterfaceName:   contract.InterfaceName,
		ProcessNameArg:  processNameArg,
		ConstructorArgs: ctorArgs,
	}
}
