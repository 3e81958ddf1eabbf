// Package sessionwrite defines an analyzer that keeps auth.Session values
// immutable outside of package auth: a session may only change through the
// commits of the session service.
package sessionwrite

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	authPackageSuffix = "internal/auth"
	sessionTypeName   = "Session"
)

// Analyzer reports assignments to auth.Session fields made outside package auth.
var Analyzer = &analysis.Analyzer{
	Name:     "sessionwrite",
	Doc:      "prohibits assigning to auth.Session fields outside package auth",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func isAuthPackage(pkg *types.Package) bool {
	return pkg != nil && (pkg.Path() == "auth" || strings.HasSuffix(pkg.Path(), authPackageSuffix))
}

// isSessionField reports whether expr selects a field of auth.Session.
func isSessionField(pass *analysis.Pass, expr ast.Expr) bool {
	sel, ok := ast.Unparen(expr).(*ast.SelectorExpr)
	if !ok {
		return false
	}
	selection, ok := pass.TypesInfo.Selections[sel]
	if !ok || selection.Kind() != types.FieldVal {
		return false
	}

	recv := selection.Recv()
	if ptr, ok := recv.(*types.Pointer); ok {
		recv = ptr.Elem()
	}
	named, ok := recv.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()

	return obj.Name() == sessionTypeName && isAuthPackage(obj.Pkg())
}

func run(pass *analysis.Pass) (interface{}, error) {
	if isAuthPackage(pass.Pkg) {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	nodeFilter := []ast.Node{
		(*ast.AssignStmt)(nil),
		(*ast.IncDecStmt)(nil),
	}

	insp.Preorder(nodeFilter, func(n ast.Node) {
		switch stmt := n.(type) {
		case *ast.AssignStmt:
			for _, lhs := range stmt.Lhs {
				if isSessionField(pass, lhs) {
					pass.Reportf(lhs.Pos(), "auth.Session is changed only through session service commits")
				}
			}
		case *ast.IncDecStmt:
			if isSessionField(pass, stmt.X) {
				pass.Reportf(stmt.X.Pos(), "auth.Session is changed only through session service commits")
			}
		}
	})

	return nil, nil
}
