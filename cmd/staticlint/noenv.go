package main

import (
	"go/ast"
	"path"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// envFuncs функции пакета os, читающие окружение
var envFuncs = []string{"Getenv", "LookupEnv", "Environ"}

// NoEnvAnalyzer запрещает читать переменные окружения вне пакета config и пакетов main.
// Остальной код получает настройки только через config.Config.
var NoEnvAnalyzer = &analysis.Analyzer{
	Name:     "noenv",
	Doc:      "reports environment reads outside config and main packages",
	Run:      runNoEnv,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

func runNoEnv(pass *analysis.Pass) (any, error) {
	if envAllowed(pass.Pkg.Path(), pass.Pkg.Name()) {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		if strings.HasSuffix(pass.Fset.File(call.Pos()).Name(), "_test.go") {
			return
		}
		if isPkgFunc(pass.TypesInfo, call, "os", envFuncs...) {
			pass.Reportf(call.Pos(), "environment must be read through the config package")
		}
	})

	return nil, nil
}

func envAllowed(pkgPath, pkgName string) bool {
	return pkgName == "main" || path.Base(strings.TrimSuffix(pkgPath, "_test")) == "config"
}
