// Command check_boundaries fails when the client-distribution core imports
// outward: domain, ports and application may only reach stdlib, inner layers
// and the few libraries listed here.
package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const modulePrefix = "roster/contexts/sales-ops/client-distribution"

// allowedImports lists, per layer directory, the non-stdlib prefixes that
// layer may import. Layers missing here are not checked.
var allowedImports = map[string][]string{
	"domain":      {modulePrefix + "/domain", "golang.org/x/text"},
	"ports":       {modulePrefix + "/domain"},
	"application": {modulePrefix + "/application", modulePrefix + "/domain", modulePrefix + "/ports"},
}

type violation struct {
	File   string
	Line   int
	Import string
}

func (v violation) String() string {
	return fmt.Sprintf("%s:%d imports %q", v.File, v.Line, v.Import)
}

func main() {
	violations, err := collectViolations("contexts/sales-ops/client-distribution")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}
	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Println("-", v)
	}
	os.Exit(1)
}

// collectViolations walks the module root in lexical order, so the result is
// already sorted by file.
func collectViolations(root string) ([]violation, error) {
	var violations []violation
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		layer := strings.Split(filepath.ToSlash(rel), "/")[0]
		allowed, checked := allowedImports[layer]
		if !checked {
			return nil
		}
		found, err := fileViolations(path, allowed)
		violations = append(violations, found...)
		return err
	})
	return violations, err
}

func fileViolations(path string, allowed []string) ([]violation, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return nil, err
	}
	var violations []violation
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)
		if !importAllowed(importPath, allowed) {
			violations = append(violations, violation{
				File:   filepath.ToSlash(path),
				Line:   fset.Position(imp.Pos()).Line,
				Import: importPath,
			})
		}
	}
	return violations, nil
}

func importAllowed(importPath string, allowed []string) bool {
	if isStdlib(importPath) {
		return true
	}
	for _, prefix := range allowed {
		if importPath == prefix || strings.HasPrefix(importPath, prefix+"/") {
			return true
		}
	}
	return false
}

// Stdlib paths have no dot in their first element. The module path "roster"
// has none either, so it is excluded explicitly.
func isStdlib(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return first != "roster" && !strings.Contains(first, ".")
}
