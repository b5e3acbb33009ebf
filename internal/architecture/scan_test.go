// Where: internal/architecture/scan_test.go
// What: Source scanner shared by the architecture guard tests.
// Why: Every guard walks the same production files under internal/.
package architecture

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	pathpkg "path"
	"path/filepath"
	"strings"
	"testing"
)

const internalImportPrefix = "github.com/poruru/prefab/internal/"

// sourceFile is one parsed non-test Go file.
type sourceFile struct {
	rel  string // path relative to internal/, slash separated
	pkg  string // package directory relative to internal/
	fset *token.FileSet
	ast  *ast.File
}

func (f sourceFile) layer() string {
	layer, _, _ := strings.Cut(f.pkg, "/")
	return layer
}

func (f sourceFile) imports() []string {
	paths := make([]string, 0, len(f.ast.Imports))
	for _, imp := range f.ast.Imports {
		paths = append(paths, strings.Trim(imp.Path.Value, "\""))
	}
	return paths
}

// aliases maps the local name of each import to its path.
func (f sourceFile) aliases() map[string]string {
	aliases := map[string]string{}
	for _, imp := range f.ast.Imports {
		importPath := strings.Trim(imp.Path.Value, "\"")
		alias := pathpkg.Base(importPath)
		if isMajorVersion(alias) {
			alias = pathpkg.Base(pathpkg.Dir(importPath))
		}
		if imp.Name != nil {
			if imp.Name.Name == "_" || imp.Name.Name == "." {
				continue
			}
			alias = imp.Name.Name
		}
		aliases[alias] = importPath
	}
	return aliases
}

// isMajorVersion reports a module major version suffix such as "v10".
func isMajorVersion(segment string) bool {
	digits, ok := strings.CutPrefix(segment, "v")
	return ok && digits != "" && strings.Trim(digits, "0123456789") == ""
}

func (f sourceFile) line(pos token.Pos) int {
	return f.fset.Position(pos).Line
}

// scanInternal parses every production Go file below internal/.
func scanInternal(t *testing.T, mode parser.Mode) []sourceFile {
	t.Helper()
	root := resolveInternalRoot(t)
	fset := token.NewFileSet()
	var files []sourceFile

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".go") || strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		parsed, err := parser.ParseFile(fset, path, nil, mode)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		files = append(files, sourceFile{rel: rel, pkg: pathpkg.Dir(rel), fset: fset, ast: parsed})
		return nil
	})
	if err != nil {
		t.Fatalf("scan internal packages: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("no Go files found under %s", root)
	}
	return files
}

func resolveInternalRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	return filepath.Clean(filepath.Join(wd, ".."))
}
