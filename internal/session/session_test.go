package session

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/apexforge/afns/internal/ast"
	"github.com/apexforge/afns/internal/loader"
	"github.com/apexforge/afns/internal/value"
	"github.com/stretchr/testify/require"
)

// fixtureParser maps a file's on-disk bytes (used as a lookup key) back
// to a hand-built ast.File, sidestepping the out-of-scope lexer/parser
// (spec §1 Non-goals) the same way the teacher's evaluator tests
// construct *ast.* values directly.
func fixtureParser(files map[string]*ast.File) loader.ParseFunc {
	return func(path string, src []byte) (*ast.File, error) {
		return files[string(src)], nil
	}
}

func intLit(n int64) *ast.Literal { return &ast.Literal{Kind: ast.IntLit, Value: n} }

func apexReturning(n int64) *ast.File {
	return &ast.File{
		Items: []ast.Item{
			&ast.FuncDecl{
				Name: "apex",
				Body: &ast.Block{Stmts: []ast.Stmt{
					&ast.ReturnStmt{Value: intLit(n)},
				}},
			},
		},
	}
}

func writeEntry(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.afml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRunCallsApexAndReturnsItsValue(t *testing.T) {
	entryPath := writeEntry(t, "entry")
	sess := New(Options{
		Parse: fixtureParser(map[string]*ast.File{"entry": apexReturning(42)}),
	})
	result, err := sess.Run(entryPath)
	require.NoError(t, err)
	require.Equal(t, value.Int{Val: 42}, result)
}

func TestRunAsyncApexDrivesExecutorToCompletion(t *testing.T) {
	entryPath := writeEntry(t, "entry")
	asyncApex := apexReturning(7)
	asyncApex.Items[0].(*ast.FuncDecl).Async = true
	sess := New(Options{
		Parse: fixtureParser(map[string]*ast.File{"entry": asyncApex}),
	})
	result, err := sess.Run(entryPath)
	require.NoError(t, err)
	require.Equal(t, value.Int{Val: 7}, result)
}

func TestRunMissingApexErrors(t *testing.T) {
	entryPath := writeEntry(t, "entry")
	sess := New(Options{
		Parse: fixtureParser(map[string]*ast.File{"entry": {}}),
	})
	_, err := sess.Run(entryPath)
	require.Error(t, err)
}

func TestRunToStderrReportsRuntimeErrorWithExitOne(t *testing.T) {
	entryPath := writeEntry(t, "entry")
	throwing := &ast.File{Items: []ast.Item{&ast.FuncDecl{
		Name: "apex",
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ExprStmt{Expr: &ast.CallExpr{
				Callee: &ast.Ident{Name: "forge"},
			}},
		}},
	}}}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	sess := New(Options{
		Parse:  fixtureParser(map[string]*ast.File{"entry": throwing}),
		Stdout: stdout,
		Stderr: stderr,
	})
	code := sess.RunToStderr(entryPath)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "error:")
}

func TestCheckSucceedsWithoutRunningApex(t *testing.T) {
	entryPath := writeEntry(t, "entry")
	sideEffecting := apexReturning(1)
	sess := New(Options{
		Parse: fixtureParser(map[string]*ast.File{"entry": sideEffecting}),
	})
	require.NoError(t, sess.Check(entryPath))
}
