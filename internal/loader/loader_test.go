package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apexforge/afns/internal/ast"
	"github.com/stretchr/testify/require"
)

func fakeParse(path string, src []byte) (*ast.File, error) {
	return &ast.File{ModulePath: string(src)}, nil
}

func writeSrc(t *testing.T, dir, rel, body string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(body), 0644))
}

func TestLoadResolvesFlatAfmlFile(t *testing.T) {
	dir := t.TempDir()
	writeSrc(t, dir, "a/b.afml", "flat")
	l := New(Roots{ProjectSrc: dir}, fakeParse)
	u, err := l.Load("a/b")
	require.NoError(t, err)
	require.Equal(t, "flat", u.File.ModulePath)
}

func TestLoadResolvesDirectoryModAfml(t *testing.T) {
	dir := t.TempDir()
	writeSrc(t, dir, "pkg/mod.afml", "dirmod")
	l := New(Roots{ProjectSrc: dir}, fakeParse)
	u, err := l.Load("pkg")
	require.NoError(t, err)
	require.Equal(t, "dirmod", u.File.ModulePath)
}

func TestLoadCachesByIdentity(t *testing.T) {
	dir := t.TempDir()
	writeSrc(t, dir, "a.afml", "once")
	l := New(Roots{ProjectSrc: dir}, fakeParse)
	u1, err := l.Load("a")
	require.NoError(t, err)
	u2, err := l.Load("a.afml") // .afml suffix normalizes to the same identity
	require.NoError(t, err)
	require.Same(t, u1, u2)
}

func TestLoadSearchesTiersInOrder(t *testing.T) {
	stdlib := t.TempDir()
	projectSrc := t.TempDir()
	writeSrc(t, stdlib, "str.afml", "from-stdlib")
	writeSrc(t, projectSrc, "str.afml", "from-project")
	l := New(Roots{Stdlib: stdlib, ProjectSrc: projectSrc}, fakeParse)
	u, err := l.Load("str")
	require.NoError(t, err)
	require.Equal(t, "from-stdlib", u.File.ModulePath)
}

func TestLoadMissingModuleErrors(t *testing.T) {
	l := New(Roots{ProjectSrc: t.TempDir()}, fakeParse)
	_, err := l.Load("nope")
	require.Error(t, err)
}

func TestLoadAllLoadsEachImportOfEntry(t *testing.T) {
	dir := t.TempDir()
	writeSrc(t, dir, "a.afml", "a-body")
	writeSrc(t, dir, "b.afml", "b-body")
	l := New(Roots{ProjectSrc: dir}, fakeParse)
	entry := &ast.File{Imports: []*ast.ImportDecl{{Path: "a"}, {Path: "b"}}}
	units, err := l.LoadAll(entry)
	require.NoError(t, err)
	require.Len(t, units, 2)
}

func TestUnitMarkLoadedRunsOnce(t *testing.T) {
	u := &Unit{Identity: "x"}
	calls := 0
	for i := 0; i < 3; i++ {
		err := u.MarkLoaded(func() error { calls++; return nil })
		require.NoError(t, err)
	}
	require.Equal(t, 1, calls)
}
