package forge

import (
	"os"
	"path/filepath"

	"github.com/apexforge/afns/internal/value"
)

// NewFsModule builds `forge.fs` (spec §4.4): synchronous file I/O, every
// operation returning result<T,str> for its I/O outcome rather than
// propagating a Go error, and every path gated on the "fs" capability
// and joined under ctx.Env.Sandbox when set, same as the teacher's
// effects.fsReadFile. A missing capability or a non-string argument is
// returned as a Go error, not as an Err value.
func NewFsModule(ctx *Context) value.Module {
	m := value.NewModule("forge.fs")
	mem := *m.Members

	resolve := func(path string) string {
		if ctx.Env.Sandbox == "" {
			return path
		}
		return filepath.Join(ctx.Env.Sandbox, path)
	}
	guard := func() error { return ctx.RequireCap("fs") }

	mem["read_to_string"] = &value.Builtin{Name: "forge.fs.read_to_string", Fn: func(args []value.Value) (value.Value, error) {
		if err := guard(); err != nil {
			return nil, err
		}
		path, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		content, rerr := os.ReadFile(resolve(path))
		if rerr != nil {
			return value.Err(value.Str{Val: rerr.Error()}), nil
		}
		return value.Ok(value.Str{Val: string(content)}), nil
	}}
	mem["write_string"] = &value.Builtin{Name: "forge.fs.write_string", Fn: func(args []value.Value) (value.Value, error) {
		if err := guard(); err != nil {
			return nil, err
		}
		path, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		content, err := strArg(args, 1)
		if err != nil {
			return nil, err
		}
		if werr := os.WriteFile(resolve(path), []byte(content), 0o644); werr != nil {
			return value.Err(value.Str{Val: werr.Error()}), nil
		}
		return value.Ok(value.Null{}), nil
	}}
	mem["exists"] = &value.Builtin{Name: "forge.fs.exists", Fn: func(args []value.Value) (value.Value, error) {
		if err := guard(); err != nil {
			return nil, err
		}
		path, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		_, serr := os.Stat(resolve(path))
		return value.Ok(value.Bool{Val: serr == nil}), nil
	}}
	mem["remove"] = &value.Builtin{Name: "forge.fs.remove", Fn: func(args []value.Value) (value.Value, error) {
		if err := guard(); err != nil {
			return nil, err
		}
		path, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		if rerr := os.Remove(resolve(path)); rerr != nil {
			return value.Err(value.Str{Val: rerr.Error()}), nil
		}
		return value.Ok(value.Null{}), nil
	}}
	mem["list_dir"] = &value.Builtin{Name: "forge.fs.list_dir", Fn: func(args []value.Value) (value.Value, error) {
		if err := guard(); err != nil {
			return nil, err
		}
		path, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		entries, derr := os.ReadDir(resolve(path))
		if derr != nil {
			return value.Err(value.Str{Val: derr.Error()}), nil
		}
		names := make([]value.Value, len(entries))
		for i, e := range entries {
			names[i] = value.Str{Val: e.Name()}
		}
		return value.Ok(value.NewVec(names)), nil
	}}

	return m
}
