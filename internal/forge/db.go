package forge

import (
	"fmt"
	"sync"

	"github.com/apexforge/afns/internal/value"
)

// NewDbModule builds `forge.db` (spec §4.4): a synchronous, capability-
// gated key-value store returning result<T,str>. No database driver
// appears anywhere in the retrieved example pack (grep across every
// go.mod found no database/sql, lib/pq, go-sql-driver, redis,
// mongo-driver, bbolt, badger, or sqlite dependency), so this is an
// in-memory map-backed store instead of wiring a real driver — see
// DESIGN.md for the dropped-dependency justification.
func NewDbModule(ctx *Context) value.Module {
	m := value.NewModule("forge.db")
	mem := *m.Members
	store := newMemStore()

	mem["put"] = &value.Builtin{Name: "forge.db.put", Fn: func(args []value.Value) (value.Value, error) {
		if err := ctx.RequireCap("db"); err != nil {
			return nil, err
		}
		key, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, fmt.Errorf("put: missing value argument")
		}
		store.put(key, args[1])
		return value.Ok(value.Null{}), nil
	}}
	mem["get"] = &value.Builtin{Name: "forge.db.get", Fn: func(args []value.Value) (value.Value, error) {
		if err := ctx.RequireCap("db"); err != nil {
			return nil, err
		}
		key, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		if v, ok := store.get(key); ok {
			return value.Ok(value.Some(v)), nil
		}
		return value.Ok(value.None()), nil
	}}
	mem["delete"] = &value.Builtin{Name: "forge.db.delete", Fn: func(args []value.Value) (value.Value, error) {
		if err := ctx.RequireCap("db"); err != nil {
			return nil, err
		}
		key, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		store.delete(key)
		return value.Ok(value.Null{}), nil
	}}
	mem["keys"] = &value.Builtin{Name: "forge.db.keys", Fn: func(args []value.Value) (value.Value, error) {
		if err := ctx.RequireCap("db"); err != nil {
			return nil, err
		}
		keys := store.keys()
		elems := make([]value.Value, len(keys))
		for i, k := range keys {
			elems[i] = value.Str{Val: k}
		}
		return value.Ok(value.NewVec(elems)), nil
	}}

	return m
}

// memStore is the in-memory backing for forge.db; safe for the
// single-threaded executor today and for a future concurrent one.
type memStore struct {
	mu   sync.RWMutex
	data map[string]value.Value
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]value.Value)}
}

func (s *memStore) put(key string, v value.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = v
}

func (s *memStore) get(key string) (value.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *memStore) delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *memStore) keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}
