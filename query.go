package vault

import (
	"fmt"
)

// Query modifiers understood by buckets and indexes. The empty modifier
// looks up a single key, "prefix" returns everything under the key.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single key and value returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers ABCI queries against a read only view of the
// store.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister is implemented by every extension that exposes state,
// usually as a package level RegisterQuery function.
type QueryRegister func(QueryRouter)

// QueryRouter dispatches a query by its path, for example /savings or
// /wallets.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls every register function with this router.
func (r QueryRouter) RegisterAll(regs ...QueryRegister) {
	for _, reg := range regs {
		reg(r)
	}
}

// Register panics when path is already taken, since two extensions
// claiming one path is a wiring bug.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("Re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns nil for unknown paths.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
