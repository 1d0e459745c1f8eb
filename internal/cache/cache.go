package cache

import (
	"sync"

	"github.com/csssyntax/csssyntax/internal/logger"
	"github.com/csssyntax/csssyntax/internal/syntax_ast"
)

// This is a cache of compiled grammars keyed by the grammar text. The idea is
// to be able to check many values against the same grammar while only
// parsing and resolving it once. This only works if:
//
//   - The trees in the cache must be considered immutable. There is no way to
//     enforce this in Go, but please be disciplined about this. The matcher
//     only reads trees, so it's fine to share them between callers.
//
//   - A resolved tree depends on the definition registry used to resolve it.
//     A cache must only ever be used together with one registry, which is why
//     each validator owns its own cache.
//
//   - The messages produced while compiling depend on the log overrides. The
//     cache must only be used with logs that share the same overrides.
//
// Grammar text can come from callers, so the cache is emptied once it holds
// "MaxGrammarCacheEntries" entries and starts filling up again.
type GrammarCache struct {
	mutex   sync.Mutex
	entries map[string]*grammarCacheEntry
}

type grammarCacheEntry struct {
	tree syntax_ast.Tree
	msgs []logger.Msg
	ok   bool
}

const MaxGrammarCacheEntries = 1024

type CompileFunc func(log logger.Log, grammar string) (syntax_ast.Tree, bool)

func MakeGrammarCache() *GrammarCache {
	return &GrammarCache{
		entries: make(map[string]*grammarCacheEntry),
	}
}

func (c *GrammarCache) Compile(log logger.Log, grammar string, compile CompileFunc) (syntax_ast.Tree, bool) {
	// Check the cache
	entry := func() *grammarCacheEntry {
		c.mutex.Lock()
		defer c.mutex.Unlock()
		return c.entries[grammar]
	}()

	// Cache hit
	if entry != nil {
		for _, msg := range entry.msgs {
			log.AddMsg(msg)
		}
		return entry.tree, entry.ok
	}

	// Cache miss
	tempLog := logger.NewDeferLog(log.Level, log.Overrides)
	tree, ok := compile(tempLog, grammar)
	msgs := tempLog.Done()
	for _, msg := range msgs {
		log.AddMsg(msg)
	}

	// Create the cache entry
	entry = &grammarCacheEntry{
		tree: tree,
		msgs: msgs,
		ok:   ok,
	}

	// Save for next time
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if _, exists := c.entries[grammar]; !exists && len(c.entries) >= MaxGrammarCacheEntries {
		c.entries = make(map[string]*grammarCacheEntry)
	}
	c.entries[grammar] = entry
	return tree, ok
}

func (c *GrammarCache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}
