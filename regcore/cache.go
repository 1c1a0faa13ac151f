package regcore

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// bytesPerOp is the size an Op contributes toward a ProgramCache's byte
// budget. The original engine charges `bytecode.size() * sizeof(ByteCodeValueType)`
// (RegexMatcher.cpp's cache_parse_result); Op here is a fixed-size struct
// rather than a variable-width opcode stream, so a flat per-Op charge is
// the equivalent approximation.
const bytesPerOp = 64

// maxRegexCachedBytecodeSize mirrors MaxRegexCachedBytecodeSize, the 1 MiB
// ceiling RegexMatcher.cpp enforces across every cached compile result.
const maxRegexCachedBytecodeSize = 1 << 20

type cacheKey struct {
	source  string
	options Flag
}

// ProgramCache is the bounded, FIFO-evicted compile cache §2/§12 describes,
// keyed by (pattern source, options). It is a direct Go analogue of
// RegexMatcher.cpp's `s_parser_cache` OrderedHashMap plus `s_cached_bytecode_size`:
// github.com/wk8/go-ordered-map/v2 supplies the same "iterate in insertion
// order, evict the oldest" structure AK::OrderedHashMap provides there, via
// its Oldest()/Delete() pair standing in for take_first().
type ProgramCache struct {
	entries    *orderedmap.OrderedMap[cacheKey, *CompiledPattern]
	totalBytes int
	maxBytes   int
}

// NewProgramCache returns an empty cache bounded at the spec's default 1 MiB
// budget.
func NewProgramCache() *ProgramCache {
	return &ProgramCache{
		entries:  orderedmap.New[cacheKey, *CompiledPattern](),
		maxBytes: maxRegexCachedBytecodeSize,
	}
}

// Get returns a previously cached CompiledPattern for (source, options), if
// present. Unlike an LRU cache, a hit never reorders the entry - the
// original never "refreshes" an entry's position on reuse, only on
// insertion - so repeated lookups of the same pattern do not protect it
// from eventual FIFO eviction.
func (c *ProgramCache) Get(source string, options Flag) (*CompiledPattern, bool) {
	return c.entries.Get(cacheKey{source: source, options: options})
}

// Insert records pattern under (source, options), evicting the oldest
// entries first if needed to stay within the byte budget, exactly as
// cache_parse_result's `while` loop does. A pattern whose own bytecode
// already exceeds the budget is never cached, matching the early return in
// cache_parse_result when `bytecode_size > MaxRegexCachedBytecodeSize`.
func (c *ProgramCache) Insert(source string, options Flag, pattern *CompiledPattern) {
	key := cacheKey{source: source, options: options}
	if _, exists := c.entries.Get(key); exists {
		return
	}

	size := len(pattern.Program.Ops) * bytesPerOp
	if size > c.maxBytes {
		return
	}

	for c.totalBytes+size > c.maxBytes {
		oldest := c.entries.Oldest()
		if oldest == nil {
			break
		}
		evicted, _ := c.entries.Delete(oldest.Key)
		c.totalBytes -= len(evicted.Program.Ops) * bytesPerOp
	}

	c.entries.Set(key, pattern)
	c.totalBytes += size
}

// Len reports the number of cached patterns, mainly for tests.
func (c *ProgramCache) Len() int { return c.entries.Len() }
