package inmemoryhost

import (
	"fmt"
	"sync"

	"github.com/hashicorp/hcl/v2/hclparse"
)

// IncludeOnce loads HCL component files with require-once semantics: a
// file's content is parsed the first time it is included and served from
// the parser's cache afterwards, so top-level side effects (here, the parse
// itself) run at most once per path.
type IncludeOnce struct {
	mu     sync.Mutex
	parser *hclparse.Parser
	loads  map[string]int
}

// NewIncludeOnce creates an empty include cache.
func NewIncludeOnce() *IncludeOnce {
	return &IncludeOnce{
		parser: hclparse.NewParser(),
		loads:  make(map[string]int),
	}
}

// IncludeOnce implements host.Includer.
func (i *IncludeOnce) IncludeOnce(path string) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, seen := i.loads[path]; seen {
		i.loads[path]++
		return false, nil
	}

	_, diags := i.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return false, fmt.Errorf("include %s: %w", path, diags)
	}
	i.loads[path] = 1
	return true, nil
}

// Loads returns how many times path was requested. The parse itself only
// ever ran once; tests use this to verify idempotency.
func (i *IncludeOnce) Loads(path string) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.loads[path]
}

// ParsedCount returns the number of distinct files actually parsed.
func (i *IncludeOnce) ParsedCount() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.loads)
}
