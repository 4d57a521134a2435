package glshaders

import (
	"os"
	"path/filepath"
	"sync"
)

// Canonical per-stage source file names.
const (
	StageVertex   = "opengl_vertex.glsl"
	StageFragment = "opengl_fragment.glsl"
	StageGeometry = "opengl_geometry.glsl"
)

// PathResolver locates the source file of a shader stage. Resolve returns
// the empty string when no file exists for the pair.
type PathResolver interface {
	Resolve(shaderName, stageFile string) string
}

// DirResolver resolves stage files against an override directory first and
// a default data directory second, memoizing every result including misses.
// It is safe for concurrent use.
type DirResolver struct {
	// OverrideDir is checked first and may be empty.
	OverrideDir string
	// DataDir holds the installed shader sources.
	DataDir string

	mu    sync.Mutex
	cache map[string]string
}

func (r *DirResolver) Resolve(shaderName, stageFile string) string {
	combined := filepath.Join(shaderName, stageFile)

	r.mu.Lock()
	path, ok := r.cache[combined]
	r.mu.Unlock()
	if ok {
		return path
	}

	if r.OverrideDir != "" {
		p := filepath.Join(r.OverrideDir, combined)
		if pathExists(p) {
			path = p
		}
	}
	if path == "" && r.DataDir != "" {
		p := filepath.Join(r.DataDir, combined)
		if pathExists(p) {
			path = p
		}
	}

	// An empty result is cached too.
	r.mu.Lock()
	if r.cache == nil {
		r.cache = make(map[string]string)
	}
	r.cache[combined] = path
	r.mu.Unlock()
	return path
}

func pathExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

type srcKey struct {
	name  string
	stage string
}

// SourceCache memoizes raw shader source text by (shader name, stage file).
// Entries are never evicted. It is confined to the registry's designated
// goroutine and needs no locking of its own.
type SourceCache struct {
	resolver PathResolver
	programs map[srcKey]string
}

// NewSourceCache returns a cache backed by resolver. A nil resolver
// disables filesystem lookups: only inserted text is served.
func NewSourceCache(resolver PathResolver) *SourceCache {
	return &SourceCache{
		resolver: resolver,
		programs: make(map[srcKey]string),
	}
}

// Insert stores program text for a stage, overwriting any prior entry.
// If preferLocal is set and the resolver locates a non-empty file for the
// pair, that file's content is stored instead of program.
func (c *SourceCache) Insert(shaderName, stageFile, program string, preferLocal bool) {
	key := srcKey{shaderName, stageFile}
	if preferLocal && c.resolver != nil {
		if path := c.resolver.Resolve(shaderName, stageFile); path != "" {
			if p := readFile(path); p != "" {
				c.programs[key] = p
				return
			}
		}
	}
	c.programs[key] = program
}

// Get returns stored text or the empty string. It never touches the
// filesystem.
func (c *SourceCache) Get(shaderName, stageFile string) string {
	return c.programs[srcKey{shaderName, stageFile}]
}

// GetOrLoad primarily fetches from the cache and secondarily tries to read
// from the filesystem. An unresolvable or unreadable stage yields the empty
// string, which downstream means "stage absent".
func (c *SourceCache) GetOrLoad(shaderName, stageFile string) string {
	key := srcKey{shaderName, stageFile}
	if p, ok := c.programs[key]; ok {
		return p
	}
	if c.resolver == nil {
		return ""
	}
	path := c.resolver.Resolve(shaderName, stageFile)
	if path == "" {
		Logger().Info("no path found for shader stage", "shader", shaderName, "stage", stageFile)
		return ""
	}
	Logger().Info("loading shader stage", "path", path)
	p := readFile(path)
	if p != "" {
		c.programs[key] = p
	}
	return p
}

func readFile(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(b)
}
