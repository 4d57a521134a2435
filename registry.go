// Package glshaders memoizes compiled GPU shader programs by logical name,
// preprocessor constant set and base blend mode. Each distinct triple is a
// shader variant identified by a stable small integer id; id 0 is the
// reserved "no shader" sentinel.
//
// All generation runs synchronously on the goroutine that constructed the
// registry, which must stay locked to the OS thread owning the GL context.
// Lookups of already-generated records are safe from any goroutine.
package glshaders

import (
	"fmt"
	"sync"
)

// ProgramInfo is one generated shader variant record. The zero value is the
// sentinel: empty name, MatSolid, handle 0.
type ProgramInfo struct {
	// Name is the logical shader name. Empty marks the sentinel record.
	Name string
	// InputConstants are the caller-supplied constants, part of the cache
	// key. Setter-contributed constants are not stored.
	InputConstants Constants
	// BaseMaterial seeds the program's blend behavior.
	BaseMaterial Material
	// Program is the compiled handle assigned by the driver.
	Program Handle
}

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	// Resolver locates stage source files. nil disables filesystem lookups:
	// only text inserted through InsertSourceOverride is compiled.
	Resolver PathResolver
	// Graphics feeds the built-in FeatureConstants setter.
	Graphics GraphicsConfig
	// NoBuiltins skips registration of FeatureConstants and SceneUniforms.
	NoBuiltins bool
}

// Registry caches and generates shader variants. Construct with
// [NewRegistry] on the goroutine that owns the GL context; that goroutine
// becomes the designated one for Get, InsertSourceOverride, RebuildAll and
// Close. Info may be called from any goroutine.
type Registry struct {
	designated uint64
	driver     Driver
	sources    *SourceCache

	// infos is append-only and indexed by shader id. Index 0 is the
	// sentinel. Ids are never reused or renumbered, even across rebuilds.
	mu    sync.Mutex
	infos []ProgramInfo

	constantSetters  []ConstantSetter
	uniformFactories []UniformSetterFactory
}

// NewRegistry creates a registry bound to driver. The calling goroutine
// becomes the designated generation goroutine.
func NewRegistry(driver Driver, cfg RegistryConfig) *Registry {
	r := &Registry{
		designated: goroutineID(),
		driver:     driver,
		sources:    NewSourceCache(cfg.Resolver),
	}
	// Sentinel record at id 0, never matched by lookups.
	r.infos = append(r.infos, ProgramInfo{})
	if !cfg.NoBuiltins {
		r.AddConstantSetter(&FeatureConstants{Config: cfg.Graphics})
		r.AddUniformSetterFactory(SceneUniformsFactory{})
	}
	return r
}

// Get returns the id of the shader variant (name, constants, base),
// generating and caching it on first request. An empty name yields the
// sentinel id 0.
//
// Get must be called from the designated goroutine. A call from any other
// goroutine is logged and returns (0, ErrNotDesignatedGoroutine) without
// touching the cache.
func (r *Registry) Get(name string, constants Constants, base Material) (uint32, error) {
	if goroutineID() != r.designated {
		Logger().Error("shader requested outside the designated goroutine", "shader", name)
		return 0, ErrNotDesignatedGoroutine
	}
	if name == "" {
		Logger().Info("empty shader name requested")
		return 0, nil
	}

	r.mu.Lock()
	for i := range r.infos {
		info := &r.infos[i]
		if info.Name == name && info.BaseMaterial == base &&
			info.InputConstants.Equal(&constants) {
			r.mu.Unlock()
			return uint32(i), nil
		}
	}
	r.mu.Unlock()

	info, err := r.generate(name, &constants, base)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	id := uint32(len(r.infos))
	r.infos = append(r.infos, info)
	r.mu.Unlock()
	return id, nil
}

// GetTile is a convenience overload that derives the constant set
// (MATERIAL_TYPE, DRAWTYPE) and base blend mode from a tile material kind.
func (r *Registry) GetTile(name string, tile TileMaterial, draw DrawKind) (uint32, error) {
	var c Constants
	c.SetInt("MATERIAL_TYPE", int(tile))
	c.SetInt("DRAWTYPE", int(draw))
	return r.Get(name, c, tile.baseMaterial())
}

// Info returns the record for id. An out-of-range id returns the sentinel
// record (empty name); callers must treat an empty name as "no shader".
// Info is safe to call from any goroutine.
func (r *Registry) Info(id uint32) ProgramInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id >= uint32(len(r.infos)) {
		return ProgramInfo{}
	}
	return r.infos[id]
}

// AddConstantSetter registers a generation-time constant contributor.
// Setters apply only to programs generated after registration; existing
// records pick them up on the next RebuildAll.
func (r *Registry) AddConstantSetter(s ConstantSetter) {
	r.constantSetters = append(r.constantSetters, s)
}

// AddUniformSetterFactory registers a factory creating one per-program
// draw-time uniform setter. Like constant setters, factories apply to
// future generations only.
func (r *Registry) AddUniformSetterFactory(f UniformSetterFactory) {
	r.uniformFactories = append(r.uniformFactories, f)
}

// InsertSourceOverride stores stage source text for a shader, preferring a
// resolvable local file over the supplied text. Designated goroutine only.
func (r *Registry) InsertSourceOverride(name, stageFile, program string) error {
	if goroutineID() != r.designated {
		Logger().Error("source override inserted outside the designated goroutine",
			"shader", name, "stage", stageFile)
		return ErrNotDesignatedGoroutine
	}
	r.sources.Insert(name, stageFile, program, true)
	return nil
}

// RebuildAll deletes every compiled program and regenerates each record in
// place from its stored name, constants and base material. Ids are not
// renumbered. On error the registry is left degraded — already-rebuilt
// records hold fresh handles, the rest hold invalidated ones — and needs
// full reinitialization. Designated goroutine only.
func (r *Registry) RebuildAll() error {
	if goroutineID() != r.designated {
		Logger().Error("rebuild requested outside the designated goroutine")
		return ErrNotDesignatedGoroutine
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.infos {
		if r.infos[i].Name == "" {
			continue
		}
		r.driver.Delete(r.infos[i].Program)
		r.infos[i].Program = Handle(MatSolid) // invalidate
	}

	Logger().Info("recreating shaders", "count", len(r.infos))

	for i := range r.infos {
		info := &r.infos[i]
		if info.Name == "" {
			continue
		}
		rebuilt, err := r.generate(info.Name, &info.InputConstants, info.BaseMaterial)
		if err != nil {
			return fmt.Errorf("rebuilding shader %q: %w", info.Name, err)
		}
		*info = rebuilt
	}
	return nil
}

// Close releases every compiled program exactly once and clears the table.
// Safe to call on a registry that never generated anything. Designated
// goroutine only.
func (r *Registry) Close() error {
	if goroutineID() != r.designated {
		Logger().Error("close requested outside the designated goroutine")
		return ErrNotDesignatedGoroutine
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for i := range r.infos {
		if r.infos[i].Name != "" {
			r.driver.Delete(r.infos[i].Program)
			n++
		}
	}
	r.infos = r.infos[:0]
	Logger().Info("registry closed", "deleted", n)
	return nil
}
