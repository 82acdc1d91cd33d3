package tools

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/usestring/xmltypes/internal/cache"
	"github.com/usestring/xmltypes/internal/config"
	"github.com/usestring/xmltypes/pkg/xmltypes"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config *config.Config
	Engine *xmltypes.Engine
	Cache  *cache.ResultCache

	group singleflight.Group
	// run replaces Engine.GenerateSamples when set.
	run func(bodies [][]byte, opts xmltypes.Options) (*xmltypes.Result, error)
}

// Generation is the result of Deps.Generate.
type Generation struct {
	Result *xmltypes.Result
	// Key identifies the result in the cache.
	Key    string
	Cached bool
}

// Generate runs the engine for the given samples, sharing the work of
// identical concurrent requests and serving repeated ones from the cache.
// The engine itself is not interruptible; when ctx ends first the caller
// gets ctx.Err() and the run completes in the background, filling the cache.
func (d *Deps) Generate(ctx context.Context, bodies [][]byte, opts xmltypes.Options) (*Generation, error) {
	key := cache.Key(bodies, opts)
	if d.Cache != nil {
		if res, ok := d.Cache.Get(key); ok {
			return &Generation{Result: res, Key: key, Cached: true}, nil
		}
	}

	ch := d.group.DoChan(key, func() (any, error) {
		run := d.Engine.GenerateSamples
		if d.run != nil {
			run = d.run
		}
		res, err := run(bodies, opts)
		if err != nil {
			return nil, err
		}
		if d.Cache != nil {
			d.Cache.Put(key, res)
		}
		return res, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		res, ok := r.Val.(*xmltypes.Result)
		if !ok {
			return nil, fmt.Errorf("unexpected result type %T", r.Val)
		}
		return &Generation{Result: res, Key: key}, nil
	}
}
