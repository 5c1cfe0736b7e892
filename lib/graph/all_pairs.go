package graph

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/xlog"
)

type allPairsCfg struct {
	workers int
	logger  xlog.XLogger
}

type AllPairsOption func(*allPairsCfg)

// WithAllPairsWorkers sets the worker pool size, defaults to GOMAXPROCS.
func WithAllPairsWorkers(workers int) AllPairsOption {
	return func(cfg *allPairsCfg) {
		if workers > 0 {
			cfg.workers = workers
		}
	}
}

func WithAllPairsLogger(logger xlog.XLogger) AllPairsOption {
	return func(cfg *allPairsCfg) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// AllPairsShortestPaths runs one Dijkstra per source vertex on a worker pool.
// Every worker owns its heap and distance maps, the graph is only read.
// The results of the finished sources are returned along with the combined
// failures of the others, a cancelled ctx fails every source not started yet.
func AllPairsShortestPaths[V comparable](
	ctx context.Context,
	g *Graph[V],
	opts ...AllPairsOption,
) (map[V]*ShortestPaths[V], error) {
	if g == nil {
		return nil, infra.WrapErrorStack(ErrNilGraph)
	}
	cfg := &allPairsCfg{
		workers: runtime.GOMAXPROCS(0),
		logger:  xlog.Default(),
	}
	for _, o := range opts {
		o(cfg)
	}
	logger := cfg.logger.Named("graph")

	pool, err := ants.NewPool(
		cfg.workers,
		ants.WithLogger(xlog.NewAntsXLogger(cfg.logger)),
		ants.WithPanicHandler(func(r any) {
			logger.Error(nil, "all pairs worker panic", zap.Any("recover", r))
		}),
	)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "all pairs worker pool init failed")
	}
	defer pool.Release()

	var (
		lock    sync.Mutex
		wg      sync.WaitGroup
		merr    error
		results = make(map[V]*ShortestPaths[V], len(g.vertices))
	)
	collect := func(src V, sp *ShortestPaths[V], err error) {
		lock.Lock()
		defer lock.Unlock()
		if err != nil {
			merr = multierr.Append(merr, err)
			return
		}
		results[src] = sp
	}

	for _, src := range g.vertices {
		wg.Add(1)
		src := src
		task := func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				collect(src, nil, infra.WrapErrorStackWithMessage(err, fmt.Sprintf("source %v", src)))
				return
			}
			sp, err := Dijkstra[V](g, src)
			collect(src, sp, err)
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			collect(src, nil, infra.WrapErrorStackWithMessage(err, fmt.Sprintf("source %v submit failed", src)))
		}
	}
	wg.Wait()

	if merr != nil {
		logger.Error(merr, "all pairs shortest paths partially failed",
			zap.Int("failed", len(multierr.Errors(merr))),
			zap.Int("succeeded", len(results)),
		)
	}
	return results, merr
}
