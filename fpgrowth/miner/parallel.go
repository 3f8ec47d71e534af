package miner

import (
	"context"

	"golang.org/x/sync/errgroup"
	"rds-fpgrowth/fpgrowth/fptree"
	"rds-fpgrowth/rock-share/base/logger"
)

// mineParallel 顶层头表的每一项各自建条件树, 互不共享可变状态, 结果统一收集到c
func (m *Miner) mineParallel(ctx context.Context, tree *fptree.Tree, c *collector) error {
	header := tree.Header()
	logger.Debugf("mining %d top-level items with %d workers", len(header), m.cfg.Workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.Workers)
	for i := len(header) - 1; i >= 0; i-- {
		h := header[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stack := m.expand(nil, nil, tree, h, c.emit)
			return m.drain(gctx, stack, c.emit)
		})
	}
	return g.Wait()
}
