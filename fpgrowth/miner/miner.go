package miner

import (
	"context"
	"sort"
	"sync"

	"rds-fpgrowth/fpgrowth/common"
	"rds-fpgrowth/fpgrowth/fptree"
	"rds-fpgrowth/rock-share/global/model/assoc"
)

type Config struct {
	MinCount int // 条件树的最小计数, 与顶层树一致
	MaxLen   int // 项集最大长度, <=0 不限制
	Workers  int // 顶层头表项的并发度, <=1 串行
}

// Miner FP-Growth挖掘. 用显式栈代替递归, 栈深度不超过频繁item数
type Miner struct {
	cfg Config
}

func New(cfg Config) *Miner {
	if cfg.MinCount < 1 {
		cfg.MinCount = 1
	}
	return &Miner{cfg: cfg}
}

// frame 一个待处理的(前缀, 条件树)对, cursor从头表末尾(最稀有)往前走
type frame struct {
	prefix []assoc.ItemID
	tree   *fptree.Tree
	header []fptree.HeaderEntry
	cursor int
}

type emitFunc func(items []assoc.ItemID, count int)

// collector 收集挖掘结果, 并发模式下多个worker共享
type collector struct {
	mu   sync.Mutex
	sets []assoc.Itemset
}

func (c *collector) emit(items []assoc.ItemID, count int) {
	s := make([]assoc.ItemID, len(items))
	copy(s, items)
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	c.mu.Lock()
	c.sets = append(c.sets, assoc.Itemset{Items: s, Count: count})
	c.mu.Unlock()
}

// Mine 返回树中所有计数>=MinCount的项集, Support字段由调用方根据N填充.
// 输出顺序不固定.
func (m *Miner) Mine(ctx context.Context, tree *fptree.Tree) ([]assoc.Itemset, error) {
	if tree == nil || tree.Empty() {
		return nil, nil
	}
	c := &collector{}
	if m.cfg.Workers > 1 && !tree.IsSinglePath() {
		if err := m.mineParallel(ctx, tree, c); err != nil {
			return nil, err
		}
		return c.sets, nil
	}
	stack := m.push(nil, nil, tree, c.emit)
	if err := m.drain(ctx, stack, c.emit); err != nil {
		return nil, err
	}
	return c.sets, nil
}

// push 单路径的树直接枚举组合, 否则入栈等待逐项展开
func (m *Miner) push(stack []*frame, prefix []assoc.ItemID, tree *fptree.Tree, emit emitFunc) []*frame {
	if tree.Empty() {
		return stack
	}
	if tree.IsSinglePath() {
		m.emitSinglePath(prefix, tree.SinglePath(), emit)
		return stack
	}
	header := tree.Header()
	return append(stack, &frame{prefix: prefix, tree: tree, header: header, cursor: len(header) - 1})
}

func (m *Miner) drain(ctx context.Context, stack []*frame, emit emitFunc) error {
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		top := stack[len(stack)-1]
		if top.cursor < 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		h := top.header[top.cursor]
		top.cursor--
		stack = m.expand(stack, top.prefix, top.tree, h, emit)
	}
	return nil
}

// expand 输出 prefix∪{item}, 并由其条件模式基构建条件树入栈
func (m *Miner) expand(stack []*frame, prefix []assoc.ItemID, tree *fptree.Tree, h fptree.HeaderEntry, emit emitFunc) []*frame {
	next := make([]assoc.ItemID, len(prefix), len(prefix)+1)
	copy(next, prefix)
	next = append(next, h.Item)
	emit(next, h.Count)

	if m.cfg.MaxLen > 0 && len(next) >= m.cfg.MaxLen {
		return stack
	}
	base := tree.PrefixPaths(h.Item)
	if len(base) == 0 {
		return stack
	}
	cond := fptree.BuildWeighted(base, m.cfg.MinCount)
	return m.push(stack, next, cond, emit)
}

// emitSinglePath 路径上任意非空组合与前缀合并, 计数取所选节点的最小计数
func (m *Miner) emitSinglePath(prefix []assoc.ItemID, path []fptree.PathNode, emit emitFunc) {
	limit := 0
	if m.cfg.MaxLen > 0 {
		limit = m.cfg.MaxLen - len(prefix)
		if limit <= 0 {
			return
		}
	}
	items := make([]assoc.ItemID, len(path))
	for i, p := range path {
		items[i] = p.Item
	}
	buf := make([]assoc.ItemID, 0, len(prefix)+len(path))
	common.ForEachSubset(items, limit, func(subset []assoc.ItemID, idx []int) bool {
		count := path[idx[0]].Count
		for _, i := range idx[1:] {
			if path[i].Count < count {
				count = path[i].Count
			}
		}
		buf = append(append(buf[:0], prefix...), subset...)
		emit(buf, count)
		return true
	})
}
