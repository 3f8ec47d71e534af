package fptree

import (
	"rds-fpgrowth/fpgrowth/common"
	"rds-fpgrowth/rock-share/global/model/assoc"
)

const (
	rootIndex int32 = 0
	nilIndex  int32 = -1
)

// node 树节点, 所有引用均为arena下标: children拥有子节点, parent和next只是引用
type node struct {
	item     assoc.ItemID
	count    int
	parent   int32
	next     int32                  // node-link, 指向下一个相同item的节点
	children map[assoc.ItemID]int32 // 懒加载
}

// HeaderEntry 头表项, 按全局频次降序、id升序排列
type HeaderEntry struct {
	Item  assoc.ItemID
	Count int // 该item在本树中的总计数
	head  int32
	tail  int32
}

// PathNode 单路径上的节点
type PathNode struct {
	Item  assoc.ItemID
	Count int
}

// WeightedPath 带权路径, 顶层事务的权重为1, 条件模式基的权重为节点计数
type WeightedPath struct {
	Items []assoc.ItemID
	Count int
}

// Tree FP树. 由Build/BuildWeighted独占构建, 构建完成后只读
type Tree struct {
	nodes    []node
	header   []HeaderEntry
	position map[assoc.ItemID]int // item -> 头表下标
	minCount int
}

func newTree(minCount int) *Tree {
	return &Tree{
		nodes:    []node{{parent: nilIndex, next: nilIndex}},
		position: make(map[assoc.ItemID]int),
		minCount: minCount,
	}
}

func (t *Tree) Empty() bool {
	return len(t.nodes) <= 1
}

func (t *Tree) MinCount() int {
	return t.minCount
}

// NodeCount 不含root
func (t *Tree) NodeCount() int {
	return len(t.nodes) - 1
}

// Header 返回头表的拷贝
func (t *Tree) Header() []HeaderEntry {
	out := make([]HeaderEntry, len(t.header))
	copy(out, t.header)
	return out
}

// Items 头表顺序下的item
func (t *Tree) Items() []assoc.ItemID {
	out := make([]assoc.ItemID, len(t.header))
	for i, h := range t.header {
		out[i] = h.Item
	}
	return out
}

func (t *Tree) ItemCount(item assoc.ItemID) int {
	pos, ok := t.position[item]
	if !ok {
		return 0
	}
	return t.header[pos].Count
}

// RootChildrenCount root直接子节点计数之和, 等于至少保留一个item的事务数
func (t *Tree) RootChildrenCount() int {
	total := 0
	for _, c := range t.nodes[rootIndex].children {
		total += t.nodes[c].count
	}
	return total
}

// IsSinglePath 每个节点最多只有一个子节点
func (t *Tree) IsSinglePath() bool {
	for i := range t.nodes {
		if len(t.nodes[i].children) > 1 {
			return false
		}
	}
	return true
}

// SinglePath 从root往下沿唯一子节点走, 仅在IsSinglePath时有意义
func (t *Tree) SinglePath() []PathNode {
	var path []PathNode
	cur := rootIndex
	for len(t.nodes[cur].children) == 1 {
		for _, c := range t.nodes[cur].children {
			cur = c
		}
		path = append(path, PathNode{Item: t.nodes[cur].item, Count: t.nodes[cur].count})
	}
	if len(t.nodes[cur].children) > 1 {
		common.Fatalf("SinglePath called on a branching tree at node %d", cur)
	}
	return path
}

// PrefixPaths 条件模式基: 沿item的node-link访问每个节点, 顺着parent走到root得到前缀路径.
// 返回的路径按root到叶子的顺序, 不含item本身, 与本树的arena不共享内存.
func (t *Tree) PrefixPaths(item assoc.ItemID) []WeightedPath {
	pos, ok := t.position[item]
	if !ok {
		return nil
	}
	var paths []WeightedPath
	for n := t.header[pos].head; n != nilIndex; n = t.nodes[n].next {
		if t.nodes[n].item != item {
			common.Fatalf("node-link of item %d reaches node %d holding item %d", item, n, t.nodes[n].item)
		}
		var rev []assoc.ItemID
		p := t.nodes[n].parent
		for steps := 0; p != rootIndex; steps++ {
			if p == nilIndex || int(p) >= len(t.nodes) || steps > len(t.header) {
				common.Fatalf("node %d of item %d has no resolvable parent chain", n, item)
			}
			rev = append(rev, t.nodes[p].item)
			p = t.nodes[p].parent
		}
		if len(rev) == 0 {
			continue
		}
		items := make([]assoc.ItemID, len(rev))
		for i := range rev {
			items[i] = rev[len(rev)-1-i]
		}
		paths = append(paths, WeightedPath{Items: items, Count: t.nodes[n].count})
	}
	return paths
}

// nodesOf 按node-link顺序列出item的所有节点下标
func (t *Tree) nodesOf(item assoc.ItemID) []int32 {
	pos, ok := t.position[item]
	if !ok {
		return nil
	}
	var out []int32
	for n := t.header[pos].head; n != nilIndex; n = t.nodes[n].next {
		out = append(out, n)
	}
	return out
}
