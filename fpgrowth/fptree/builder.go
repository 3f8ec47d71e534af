package fptree

import (
	"math"
	"sort"

	"rds-fpgrowth/rock-share/global/model/assoc"
)

// supportEpsilon 吸收 minSupport*N 的浮点误差, 例如 0.7*10 = 7.000000000000001
const supportEpsilon = 1e-9

// MinCount ⌈minSupport × n⌉, 至少为1
func MinCount(minSupport float64, n int) int {
	c := int(math.Ceil(minSupport*float64(n) - supportEpsilon))
	if c < 1 {
		c = 1
	}
	return c
}

// Build 两遍扫描构建FP树, 返回树和事务总数N.
// 事务需已规范化(去重), minSupport的取值范围由调用方校验.
func Build(transactions []assoc.Transaction, minSupport float64) (*Tree, int) {
	n := len(transactions)
	paths := make([]WeightedPath, len(transactions))
	for i, t := range transactions {
		paths[i] = WeightedPath{Items: t, Count: 1}
	}
	return BuildWeighted(paths, MinCount(minSupport, n)), n
}

// BuildWeighted 顶层树和条件树共用的构建过程
func BuildWeighted(paths []WeightedPath, minCount int) *Tree {
	t := newTree(minCount)

	// 第一遍: 统计频次并剪枝
	counts := make(map[assoc.ItemID]int)
	for _, p := range paths {
		for _, item := range p.Items {
			counts[item] += p.Count
		}
	}
	for item, c := range counts {
		if c >= minCount {
			t.header = append(t.header, HeaderEntry{Item: item, head: nilIndex, tail: nilIndex})
		}
	}
	sort.Slice(t.header, func(i, j int) bool {
		ci, cj := counts[t.header[i].Item], counts[t.header[j].Item]
		if ci != cj {
			return ci > cj
		}
		return t.header[i].Item < t.header[j].Item
	})
	for i := range t.header {
		t.position[t.header[i].Item] = i
	}
	if len(t.header) == 0 {
		return t
	}

	// 第二遍: 过滤、按头表顺序重排后插入
	buf := make([]assoc.ItemID, 0, len(t.header))
	for _, p := range paths {
		buf = buf[:0]
		for _, item := range p.Items {
			if _, ok := t.position[item]; ok {
				buf = append(buf, item)
			}
		}
		if len(buf) == 0 {
			continue
		}
		sort.Slice(buf, func(i, j int) bool { return t.position[buf[i]] < t.position[buf[j]] })
		t.insert(buf, p.Count)
	}
	return t
}

func (t *Tree) insert(items []assoc.ItemID, count int) {
	cur := rootIndex
	for _, item := range items {
		child, ok := t.nodes[cur].children[item]
		if ok {
			t.nodes[child].count += count
		} else {
			child = int32(len(t.nodes))
			t.nodes = append(t.nodes, node{item: item, count: count, parent: cur, next: nilIndex})
			if t.nodes[cur].children == nil {
				t.nodes[cur].children = make(map[assoc.ItemID]int32)
			}
			t.nodes[cur].children[item] = child
			t.link(item, child)
		}
		t.header[t.position[item]].Count += count
		cur = child
	}
}

// link 新建节点挂到该item node-link的尾部
func (t *Tree) link(item assoc.ItemID, n int32) {
	h := &t.header[t.position[item]]
	if h.head == nilIndex {
		h.head = n
	} else {
		t.nodes[h.tail].next = n
	}
	h.tail = n
}
