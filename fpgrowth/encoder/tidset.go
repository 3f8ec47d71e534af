package encoder

import (
	"github.com/yourbasic/bit"
	"rds-fpgrowth/rock-share/global/model/assoc"
)

// TidIndex 竖式索引: item -> 包含该item的事务行号集合
type TidIndex struct {
	n    int
	tids map[assoc.ItemID]*bit.Set
}

func NewTidIndex(transactions []assoc.Transaction) *TidIndex {
	idx := &TidIndex{n: len(transactions), tids: make(map[assoc.ItemID]*bit.Set)}
	for row, t := range transactions {
		for _, item := range t {
			s, ok := idx.tids[item]
			if !ok {
				s = new(bit.Set)
				idx.tids[item] = s
			}
			s.Add(row)
		}
	}
	return idx
}

func (idx *TidIndex) N() int {
	return idx.n
}

// Count 同时包含items中所有item的事务数, 空集合返回N
func (idx *TidIndex) Count(items []assoc.ItemID) int {
	if len(items) == 0 {
		return idx.n
	}
	var acc *bit.Set
	for _, item := range items {
		s, ok := idx.tids[item]
		if !ok {
			return 0
		}
		if acc == nil {
			acc = new(bit.Set).Set(s)
			continue
		}
		acc.SetAnd(acc, s)
		if acc.Empty() {
			return 0
		}
	}
	return acc.Size()
}

func (idx *TidIndex) Support(items []assoc.ItemID) float64 {
	if idx.n == 0 {
		return 0
	}
	return float64(idx.Count(items)) / float64(idx.n)
}
