package assoc

import "sort"

// Itemset 频繁项集
type Itemset struct {
	Items   []ItemID `json:"items"`   // 升序
	Count   int      `json:"count"`   // 包含该项集的事务数
	Support float64  `json:"support"` // Count / N
}

func (s Itemset) Key() string {
	return Key(s.Items)
}

func (s Itemset) Len() int {
	return len(s.Items)
}

// SortItemsets 先按长度, 再按id字典序排序, 保证输出顺序稳定
func SortItemsets(sets []Itemset) {
	sort.Slice(sets, func(i, j int) bool {
		if len(sets[i].Items) != len(sets[j].Items) {
			return len(sets[i].Items) < len(sets[j].Items)
		}
		return CompareIDs(sets[i].Items, sets[j].Items) < 0
	})
}
