package common

import "rds-fpgrowth/rock-share/global/model/assoc"

// ForEachSubset 按长度递增枚举items的所有非空子集(长度不超过maxLen, maxLen<=0表示不限制).
// 回调收到的slice会被复用, 需要保留时自行拷贝; 返回false终止枚举.
func ForEachSubset(items []assoc.ItemID, maxLen int, fn func(subset []assoc.ItemID, idx []int) bool) {
	n := len(items)
	if maxLen <= 0 || maxLen > n {
		maxLen = n
	}
	idx := make([]int, 0, maxLen)
	buf := make([]assoc.ItemID, 0, maxLen)
	for k := 1; k <= maxLen; k++ {
		if !combinations(items, k, 0, idx, buf, fn) {
			return
		}
	}
}

func combinations(items []assoc.ItemID, k, start int, idx []int, buf []assoc.ItemID, fn func([]assoc.ItemID, []int) bool) bool {
	if len(idx) == k {
		return fn(buf, idx)
	}
	for i := start; i <= len(items)-(k-len(idx)); i++ {
		if !combinations(items, k, i+1, append(idx, i), append(buf, items[i]), fn) {
			return false
		}
	}
	return true
}
