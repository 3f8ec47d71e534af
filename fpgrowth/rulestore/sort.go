package rulestore

import (
	"sort"

	"rds-fpgrowth/rock-share/global/model/assoc"
)

// less 置信度降序, 支持度降序, 前件id字典序, 后件id字典序
func less(a, b assoc.Rule) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if a.Support != b.Support {
		return a.Support > b.Support
	}
	if c := assoc.CompareIDs(a.Antecedent, b.Antecedent); c != 0 {
		return c < 0
	}
	return assoc.CompareIDs(a.Consequent, b.Consequent) < 0
}

// SortRules 原地排序, 对同一输入结果唯一
func SortRules(rules []assoc.Rule) {
	sort.SliceStable(rules, func(i, j int) bool { return less(rules[i], rules[j]) })
}

func Sorted(rules []assoc.Rule) bool {
	return sort.SliceIsSorted(rules, func(i, j int) bool { return less(rules[i], rules[j]) })
}
