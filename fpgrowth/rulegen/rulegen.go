package rulegen

import (
	"math"

	"rds-fpgrowth/fpgrowth/common"
	"rds-fpgrowth/rock-share/global/enum"
	"rds-fpgrowth/rock-share/global/model/assoc"
)

type Config struct {
	Metric       enum.RuleMetric // 默认confidence
	MinThreshold float64
}

// Generate 对每个长度>=2的项集S, 枚举所有非空真子集A作为前件, C=S\A作为后件.
//
// 由反单调性, S频繁则A和C都频繁, 一定出现在itemsets中; 查不到说明挖掘结果不完整,
// 按内部错误处理.
func Generate(itemsets []assoc.Itemset, n int, cfg Config) []assoc.Rule {
	if n <= 0 {
		return nil
	}
	if cfg.Metric == "" {
		cfg.Metric = enum.MetricConfidence
	}
	counts := make(map[string]int, len(itemsets))
	for _, s := range itemsets {
		counts[s.Key()] = s.Count
	}
	lookup := func(items []assoc.ItemID) int {
		c, ok := counts[assoc.Key(items)]
		if !ok || c == 0 {
			common.Fatalf("subset %v of a frequent itemset was not mined", items)
		}
		return c
	}

	total := float64(n)
	var rules []assoc.Rule
	for _, s := range itemsets {
		if len(s.Items) < 2 {
			continue
		}
		supportS := float64(s.Count) / total
		common.ForEachSubset(s.Items, len(s.Items)-1, func(subset []assoc.ItemID, idx []int) bool {
			antecedent := make([]assoc.ItemID, len(subset))
			copy(antecedent, subset)
			consequent := complement(s.Items, idx)

			countA := lookup(antecedent)
			countC := lookup(consequent)
			supportA := float64(countA) / total
			supportC := float64(countC) / total
			confidence := float64(s.Count) / float64(countA)

			r := assoc.Rule{
				Antecedent:        antecedent,
				Consequent:        consequent,
				AntecedentSupport: supportA,
				ConsequentSupport: supportC,
				SupportCount:      s.Count,
				Support:           supportS,
				Confidence:        confidence,
				Lift:              confidence / supportC,
				Leverage:          supportS - supportA*supportC,
				Conviction:        conviction(supportC, confidence),
			}
			if keep(r, cfg) {
				rules = append(rules, r)
			}
			return true
		})
	}
	return rules
}

func keep(r assoc.Rule, cfg Config) bool {
	switch cfg.Metric {
	case enum.MetricLift:
		return r.Lift >= cfg.MinThreshold
	case enum.MetricLeverage:
		return r.Leverage >= cfg.MinThreshold
	case enum.MetricSupport:
		return r.Support >= cfg.MinThreshold
	default:
		return r.Confidence >= cfg.MinThreshold
	}
}

func conviction(supportC, confidence float64) float64 {
	if confidence >= 1 {
		return math.Inf(1)
	}
	return (1 - supportC) / (1 - confidence)
}

// complement items中下标不在idx里的元素, idx升序
func complement(items []assoc.ItemID, idx []int) []assoc.ItemID {
	out := make([]assoc.ItemID, 0, len(items)-len(idx))
	j := 0
	for i, item := range items {
		if j < len(idx) && idx[j] == i {
			j++
			continue
		}
		out = append(out, item)
	}
	return out
}
