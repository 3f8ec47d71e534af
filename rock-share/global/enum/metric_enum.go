package enum

import "strings"

// RuleMetric 规则过滤所使用的指标
type RuleMetric string

const (
	MetricConfidence RuleMetric = "confidence"
	MetricLift       RuleMetric = "lift"
	MetricLeverage   RuleMetric = "leverage"
	MetricSupport    RuleMetric = "support"
)

// ParseRuleMetric 空串默认为confidence, 未知指标返回false
func ParseRuleMetric(s string) (RuleMetric, bool) {
	switch RuleMetric(strings.ToLower(strings.TrimSpace(s))) {
	case "", MetricConfidence:
		return MetricConfidence, true
	case MetricLift:
		return MetricLift, true
	case MetricLeverage:
		return MetricLeverage, true
	case MetricSupport:
		return MetricSupport, true
	default:
		return "", false
	}
}

// Bounded 阈值是否必须落在[0,1]
func (m RuleMetric) Bounded() bool {
	return m == MetricConfidence || m == MetricSupport
}
