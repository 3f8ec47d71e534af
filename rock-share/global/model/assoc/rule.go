package assoc

// Rule 关联规则 Antecedent -> Consequent
type Rule struct {
	Antecedent        []ItemID `json:"antecedent"`
	Consequent        []ItemID `json:"consequent"`
	AntecedentSupport float64  `json:"antecedent_support"`
	ConsequentSupport float64  `json:"consequent_support"`
	SupportCount      int      `json:"support_count"`
	Support           float64  `json:"support"`
	Confidence        float64  `json:"confidence"`
	Lift              float64  `json:"lift"`
	Leverage          float64  `json:"leverage"`
	Conviction        float64  `json:"-"` // 置信度为1时为+Inf, json无法表示, 导出时单独处理
}

// Items 返回前件与后件的并集, 升序
func (r Rule) Items() []ItemID {
	out := make([]ItemID, 0, len(r.Antecedent)+len(r.Consequent))
	i, j := 0, 0
	for i < len(r.Antecedent) && j < len(r.Consequent) {
		if r.Antecedent[i] < r.Consequent[j] {
			out = append(out, r.Antecedent[i])
			i++
		} else {
			out = append(out, r.Consequent[j])
			j++
		}
	}
	out = append(out, r.Antecedent[i:]...)
	return append(out, r.Consequent[j:]...)
}
