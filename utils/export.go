package utils

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"rds-fpgrowth/rock-share/global/model/assoc"
)

// RuleRecord 规则的展示/导出形式, 商品以标签表示
type RuleRecord struct {
	Antecedents       []string `json:"antecedents"`
	Consequents       []string `json:"consequents"`
	AntecedentSupport float64  `json:"antecedent_support"`
	ConsequentSupport float64  `json:"consequent_support"`
	Support           float64  `json:"support"`
	Confidence        float64  `json:"confidence"`
	Lift              float64  `json:"lift"`
	Leverage          float64  `json:"leverage"`
	Conviction        *float64 `json:"conviction"` // 置信度为1时为null
}

func NewRuleRecord(r assoc.Rule, labels func([]assoc.ItemID) []string) RuleRecord {
	rec := RuleRecord{
		Antecedents:       labels(r.Antecedent),
		Consequents:       labels(r.Consequent),
		AntecedentSupport: r.AntecedentSupport,
		ConsequentSupport: r.ConsequentSupport,
		Support:           r.Support,
		Confidence:        r.Confidence,
		Lift:              r.Lift,
		Leverage:          r.Leverage,
	}
	if !math.IsInf(r.Conviction, 0) && !math.IsNaN(r.Conviction) {
		c := r.Conviction
		rec.Conviction = &c
	}
	return rec
}

func NewRuleRecords(rules []assoc.Rule, labels func([]assoc.ItemID) []string) []RuleRecord {
	out := make([]RuleRecord, len(rules))
	for i, r := range rules {
		out[i] = NewRuleRecord(r, labels)
	}
	return out
}

var ruleCsvHeader = []string{"antecedents", "consequents", "antecedent support", "consequent support",
	"support", "confidence", "lift", "leverage", "conviction"}

// RuleRows 转为csv行, 第一行为表头, 集合内的商品以空格分隔
func RuleRows(records []RuleRecord) [][]string {
	data := make([][]string, 0, len(records)+1)
	data = append(data, ruleCsvHeader)
	for _, r := range records {
		data = append(data, []string{
			strings.Join(r.Antecedents, " "),
			strings.Join(r.Consequents, " "),
			formatFloat(r.AntecedentSupport),
			formatFloat(r.ConsequentSupport),
			formatFloat(r.Support),
			formatFloat(r.Confidence),
			formatFloat(r.Lift),
			formatFloat(r.Leverage),
			formatConviction(r.Conviction),
		})
	}
	return data
}

func ExportCsv(w io.Writer, records []RuleRecord) error {
	if err := WriteCsv(w, RuleRows(records)); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	return nil
}

func ExportJson(w io.Writer, records []RuleRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatConviction(c *float64) string {
	if c == nil {
		return "inf"
	}
	return formatFloat(*c)
}
