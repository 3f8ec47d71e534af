package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderRuleTable 以表格形式输出规则, 用于命令行和日志里的 head(n) 展示
func RenderRuleTable(w io.Writer, title string, records []RuleRecord) string {
	t := table.NewWriter()
	if w != nil {
		t.SetOutputMirror(w)
	}
	t.SetTitle(title)
	t.AppendHeader(table.Row{"#", "Antecedents", "Consequents", "Support", "Confidence", "Lift", "Leverage"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
		{Name: "Antecedents", WidthMax: 40},
		{Name: "Consequents", WidthMax: 40},
		{Name: "Support", Align: text.AlignRight},
		{Name: "Confidence", Align: text.AlignRight},
		{Name: "Lift", Align: text.AlignRight},
		{Name: "Leverage", Align: text.AlignRight},
	})
	for i, r := range records {
		t.AppendRow(table.Row{
			i + 1,
			strings.Join(r.Antecedents, ", "),
			strings.Join(r.Consequents, ", "),
			fmt.Sprintf("%.4f", r.Support),
			fmt.Sprintf("%.4f", r.Confidence),
			fmt.Sprintf("%.4f", r.Lift),
			fmt.Sprintf("%.4f", r.Leverage),
		})
	}
	if len(records) == 0 {
		t.AppendRow(table.Row{"", "(no rules)", "", "", "", "", ""})
	}
	return t.Render()
}
