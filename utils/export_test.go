package utils

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rds-fpgrowth/rock-share/global/model/assoc"
)

var names = map[assoc.ItemID]string{0: "A", 1: "B", 2: "C"}

func labels(ids []assoc.ItemID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = names[id]
	}
	return out
}

func sampleRecords() []RuleRecord {
	return NewRuleRecords([]assoc.Rule{
		{Antecedent: []assoc.ItemID{0, 1}, Consequent: []assoc.ItemID{2}, Support: 0.25, Confidence: 1,
			AntecedentSupport: 0.25, ConsequentSupport: 0.5, Lift: 2, Leverage: 0.125, Conviction: math.Inf(1)},
		{Antecedent: []assoc.ItemID{1}, Consequent: []assoc.ItemID{0}, Support: 0.4, Confidence: 0.5,
			AntecedentSupport: 0.8, ConsequentSupport: 0.8, Lift: 0.625, Leverage: -0.24, Conviction: 0.4},
	}, labels)
}

func TestRuleRows(t *testing.T) {
	rows := RuleRows(sampleRecords())
	require.Len(t, rows, 3)
	assert.Equal(t, ruleCsvHeader, rows[0])
	assert.Equal(t, []string{"A B", "C", "0.25", "0.5", "0.25", "1", "2", "0.125", "inf"}, rows[1])
	assert.Equal(t, "0.4", rows[2][8])
}

func TestExportCsv(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCsv(&buf, sampleRecords()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "antecedents,consequents,"))
	assert.True(t, strings.HasSuffix(lines[1], ",inf"))
}

func TestExportJson(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJson(&buf, sampleRecords()))
	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Nil(t, got[0]["conviction"])
	assert.Equal(t, []any{"A", "B"}, got[0]["antecedents"])
	assert.InDelta(t, 0.4, got[1]["conviction"], 1e-12)
}

func TestRenderRuleTable(t *testing.T) {
	var buf bytes.Buffer
	out := RenderRuleTable(&buf, "top rules", sampleRecords())
	assert.Contains(t, out, "top rules")
	assert.Contains(t, out, "A, B")
	assert.Contains(t, out, "1.0000")
	assert.Contains(t, buf.String(), "-0.2400")

	assert.Contains(t, RenderRuleTable(nil, "empty", nil), "(no rules)")
}
