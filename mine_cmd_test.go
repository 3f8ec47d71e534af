package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"rds-fpgrowth/utils"
)

func TestMineCommand(t *testing.T) {
	defer zap.ReplaceGlobals(zap.NewNop())
	dir := t.TempDir()
	input := filepath.Join(dir, "lines.csv")
	require.NoError(t, utils.CreateCsv(input, [][]string{
		{"InvoiceNo", "StockCode", "CustomerID"},
		{"1", "10", "7"}, {"1", "20", "7"},
		{"2", "10", "8"}, {"2", "20", "8"}, {"2", "30", "8"},
		{"3", "30", "9"}, {"3", "POST", "9"},
	}))
	catalog := filepath.Join(dir, "catalog.yml")
	require.NoError(t, os.WriteFile(catalog, []byte("items:\n  \"10\": TEA CUP\n"), 0o644))
	out := filepath.Join(dir, "rules.json")
	dot := filepath.Join(dir, "tree.dot")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"mine", "--input", input, "--support", "0.5", "--confidence", "0.9",
		"--catalog", catalog, "--out", out, "--dot", dot, "--log-level", "error"})
	require.NoError(t, rootCmd.Execute())

	printed := stdout.String()
	assert.Contains(t, printed, "transactions: 3, dropped: 0, frequent itemsets: 4, rules: 2")
	assert.Contains(t, printed, "10 TEA CUP")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var records []utils.RuleRecord
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, []string{"10"}, records[0].Antecedents)
	assert.Nil(t, records[0].Conviction)

	graph, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(string(graph)), "digraph"))

	rootCmd.SetArgs([]string{"mine"})
	mineFlags.input, mineFlags.out, mineFlags.dot, mineFlags.catalog = "", "", "", ""
	assert.ErrorIs(t, rootCmd.Execute(), utils.ErrParameter)
}
