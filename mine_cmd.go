package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"rds-fpgrowth/fpgrowth"
	"rds-fpgrowth/fpgrowth/encoder"
	"rds-fpgrowth/fpgrowth/fptree"
	"rds-fpgrowth/rds_config"
	"rds-fpgrowth/rock-share/base/config"
	"rds-fpgrowth/rock-share/base/logger"
	"rds-fpgrowth/rock-share/global/enum"
	"rds-fpgrowth/utils"
	"rds-fpgrowth/utils/db_util"
)

var mineFlags struct {
	input      string
	db         string
	support    float64
	confidence float64
	metric     string
	threshold  float64
	maxLen     int
	workers    int
	top        int
	out        string
	dot        string
	catalog    string
	logLevel   string
	noCustomer bool
	keyColumns bool
}

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine association rules from a basket csv or sqlite file and print the top rules",
	RunE:  runMine,
}

func init() {
	f := mineCmd.Flags()
	f.StringVar(&mineFlags.input, "input", "", "Basket csv (InvoiceNo, CustomerID, StockCode columns)")
	f.StringVar(&mineFlags.db, "db", "", "SQLite file with a transaction_lines table")
	f.Float64Var(&mineFlags.support, "support", rds_config.Support, "Minimum support in (0, 1]")
	f.Float64Var(&mineFlags.confidence, "confidence", rds_config.Confidence, "Minimum confidence in [0, 1]")
	f.StringVar(&mineFlags.metric, "metric", rds_config.Metric, "Rule filter metric: confidence|lift|leverage|support")
	f.Float64Var(&mineFlags.threshold, "threshold", 0, "Threshold for --metric (defaults to --confidence)")
	f.IntVar(&mineFlags.maxLen, "max-len", rds_config.MaxLen, "Maximum itemset length, 0 for no limit")
	f.IntVar(&mineFlags.workers, "workers", rds_config.Workers, "Parallel workers for the top-level items")
	f.IntVar(&mineFlags.top, "top", rds_config.TopN, "Number of rules to print")
	f.StringVar(&mineFlags.out, "out", "", "Write all rules to this .csv or .json file")
	f.StringVar(&mineFlags.dot, "dot", "", "Write the FP-tree as graphviz DOT to this file")
	f.StringVar(&mineFlags.catalog, "catalog", "", "YAML item catalog used to describe item codes")
	f.StringVar(&mineFlags.logLevel, "log-level", "warn", "Log level")
	f.BoolVar(&mineFlags.noCustomer, "no-customer", false, "Group baskets by invoice only")
	f.BoolVar(&mineFlags.keyColumns, "key-columns-only", false, "Drop rows only when invoice, customer or item is empty")
}

func runMine(cmd *cobra.Command, args []string) error {
	if err := logger.InitLogger(mineFlags.logLevel, "rds-fpgrowth", "", 0, 0, 0, ""); err != nil {
		return err
	}
	defer logger.Sync()

	baskets, err := readBaskets()
	if err != nil {
		return err
	}
	catalog, err := config.LoadItemCatalog(mineFlags.catalog)
	if err != nil {
		return err
	}
	metric, ok := enum.ParseRuleMetric(mineFlags.metric)
	if !ok {
		return fmt.Errorf("%w: unknown metric %q", utils.ErrParameter, mineFlags.metric)
	}
	threshold := mineFlags.confidence
	if cmd.Flags().Changed("threshold") {
		threshold = mineFlags.threshold
	}

	res, err := fpgrowth.MineLabels(context.Background(), baskets, mineFlags.support, mineFlags.confidence,
		fpgrowth.WithMetric(metric, threshold),
		fpgrowth.WithMaxLen(mineFlags.maxLen),
		fpgrowth.WithWorkers(mineFlags.workers))
	if err != nil {
		return err
	}
	task := &TaskResult{TaskId: "cli", Result: res, Catalog: catalog}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "transactions: %d, dropped: %d, frequent itemsets: %d, rules: %d\n",
		res.N, len(res.Dropped), len(res.Itemsets), res.Rules.Len())
	utils.RenderRuleTable(out, "TOP RULES", utils.NewRuleRecords(res.Rules.Head(mineFlags.top), task.describe))

	if mineFlags.out != "" {
		if err := writeRules(mineFlags.out, task); err != nil {
			return err
		}
	}
	if mineFlags.dot != "" {
		if err := writeDot(mineFlags.dot, baskets); err != nil {
			return err
		}
	}
	return nil
}

func readBaskets() ([][]string, error) {
	switch {
	case mineFlags.input != "":
		opt := utils.DefaultBasketCsvOption()
		if mineFlags.noCustomer {
			opt.CustomerColumn = ""
		}
		opt.KeyColumnsOnly = mineFlags.keyColumns
		return utils.ReadBasketCsv(mineFlags.input, opt)
	case mineFlags.db != "":
		db, err := db_util.OpenSqlite(mineFlags.db)
		if err != nil {
			return nil, err
		}
		defer db_util.Close(db)
		return db_util.LoadBaskets(db)
	default:
		return nil, fmt.Errorf("%w: --input or --db is required", utils.ErrParameter)
	}
}

func writeRules(p string, task *TaskResult) error {
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	defer f.Close()
	records := task.Records(task.Result.Rules.All())
	if strings.EqualFold(filepath.Ext(p), "."+rds_config.ExportJson) {
		return utils.ExportJson(f, records)
	}
	return utils.ExportCsv(f, records)
}

func writeDot(p string, baskets [][]string) error {
	encoded := encoder.New().Encode(baskets)
	tree, _ := fptree.Build(encoded.Transactions, mineFlags.support)
	dot, err := tree.Graphviz(encoded.Dictionary.Label)
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(dot), 0o644)
}
