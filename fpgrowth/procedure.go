package fpgrowth

import (
	"context"
	"math"
	"time"

	"rds-fpgrowth/fpgrowth/common"
	"rds-fpgrowth/fpgrowth/encoder"
	"rds-fpgrowth/fpgrowth/fptree"
	"rds-fpgrowth/fpgrowth/miner"
	"rds-fpgrowth/fpgrowth/rulegen"
	"rds-fpgrowth/fpgrowth/rulestore"
	"rds-fpgrowth/rock-share/base/logger"
	"rds-fpgrowth/rock-share/global/enum"
	"rds-fpgrowth/rock-share/global/model/assoc"
)

type options struct {
	maxLen    int
	workers   int
	metric    enum.RuleMetric
	threshold *float64
}

type Option func(*options)

// WithMaxLen 限制项集最大长度, <=0 不限制
func WithMaxLen(n int) Option {
	return func(o *options) { o.maxLen = n }
}

// WithWorkers 顶层头表项并发挖掘
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithMetric 换用其他指标过滤规则, 此时minConfidence只做参数校验, 阈值取threshold
func WithMetric(metric enum.RuleMetric, threshold float64) Option {
	return func(o *options) {
		o.metric = metric
		o.threshold = &threshold
	}
}

// Result 一次挖掘的全部输出
type Result struct {
	N        int // 去掉空事务后的事务数
	MinCount int
	Itemsets []assoc.Itemset // 按长度、id字典序排列
	Rules    *rulestore.Store
	Dropped  []*common.ValidationError // 去重后为空的事务, 不计入N
	index    *encoder.TidIndex
}

// LabeledResult 以商品标签为输入时的输出, 带上id字典
type LabeledResult struct {
	*Result
	Dictionary *encoder.Dictionary
}

// Support 任意item集合的事务计数和支持度, 不要求集合频繁; 空集合返回N
func (r *Result) Support(items []assoc.ItemID) (int, float64) {
	if r.index == nil || r.N == 0 {
		return 0, 0
	}
	c := r.index.Count(encoder.Canonicalize(items))
	return c, float64(c) / float64(r.N)
}

// ValidateParams minSupport ∈ (0,1], minConfidence ∈ [0,1]
func ValidateParams(minSupport, minConfidence float64) error {
	if math.IsNaN(minSupport) || minSupport <= 0 || minSupport > 1 {
		return common.NewInvalidParameter("min_support", minSupport, "(0, 1]")
	}
	if math.IsNaN(minConfidence) || minConfidence < 0 || minConfidence > 1 {
		return common.NewInvalidParameter("min_confidence", minConfidence, "[0, 1]")
	}
	return nil
}

func buildOptions(minSupport, minConfidence float64, opts []Option) (*options, error) {
	if err := ValidateParams(minSupport, minConfidence); err != nil {
		return nil, err
	}
	o := &options{metric: enum.MetricConfidence}
	for _, opt := range opts {
		opt(o)
	}
	if o.threshold == nil {
		o.threshold = &minConfidence
	}
	if o.metric == "" {
		o.metric = enum.MetricConfidence
	}
	if _, ok := enum.ParseRuleMetric(string(o.metric)); !ok {
		return nil, common.NewInvalidParameter("metric "+string(o.metric)+" threshold", *o.threshold, "a metric of confidence|lift|leverage|support")
	}
	t := *o.threshold
	if math.IsNaN(t) || (o.metric.Bounded() && (t < 0 || t > 1)) {
		return nil, common.NewInvalidParameter(string(o.metric)+" threshold", t, "[0, 1]")
	}
	return o, nil
}

// Mine 挖掘频繁项集并生成关联规则. 纯函数, 调用之间不保留任何状态
func Mine(ctx context.Context, transactions []assoc.Transaction, minSupport, minConfidence float64, opts ...Option) (*Result, error) {
	start := time.Now()
	o, err := buildOptions(minSupport, minConfidence, opts)
	if err != nil {
		observeRun(start, nil, err)
		return nil, err
	}
	res, err := mine(ctx, transactions, minSupport, o)
	observeRun(start, res, err)
	return res, err
}

// MineLabels 先用encoder把标签转为id, 再执行Mine
func MineLabels(ctx context.Context, raw [][]string, minSupport, minConfidence float64, opts ...Option) (*LabeledResult, error) {
	if err := ValidateParams(minSupport, minConfidence); err != nil {
		observeRun(time.Now(), nil, err)
		return nil, err
	}
	encoded := encoder.New().Encode(raw)
	res, err := Mine(ctx, encoded.Transactions, minSupport, minConfidence, opts...)
	if err != nil {
		return nil, err
	}
	// 行号以原始购物篮为准
	res.Dropped = encoded.Dropped
	if len(encoded.Dropped) > 0 {
		logger.Warnf("dropped %d empty transactions of %d", len(encoded.Dropped), len(raw))
	}
	return &LabeledResult{Result: res, Dictionary: encoded.Dictionary}, nil
}

func mine(ctx context.Context, transactions []assoc.Transaction, minSupport float64, o *options) (*Result, error) {
	raw := make([][]assoc.ItemID, len(transactions))
	for i, t := range transactions {
		raw[i] = t
	}
	canonical, dropped := encoder.CanonicalizeAll(raw)
	if len(dropped) > 0 {
		logger.Warnf("dropped %d empty transactions of %d", len(dropped), len(transactions))
	}

	t := time.Now()
	tree, n := fptree.Build(canonical, minSupport)
	res := &Result{N: n, MinCount: tree.MinCount(), Rules: rulestore.New(nil), Dropped: dropped, index: encoder.NewTidIndex(canonical)}
	if n == 0 {
		logger.Infof("no transactions, nothing to mine")
		return res, nil
	}
	logger.Infof("fp-tree built, transactions:%d, min count:%d, frequent items:%d, nodes:%d, spent:%v",
		n, tree.MinCount(), len(tree.Header()), tree.NodeCount(), time.Since(t))
	if tree.Empty() {
		return res, nil
	}

	t = time.Now()
	m := miner.New(miner.Config{MinCount: tree.MinCount(), MaxLen: o.maxLen, Workers: o.workers})
	itemsets, err := m.Mine(ctx, tree)
	if err != nil {
		return nil, err
	}
	for i := range itemsets {
		itemsets[i].Support = float64(itemsets[i].Count) / float64(n)
	}
	assoc.SortItemsets(itemsets)
	res.Itemsets = itemsets
	logger.Infof("frequent itemsets:%d, spent:%v", len(itemsets), time.Since(t))

	t = time.Now()
	rules := rulegen.Generate(itemsets, n, rulegen.Config{Metric: o.metric, MinThreshold: *o.threshold})
	res.Rules = rulestore.New(rules)
	logger.Infof("rules:%d, metric:%s >= %v, spent:%v", res.Rules.Len(), o.metric, *o.threshold, time.Since(t))
	return res, nil
}
