package fpgrowth

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rds-fpgrowth/fpgrowth/common"
	"rds-fpgrowth/fpgrowth/encoder"
	"rds-fpgrowth/rock-share/global/enum"
	"rds-fpgrowth/rock-share/global/model/assoc"
)

func exampleTransactions() []assoc.Transaction {
	return []assoc.Transaction{{0, 1, 2}, {0, 1}, {0, 2}, {0}, {1, 2}}
}

func randomTransactions(seed int64, n, items int, p float64) []assoc.Transaction {
	r := rand.New(rand.NewSource(seed))
	txs := make([]assoc.Transaction, 0, n)
	for i := 0; i < n; i++ {
		var t assoc.Transaction
		for item := 0; item < items; item++ {
			if r.Float64() < p {
				t = append(t, assoc.ItemID(item))
			}
		}
		txs = append(txs, t)
	}
	return txs
}

func ruleKeys(rules []assoc.Rule) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, assoc.Key(r.Antecedent)+"->"+assoc.Key(r.Consequent))
	}
	return out
}

func TestMineExample(t *testing.T) {
	res, err := Mine(context.Background(), exampleTransactions(), 0.4, 0.6)
	require.NoError(t, err)
	assert.Equal(t, 5, res.N)
	assert.Equal(t, 2, res.MinCount)

	keys := make([]string, 0, len(res.Itemsets))
	for _, s := range res.Itemsets {
		keys = append(keys, s.Key())
		assert.InDelta(t, float64(s.Count)/5, s.Support, 1e-12)
	}
	assert.Equal(t, []string{"0", "1", "2", "0,1", "0,2", "1,2"}, keys)

	assert.Equal(t, []string{"1->0", "1->2", "2->0", "2->1"}, ruleKeys(res.Rules.All()))
	assert.Equal(t, []string{"1->0", "1->2"}, ruleKeys(res.Rules.ForAntecedent([]assoc.ItemID{1})))
	assert.Equal(t, []string{"1->0", "2->0"}, ruleKeys(res.Rules.Touching([]assoc.ItemID{0})))
	assert.Empty(t, res.Rules.ForAntecedent([]assoc.ItemID{42}))
}

func TestMineUnsortedDuplicatedInput(t *testing.T) {
	res, err := Mine(context.Background(), []assoc.Transaction{{2, 1, 0, 0}, {1, 0}, {2, 0, 2}, {0}, {2, 1}}, 0.4, 0.6)
	require.NoError(t, err)
	want, err := Mine(context.Background(), exampleTransactions(), 0.4, 0.6)
	require.NoError(t, err)
	assert.Equal(t, want.Itemsets, res.Itemsets)
	assert.Equal(t, want.Rules.All(), res.Rules.All())
}

func TestMineInvalidParams(t *testing.T) {
	before := testutil.ToFloat64(miningRuns.WithLabelValues("invalid"))
	cases := []struct {
		support, confidence float64
		opts                []Option
	}{
		{0, 0.5, nil},
		{-0.1, 0.5, nil},
		{1.01, 0.5, nil},
		{math.NaN(), 0.5, nil},
		{0.5, -0.01, nil},
		{0.5, 1.5, nil},
		{0.5, math.NaN(), nil},
		{0.5, 0.5, []Option{WithMetric(enum.MetricSupport, 2)}},
		{0.5, 0.5, []Option{WithMetric("conviction", 1)}},
		{0.5, 0.5, []Option{WithMetric(enum.MetricLift, math.NaN())}},
	}
	for _, c := range cases {
		_, err := Mine(context.Background(), exampleTransactions(), c.support, c.confidence, c.opts...)
		assert.True(t, errors.Is(err, common.ErrInvalidParameter), "%v %v", c.support, c.confidence)
		var ipe *common.InvalidParameterError
		assert.True(t, errors.As(err, &ipe))
	}
	assert.Equal(t, before+float64(len(cases)), testutil.ToFloat64(miningRuns.WithLabelValues("invalid")))

	_, err := MineLabels(context.Background(), [][]string{{"a"}}, 0, 0.5)
	assert.ErrorIs(t, err, common.ErrInvalidParameter)
}

func TestMineBoundaries(t *testing.T) {
	ctx := context.Background()

	res, err := Mine(ctx, nil, 0.5, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0, res.N)
	assert.Empty(t, res.Itemsets)
	assert.Equal(t, 0, res.Rules.Len())

	res, err = Mine(ctx, exampleTransactions(), 1, 0)
	require.NoError(t, err)
	assert.Empty(t, res.Itemsets)
	assert.Equal(t, 0, res.Rules.Len())

	res, err = Mine(ctx, []assoc.Transaction{{0}, {1}, {2}}, 0.3, 0)
	require.NoError(t, err)
	assert.Len(t, res.Itemsets, 3)
	assert.Equal(t, 0, res.Rules.Len(), "singletons produce no rules")

	res, err = Mine(ctx, []assoc.Transaction{{0, 1}, {0, 1}, {0, 1}}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"0->1", "1->0"}, ruleKeys(res.Rules.All()))
	for _, r := range res.Rules.All() {
		assert.True(t, math.IsInf(r.Conviction, 1))
	}

	// 0.7*10 在浮点下略大于7, 计数为7的项仍然频繁
	txs := make([]assoc.Transaction, 10)
	for i := range txs {
		if i < 7 {
			txs[i] = assoc.Transaction{0}
		} else {
			txs[i] = assoc.Transaction{1}
		}
	}
	res, err = Mine(ctx, txs, 0.7, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, res.MinCount)
	require.Len(t, res.Itemsets, 1)
	assert.Equal(t, 7, res.Itemsets[0].Count)
}

func TestMineOptions(t *testing.T) {
	ctx := context.Background()
	res, err := Mine(ctx, exampleTransactions(), 0.4, 0.6, WithMaxLen(1))
	require.NoError(t, err)
	assert.Len(t, res.Itemsets, 3)
	assert.Equal(t, 0, res.Rules.Len())

	res, err = Mine(ctx, exampleTransactions(), 0.4, 0.6, WithMetric(enum.MetricLift, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"1->2", "2->1"}, ruleKeys(res.Rules.All()))

	ctx2, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Mine(ctx2, exampleTransactions(), 0.4, 0.6)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMineDeterministic(t *testing.T) {
	txs := randomTransactions(9, 300, 14, 0.3)
	first, err := Mine(context.Background(), txs, 0.03, 0.2)
	require.NoError(t, err)
	for _, workers := range []int{1, 2, 8} {
		again, err := Mine(context.Background(), txs, 0.03, 0.2, WithWorkers(workers))
		require.NoError(t, err)
		assert.Equal(t, first.Itemsets, again.Itemsets)
		assert.Equal(t, first.Rules.All(), again.Rules.All())
	}
}

func TestMineProperties(t *testing.T) {
	txs := randomTransactions(21, 250, 12, 0.35)
	res, err := Mine(context.Background(), txs, 0.04, 0.3)
	require.NoError(t, err)
	idx := encoder.NewTidIndex(txs)

	counts := make(map[string]int, len(res.Itemsets))
	for _, s := range res.Itemsets {
		counts[s.Key()] = s.Count
		assert.Equal(t, idx.Count(s.Items), s.Count, "count of %v", s.Items)
		assert.GreaterOrEqual(t, s.Count, res.MinCount)
	}
	for _, s := range res.Itemsets {
		for drop := range s.Items {
			if len(s.Items) == 1 {
				break
			}
			sub := append(append([]assoc.ItemID{}, s.Items[:drop]...), s.Items[drop+1:]...)
			c, ok := counts[assoc.Key(sub)]
			require.True(t, ok, "subset %v of %v", sub, s.Items)
			assert.GreaterOrEqual(t, c, s.Count)
		}
	}

	rules := res.Rules.All()
	require.NotEmpty(t, rules)
	for _, r := range rules {
		assert.GreaterOrEqual(t, r.Confidence, 0.3)
		assert.InDelta(t, r.Support/r.AntecedentSupport, r.Confidence, 1e-9)
		assert.Equal(t, idx.Count(r.Items()), r.SupportCount)
	}
}

func TestMineLabels(t *testing.T) {
	res, err := MineLabels(context.Background(), [][]string{
		{"A", "B", "C"}, {"A", "B"}, {"A", "C"}, {"A"}, {"B", "C"}, {" ", ""},
	}, 0.4, 0.6)
	require.NoError(t, err)
	assert.Equal(t, 5, res.N)
	assert.Len(t, res.Dropped, 1)
	top := res.Rules.Head(1)[0]
	assert.Equal(t, "{B} -> {A}", res.Dictionary.Format(top.Antecedent)+" -> "+res.Dictionary.Format(top.Consequent))
}

func TestEmptyTransactionsDropped(t *testing.T) {
	ctx := context.Background()
	byID, err := Mine(ctx, []assoc.Transaction{{0, 1}, {0, 1}, {}, nil}, 0.75, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, byID.N)
	require.Len(t, byID.Dropped, 2)
	assert.Equal(t, 2, byID.Dropped[0].Row)
	assert.Equal(t, 3, byID.Dropped[1].Row)
	assert.ErrorIs(t, byID.Dropped[0], common.ErrValidation)

	byLabel, err := MineLabels(ctx, [][]string{{"a", "b"}, {"a", "b"}, {}, {" "}}, 0.75, 0)
	require.NoError(t, err)
	assert.Equal(t, byID.N, byLabel.N)
	assert.Equal(t, byID.Itemsets, byLabel.Itemsets)
	assert.Equal(t, byID.Rules.All(), byLabel.Rules.All())
	assert.Len(t, byLabel.Dropped, 2)
	assert.Len(t, byID.Itemsets, 3)
	assert.Equal(t, 2, byID.Rules.Len())

	onlyEmpty, err := Mine(ctx, []assoc.Transaction{{}, {}}, 0.5, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0, onlyEmpty.N)
	assert.Len(t, onlyEmpty.Dropped, 2)
	assert.Empty(t, onlyEmpty.Itemsets)
}

func TestResultSupport(t *testing.T) {
	res, err := Mine(context.Background(), append(exampleTransactions(), assoc.Transaction{}), 0.4, 0.6)
	require.NoError(t, err)

	count, support := res.Support([]assoc.ItemID{2, 1})
	assert.Equal(t, 2, count)
	assert.InDelta(t, 0.4, support, 1e-12)

	// 非频繁项集同样可查
	count, support = res.Support([]assoc.ItemID{0, 1, 2})
	assert.Equal(t, 1, count)
	assert.InDelta(t, 0.2, support, 1e-12)

	count, _ = res.Support(nil)
	assert.Equal(t, 5, count)
	count, support = res.Support([]assoc.ItemID{9})
	assert.Equal(t, 0, count)
	assert.Equal(t, 0.0, support)

	empty, err := Mine(context.Background(), nil, 0.5, 0.5)
	require.NoError(t, err)
	count, support = empty.Support([]assoc.ItemID{0})
	assert.Equal(t, 0, count)
	assert.Equal(t, 0.0, support)
}
