package rulestore

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rds-fpgrowth/rock-share/global/model/assoc"
)

const a, b, c, d = assoc.ItemID(0), assoc.ItemID(1), assoc.ItemID(2), assoc.ItemID(3)

func rule(ante, cons []assoc.ItemID, support, confidence float64) assoc.Rule {
	return assoc.Rule{Antecedent: ante, Consequent: cons, Support: support, Confidence: confidence}
}

func ids(items ...assoc.ItemID) []assoc.ItemID { return items }

// exampleRules 5条事务{A,B,C},{A,B},{A,C},{A},{B,C}在置信度0.6下的规则, 故意打乱顺序
func exampleRules() []assoc.Rule {
	return []assoc.Rule{
		rule(ids(c), ids(b), 0.4, 2.0/3.0),
		rule(ids(b), ids(c), 0.4, 2.0/3.0),
		rule(ids(c), ids(a), 0.4, 2.0/3.0),
		rule(ids(b), ids(a), 0.4, 2.0/3.0),
	}
}

func pairs(rules []assoc.Rule) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, assoc.Key(r.Antecedent)+"->"+assoc.Key(r.Consequent))
	}
	return out
}

func TestStoreOrder(t *testing.T) {
	s := New(exampleRules())
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []string{"1->0", "1->2", "2->0", "2->1"}, pairs(s.All()))
	assert.True(t, Sorted(s.All()))

	mixed := []assoc.Rule{
		rule(ids(a), ids(b), 0.2, 0.5),
		rule(ids(a), ids(c), 0.3, 0.5),
		rule(ids(d), ids(a), 0.1, 0.9),
		rule(ids(a, b), ids(c), 0.1, 0.9),
	}
	s = New(mixed)
	assert.Equal(t, []string{"0,1->2", "3->0", "0->2", "0->1"}, pairs(s.All()))
}

func TestSortIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	rules := make([]assoc.Rule, 0, 200)
	for i := 0; i < 200; i++ {
		x, y := assoc.ItemID(r.Intn(6)), assoc.ItemID(6+r.Intn(6))
		rules = append(rules, rule(ids(x), ids(y), float64(r.Intn(4))/10, float64(r.Intn(5))/4))
	}
	r.Shuffle(len(rules), func(i, j int) { rules[i], rules[j] = rules[j], rules[i] })

	first := New(rules).All()
	require.True(t, Sorted(first))
	again := append([]assoc.Rule(nil), first...)
	SortRules(again)
	assert.Equal(t, first, again)

	r.Shuffle(len(rules), func(i, j int) { rules[i], rules[j] = rules[j], rules[i] })
	assert.Equal(t, pairs(first), pairs(New(rules).All()))
}

func TestStoreDoesNotAliasInput(t *testing.T) {
	in := exampleRules()
	s := New(in)
	in[0].Confidence = 0
	assert.Equal(t, 2.0/3.0, s.All()[3].Confidence)

	out := s.Head(1)
	out[0].Confidence = 0
	assert.Equal(t, 2.0/3.0, s.Head(1)[0].Confidence)
}

func TestHead(t *testing.T) {
	s := New(exampleRules())
	assert.Len(t, s.Head(2), 2)
	assert.Len(t, s.Head(0), 0)
	assert.Len(t, s.Head(-1), 4)
	assert.Len(t, s.Head(100), 4)

	empty := New(nil)
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.All())
	assert.Empty(t, empty.ForAntecedent(ids(a)))
	assert.Empty(t, empty.Touching(ids(a)))
	assert.Empty(t, empty.Recommend(ids(a), 0))
}

func TestForAntecedent(t *testing.T) {
	s := New(exampleRules())
	assert.Equal(t, []string{"1->0", "1->2"}, pairs(s.ForAntecedent(ids(b))))
	assert.Equal(t, []string{"2->0", "2->1"}, pairs(s.ForAntecedent(ids(c, c))))
	assert.Empty(t, s.ForAntecedent(ids(a)))
	assert.Empty(t, s.ForAntecedent(ids(b, c)), "exact match, not subset")
	assert.Empty(t, s.ForAntecedent(ids(d)))
	assert.Empty(t, s.ForAntecedent(nil))

	s = New(append(exampleRules(), rule(ids(c, b), ids(a), 0.2, 0.5)))
	assert.Equal(t, []string{"1,2->0"}, pairs(s.ForAntecedent(ids(c, b))))
}

func TestTouching(t *testing.T) {
	s := New(exampleRules())
	assert.Equal(t, []string{"1->0", "2->0"}, pairs(s.Touching(ids(a))))
	assert.Equal(t, []string{"1->0", "1->2", "2->0", "2->1"}, pairs(s.Touching(ids(a, b))))
	assert.Empty(t, s.Touching(ids(d)))
	assert.Empty(t, s.Touching(nil))
}

func TestRecommend(t *testing.T) {
	s := New(exampleRules())

	recs := s.Recommend(ids(b), 0)
	require.Len(t, recs, 2)
	assert.Equal(t, a, recs[0].Item)
	assert.Equal(t, c, recs[1].Item)
	assert.Equal(t, ids(b), recs[0].Rule.Antecedent)

	recs = s.Recommend(ids(b, c), 0)
	require.Len(t, recs, 1)
	assert.Equal(t, a, recs[0].Item)

	assert.Len(t, s.Recommend(ids(b), 1), 1)
	assert.Empty(t, s.Recommend(ids(a), 0))
	assert.Empty(t, s.Recommend(nil, 0))
}

func TestStoreNormalizesRules(t *testing.T) {
	in := []assoc.Rule{
		rule(ids(c, b, c), ids(d, a), 0.2, 0.5),
		rule(ids(b), ids(a), 0.4, 2.0/3.0),
	}
	s := New(in)

	got := s.ForAntecedent(ids(b, c))
	require.Len(t, got, 1)
	assert.Equal(t, ids(b, c), got[0].Antecedent)
	assert.Equal(t, ids(a, d), got[0].Consequent)
	assert.Equal(t, ids(c, b, c), in[0].Antecedent, "input rules are left untouched")

	assert.Equal(t, []string{"1->0", "1,2->0,3"}, pairs(s.Touching(ids(d, a))))
	assert.True(t, Sorted(s.All()))

	recs := s.Recommend(ids(c, b), 0)
	require.Len(t, recs, 2)
	assert.Equal(t, a, recs[0].Item)
	assert.Equal(t, d, recs[1].Item)
}
