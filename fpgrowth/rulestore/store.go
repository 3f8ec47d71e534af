package rulestore

import (
	"sort"

	mapset "github.com/deckarep/golang-set"
	"rds-fpgrowth/rock-share/global/model/assoc"
)

// Store 排好序的只读规则集合, 构建后可被多个goroutine并发读取
type Store struct {
	rules        []assoc.Rule
	byAntecedent map[string][]int // 前件key -> rules下标, 下标升序即排序顺序
	byItem       map[assoc.ItemID][]int
}

func New(rules []assoc.Rule) *Store {
	s := &Store{
		rules:        make([]assoc.Rule, len(rules)),
		byAntecedent: make(map[string][]int),
		byItem:       make(map[assoc.ItemID][]int),
	}
	// 前件后件统一为去重升序, 排序和索引都依赖这一点
	for i, r := range rules {
		r.Antecedent = normalize(r.Antecedent)
		r.Consequent = normalize(r.Consequent)
		s.rules[i] = r
	}
	SortRules(s.rules)
	for i, r := range s.rules {
		k := assoc.Key(r.Antecedent)
		s.byAntecedent[k] = append(s.byAntecedent[k], i)
		for _, item := range r.Items() {
			s.byItem[item] = append(s.byItem[item], i)
		}
	}
	return s
}

func (s *Store) Len() int {
	return len(s.rules)
}

func (s *Store) All() []assoc.Rule {
	return s.Head(len(s.rules))
}

// Head 前n条, n超出范围时返回全部
func (s *Store) Head(n int) []assoc.Rule {
	if n < 0 || n > len(s.rules) {
		n = len(s.rules)
	}
	out := make([]assoc.Rule, n)
	copy(out, s.rules[:n])
	return out
}

// ForAntecedent 前件与exact完全相等的规则(集合相等, 不做子集匹配)
func (s *Store) ForAntecedent(exact []assoc.ItemID) []assoc.Rule {
	return s.pick(s.byAntecedent[assoc.Key(normalize(exact))])
}

// Touching 前件或后件与items有交集的规则
func (s *Store) Touching(items []assoc.ItemID) []assoc.Rule {
	hit := mapset.NewThreadUnsafeSet()
	for _, item := range items {
		for _, i := range s.byItem[item] {
			hit.Add(i)
		}
	}
	idx := make([]int, 0, hit.Cardinality())
	for _, v := range hit.ToSlice() {
		idx = append(idx, v.(int))
	}
	sort.Ints(idx)
	return s.pick(idx)
}

// Recommendation 推荐的商品以及给出该推荐的最优规则
type Recommendation struct {
	Item assoc.ItemID
	Rule assoc.Rule
}

// Recommend 前件是basket子集的规则, 按规则顺序取后件中不在basket里的商品, 每个商品只取一次.
// n<=0 时不限制数量.
func (s *Store) Recommend(basket []assoc.ItemID, n int) []Recommendation {
	have := mapset.NewThreadUnsafeSet()
	for _, item := range basket {
		have.Add(item)
	}
	seen := mapset.NewThreadUnsafeSet()
	var out []Recommendation
	for _, r := range s.rules {
		if !containsAll(have, r.Antecedent) {
			continue
		}
		for _, item := range r.Consequent {
			if have.Contains(item) || seen.Contains(item) {
				continue
			}
			seen.Add(item)
			out = append(out, Recommendation{Item: item, Rule: r})
			if n > 0 && len(out) >= n {
				return out
			}
		}
	}
	return out
}

func (s *Store) pick(idx []int) []assoc.Rule {
	out := make([]assoc.Rule, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.rules[i])
	}
	return out
}

func containsAll(set mapset.Set, items []assoc.ItemID) bool {
	for _, item := range items {
		if !set.Contains(item) {
			return false
		}
	}
	return true
}

// normalize 去重升序, 查询参数可能是任意顺序
func normalize(ids []assoc.ItemID) []assoc.ItemID {
	out := append([]assoc.ItemID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	j := 0
	for i := range out {
		if i == 0 || out[i] != out[i-1] {
			out[j] = out[i]
			j++
		}
	}
	return out[:j]
}
