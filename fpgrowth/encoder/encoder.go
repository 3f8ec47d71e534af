package encoder

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"rds-fpgrowth/fpgrowth/common"
	"rds-fpgrowth/rock-share/global/model/assoc"
)

// Encoder 将原始购物篮(商品标签, 可能重复)转换为规范化的id集合
type Encoder struct{}

func New() *Encoder {
	return &Encoder{}
}

// Encoded 一次编码的结果, 仅在一次挖掘中有效
type Encoded struct {
	Transactions []assoc.Transaction
	Dictionary   *Dictionary
	Dropped      []*common.ValidationError // 去重后为空的事务, 已丢弃
}

// Encode 标签id按所有标签的字典序分配, 与事务顺序无关
func (e *Encoder) Encode(raw [][]string) *Encoded {
	labelSet := mapset.NewThreadUnsafeSet()
	cleaned := make([]mapset.Set, len(raw))
	for i, basket := range raw {
		s := mapset.NewThreadUnsafeSet()
		for _, label := range basket {
			label = strings.TrimSpace(label)
			if label == "" {
				continue
			}
			s.Add(label)
			labelSet.Add(label)
		}
		cleaned[i] = s
	}

	labels := make([]string, 0, labelSet.Cardinality())
	for _, l := range labelSet.ToSlice() {
		labels = append(labels, l.(string))
	}
	sort.Strings(labels)
	dict := newDictionary(labels)

	res := &Encoded{Dictionary: dict, Transactions: make([]assoc.Transaction, 0, len(raw))}
	for i, s := range cleaned {
		if s.Cardinality() == 0 {
			res.Dropped = append(res.Dropped, &common.ValidationError{Row: i, Reason: "transaction is empty after dedup"})
			continue
		}
		t := make(assoc.Transaction, 0, s.Cardinality())
		for _, l := range s.ToSlice() {
			t = append(t, dict.ids[l.(string)])
		}
		sort.Slice(t, func(a, b int) bool { return t[a] < t[b] })
		res.Transactions = append(res.Transactions, t)
	}
	return res
}

// Canonicalize 对已经是id形式的事务去重并升序
func Canonicalize(ids []assoc.ItemID) assoc.Transaction {
	s := mapset.NewThreadUnsafeSet()
	for _, id := range ids {
		s.Add(id)
	}
	t := make(assoc.Transaction, 0, s.Cardinality())
	for _, v := range s.ToSlice() {
		t = append(t, v.(assoc.ItemID))
	}
	sort.Slice(t, func(a, b int) bool { return t[a] < t[b] })
	return t
}

// CanonicalizeAll 对一批事务做Canonicalize, 空事务记为ValidationError并丢弃
func CanonicalizeAll(transactions [][]assoc.ItemID) ([]assoc.Transaction, []*common.ValidationError) {
	out := make([]assoc.Transaction, 0, len(transactions))
	var dropped []*common.ValidationError
	for i, t := range transactions {
		c := Canonicalize(t)
		if len(c) == 0 {
			dropped = append(dropped, &common.ValidationError{Row: i, Reason: "transaction is empty after dedup"})
			continue
		}
		out = append(out, c)
	}
	return out, dropped
}
