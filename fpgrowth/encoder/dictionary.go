package encoder

import (
	"strings"

	"rds-fpgrowth/rock-share/global/model/assoc"
)

// Dictionary 标签与id的双向映射
type Dictionary struct {
	labels []string
	ids    map[string]assoc.ItemID
}

func newDictionary(sortedLabels []string) *Dictionary {
	d := &Dictionary{labels: sortedLabels, ids: make(map[string]assoc.ItemID, len(sortedLabels))}
	for i, l := range sortedLabels {
		d.ids[l] = assoc.ItemID(i)
	}
	return d
}

func (d *Dictionary) Len() int {
	return len(d.labels)
}

// Label 未知id返回空串
func (d *Dictionary) Label(id assoc.ItemID) string {
	if id < 0 || int(id) >= len(d.labels) {
		return ""
	}
	return d.labels[id]
}

func (d *Dictionary) Labels(ids []assoc.ItemID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = d.Label(id)
	}
	return out
}

func (d *Dictionary) Lookup(label string) (assoc.ItemID, bool) {
	id, ok := d.ids[strings.TrimSpace(label)]
	return id, ok
}

// LookupAll 忽略字典中不存在的标签
func (d *Dictionary) LookupAll(labels []string) []assoc.ItemID {
	out := make([]assoc.ItemID, 0, len(labels))
	for _, l := range labels {
		if id, ok := d.Lookup(l); ok {
			out = append(out, id)
		}
	}
	return out
}

// Format 以 {a, b} 的形式输出
func (d *Dictionary) Format(ids []assoc.ItemID) string {
	return "{" + strings.Join(d.Labels(ids), ", ") + "}"
}
