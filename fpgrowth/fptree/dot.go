package fptree

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"rds-fpgrowth/rock-share/global/model/assoc"
)

const graphName = "fptree"

// Graphviz 将树渲染为DOT, 实线为父子关系, 虚线为node-link. label为nil时输出item id
func (t *Tree) Graphviz(label func(assoc.ItemID) string) (string, error) {
	if label == nil {
		label = func(id assoc.ItemID) string { return strconv.Itoa(int(id)) }
	}
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}
	if err := g.AddNode(graphName, nodeName(rootIndex), map[string]string{"label": `"root"`, "shape": "box"}); err != nil {
		return "", err
	}
	for i := 1; i < len(t.nodes); i++ {
		n := t.nodes[i]
		attrs := map[string]string{"label": strconv.Quote(fmt.Sprintf("%s:%d", label(n.item), n.count))}
		if err := g.AddNode(graphName, nodeName(int32(i)), attrs); err != nil {
			return "", err
		}
	}
	for i := 1; i < len(t.nodes); i++ {
		if err := g.AddEdge(nodeName(t.nodes[i].parent), nodeName(int32(i)), true, nil); err != nil {
			return "", err
		}
	}
	for _, h := range t.header {
		chain := t.nodesOf(h.Item)
		for j := 1; j < len(chain); j++ {
			attrs := map[string]string{"style": "dashed", "constraint": "false", "color": "gray"}
			if err := g.AddEdge(nodeName(chain[j-1]), nodeName(chain[j]), true, attrs); err != nil {
				return "", err
			}
		}
	}
	return g.String(), nil
}

func nodeName(i int32) string {
	return "n" + strconv.Itoa(int(i))
}
