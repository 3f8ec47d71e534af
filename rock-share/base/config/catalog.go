package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ItemCatalog 商品编码 -> 描述, 仅用于展示
type ItemCatalog struct {
	Items map[string]string `yaml:"items"`
}

// LoadItemCatalog 读取yaml商品目录, path为空时返回空目录
func LoadItemCatalog(path string) (*ItemCatalog, error) {
	c := &ItemCatalog{Items: map[string]string{}}
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading item catalog: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing item catalog %s: %w", path, err)
	}
	if c.Items == nil {
		c.Items = map[string]string{}
	}
	return c, nil
}

// Describe 有描述时返回 "code description", 否则返回code
func (c *ItemCatalog) Describe(code string) string {
	if c == nil {
		return code
	}
	if desc, ok := c.Items[code]; ok && desc != "" {
		return code + " " + desc
	}
	return code
}
