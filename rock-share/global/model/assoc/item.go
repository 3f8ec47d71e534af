package assoc

import (
	"strconv"
	"strings"
)

// ItemID 编码后的商品id, 由 encoder 按标签字典序分配
type ItemID int32

// Transaction 一次购物篮, 去重且升序
type Transaction []ItemID

// Key 生成item集合的规范化key, 调用方需保证ids已升序
func Key(ids []ItemID) string {
	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(int64(id), 10))
	}
	return sb.String()
}

// CompareIDs 按字典序比较两个升序id序列
func CompareIDs(a, b []ItemID) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
