package main

// MineRequest 购物篮来源三选一: transactions(直接给出) > table(csv明细) > db(sqlite明细).
// 参数为空时使用配置文件中的mining_config
type MineRequest struct {
	Transactions [][]string `json:"transactions"`
	Table        *Table     `json:"table"`
	Db           *DbSource  `json:"db"`
	Support      *float64   `json:"support"`
	Confidence   *float64   `json:"confidence"`
	Metric       string     `json:"metric"`
	Threshold    *float64   `json:"threshold"` // metric非confidence时的阈值
	MaxLen       *int       `json:"max_len"`
	Workers      *int       `json:"workers"`
	Top          *int       `json:"top"`
}

type Table struct {
	Path           string `json:"path" binding:"required"`
	InvoiceColumn  string `json:"invoiceColumn"`
	CustomerColumn string `json:"customerColumn"`
	ItemColumn     string `json:"itemColumn"`
	Encoding       string `json:"encoding"`
	KeyColumnsOnly bool   `json:"keyColumnsOnly"` // 只按关键列判断空值, 默认任一列为空即丢弃
}

type DbSource struct {
	Path string `json:"path" binding:"required"`
}

// ItemsRequest 规则查询与推荐, items为商品标签
type ItemsRequest struct {
	Items []string `json:"items"`
	Limit int      `json:"limit"`
}
