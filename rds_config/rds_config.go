package rds_config

const GinPort = "19123"

// 规则csv导出目录
const ResultDir = "result"

// 请求中的csv/sqlite路径只能位于该目录下
const DataDir = "data"

// 购物篮csv的默认列
const (
	InvoiceColumn  = "InvoiceNo"
	CustomerColumn = "CustomerID"
	ItemColumn     = "StockCode"
)

// 商品编码必须以1-9开头, 其余视为礼品、邮费等非商品行
const ItemCodePattern = "^[1-9]"

// csv文件编码
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
)

// 导出格式
const (
	ExportCsv  = "csv"
	ExportJson = "json"
)
