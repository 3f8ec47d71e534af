package rds_config

// 请求和配置文件都未指定时的挖掘参数, 与原推荐页面滑块的默认值一致
const (
	Support    = float64(0.01)
	Confidence = float64(0.1)
	Metric     = "confidence"
	Workers    = 1
	TopN       = 5
	MaxLen     = 0 // 不限制

	MaxTopN = 1000
)
