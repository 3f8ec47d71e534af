package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"rds-fpgrowth/rds_config"
	"rds-fpgrowth/rock-share/base/logger"
)

// All 全部配置索引
var All *AllConfig

var DefaultPath = "./config"
var DebugPath = "./config/debug"

// InitConfig 初始化读取配置文件, 读取失败直接panic
func InitConfig(dir string) {
	c, err := LoadConfig(dir, true)
	if err != nil {
		panic(err)
	}
	All = c
}

// LoadConfig 读取 dir/config.yml, DEBUG=true 时再叠加 DebugPath/debug.yml.
// watch为true时监控配置文件变化.
func LoadConfig(dir string, watch bool) (*AllConfig, error) {
	if dir == "" {
		dir = DefaultPath
	}
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	configType := "yml"
	v.SetConfigType(configType)
	setDefaults(v)

	// 读取配置
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config in %s: %w", dir, err)
	}

	//增量配置
	if os.Getenv("DEBUG") == "true" {
		debugConfigPath := filepath.Join(DebugPath, "debug.yml")
		exists, err := isExists(debugConfigPath)
		if err != nil {
			return nil, err
		}
		if exists {
			v.SetConfigFile(debugConfigPath)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("merging %s: %w", debugConfigPath, err)
			}
		} else {
			logger.Infof("%s not exists", debugConfigPath)
		}
	}

	if watch {
		// 监控配置文件变化; 挖掘参数在每次请求时读取, 其余配置需重启生效
		v.OnConfigChange(func(e fsnotify.Event) {
			logger.Infof("Config file changed: %s", e.Name)
		})
		v.WatchConfig()
	}

	// 配置映射到结构体
	c := &AllConfig{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_config.http_port", rds_config.GinPort)
	v.SetDefault("server_config.result_dir", rds_config.ResultDir)
	v.SetDefault("logger_config.level", "info")
	v.SetDefault("logger_config.max_age", 7)
	v.SetDefault("logger_config.rotation_time", 24)
	v.SetDefault("mining_config.support", rds_config.Support)
	v.SetDefault("mining_config.confidence", rds_config.Confidence)
	v.SetDefault("mining_config.metric", rds_config.Metric)
	v.SetDefault("mining_config.workers", rds_config.Workers)
	v.SetDefault("mining_config.top_n", rds_config.TopN)
	v.SetDefault("storage_config.data_dir", rds_config.DataDir)
	v.SetDefault("storage_config.invoice_column", rds_config.InvoiceColumn)
	v.SetDefault("storage_config.customer_column", rds_config.CustomerColumn)
	v.SetDefault("storage_config.item_column", rds_config.ItemColumn)
	v.SetDefault("storage_config.encoding", rds_config.EncodingLatin1)
}

// AllConfig 全部配置文件
type AllConfig struct {
	Server  ServerConfig  `mapstructure:"server_config"`
	Logger  LoggerConfig  `mapstructure:"logger_config"`
	Mining  MiningConfig  `mapstructure:"mining_config"`
	Storage StorageConfig `mapstructure:"storage_config"`
}

// ServerConfig 服务配置
type ServerConfig struct {
	HttpPort  string `mapstructure:"http_port"`
	SentryDsn string `mapstructure:"sentry_dsn"`
	ResultDir string `mapstructure:"result_dir"` // 规则csv导出目录, 为空不导出
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string        `mapstructure:"level"`
	Path         string        `mapstructure:"path"`
	MaxAge       time.Duration `mapstructure:"max_age"`
	RotationTime time.Duration `mapstructure:"rotation_time"`
	RotationSize uint32        `mapstructure:"rotation_size"`
}

// MiningConfig 请求未指定时使用的挖掘参数
type MiningConfig struct {
	Support    float64 `mapstructure:"support"`
	Confidence float64 `mapstructure:"confidence"`
	Metric     string  `mapstructure:"metric"`
	MaxLen     int     `mapstructure:"max_len"`
	Workers    int     `mapstructure:"workers"`
	TopN       int     `mapstructure:"top_n"`
}

// StorageConfig 购物篮数据来源
type StorageConfig struct {
	DataDir        string `mapstructure:"data_dir"` // 请求指定的文件相对该目录解析, 为空时不接受请求指定的文件
	SqlitePath     string `mapstructure:"sqlite_path"`
	CatalogPath    string `mapstructure:"catalog_path"`
	InvoiceColumn  string `mapstructure:"invoice_column"`
	CustomerColumn string `mapstructure:"customer_column"`
	ItemColumn     string `mapstructure:"item_column"`
	Encoding       string `mapstructure:"encoding"`
}

// 判断所给文件/文件夹是否存在
func isExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
