package db_util

import (
	"fmt"
	"os"
	"regexp"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"rds-fpgrowth/rds_config"
	"rds-fpgrowth/rock-share/base/logger"
	"rds-fpgrowth/utils"
)

var itemCodeRegex = regexp.MustCompile(rds_config.ItemCodePattern)

// TransactionLine 购物篮明细, 与csv中的一行对应
type TransactionLine struct {
	Id         int64  `gorm:"primaryKey;autoIncrement"`
	InvoiceNo  string `gorm:"column:invoice_no;index"`
	CustomerID string `gorm:"column:customer_id"`
	StockCode  string `gorm:"column:stock_code"`
}

func (TransactionLine) TableName() string {
	return "transaction_lines"
}

const memoryPath = ":memory:"

// OpenSqlite 只读方式使用已有的sqlite文件, 文件不存在时报错, 不建表
func OpenSqlite(path string) (*gorm.DB, error) {
	if path != memoryPath {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrOpenDb, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a directory", utils.ErrOpenDb, path)
		}
	}
	return open(path)
}

// CreateSqlite 打开或新建sqlite文件, 并确保明细表存在. 用于导入数据
func CreateSqlite(path string) (*gorm.DB, error) {
	db, err := open(path)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&TransactionLine{}); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("%w: %v", utils.ErrOpenDb, err)
	}
	return db, nil
}

// open 纯go驱动
func open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Errorf("open sqlite %s failed, err:%v", path, err)
		return nil, fmt.Errorf("%w: %v", utils.ErrOpenDb, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrOpenDb, err)
	}
	// 内存库在每个连接上都是独立的
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InsertLines 批量写入明细
func InsertLines(db *gorm.DB, lines []TransactionLine) error {
	if len(lines) == 0 {
		return nil
	}
	return db.CreateInBatches(lines, 500).Error
}

// LoadBaskets 与 utils.ReadBaskets 相同的清洗和聚合规则: 丢弃空值行和非商品编码,
// 按(发票, 客户)聚合, 购物篮按首次出现(id)顺序输出
func LoadBaskets(db *gorm.DB) ([][]string, error) {
	if !db.Migrator().HasTable(&TransactionLine{}) {
		return nil, fmt.Errorf("%w: table %s not exist", utils.ErrReadDb, TransactionLine{}.TableName())
	}
	var lines []TransactionLine
	if err := db.Order("id").Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrReadDb, err)
	}
	var baskets [][]string
	group := make(map[string]int)
	for _, l := range lines {
		if l.InvoiceNo == "" || l.CustomerID == "" || !itemCodeRegex.MatchString(l.StockCode) {
			continue
		}
		key := l.InvoiceNo + "\x00" + l.CustomerID
		i, ok := group[key]
		if !ok {
			i = len(baskets)
			group[key] = i
			baskets = append(baskets, nil)
		}
		baskets[i] = append(baskets[i], l.StockCode)
	}
	logger.Debugf("loaded %d baskets from %d lines", len(baskets), len(lines))
	return baskets, nil
}
