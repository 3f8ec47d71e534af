package utils

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"rds-fpgrowth/rds_config"
	"rds-fpgrowth/rock-share/base/logger"
)

var itemCodeRegex = regexp.MustCompile(rds_config.ItemCodePattern)

var utf8Bom = []byte{0xEF, 0xBB, 0xBF}

// BasketCsvOption 购物篮明细csv的列与编码, CustomerColumn为空时只按发票分组.
// KeyColumnsOnly为false时任一列为空的行都被丢弃, 否则只检查发票/客户/商品列
type BasketCsvOption struct {
	InvoiceColumn  string
	CustomerColumn string
	ItemColumn     string
	Encoding       string
	KeyColumnsOnly bool
}

func DefaultBasketCsvOption() BasketCsvOption {
	return BasketCsvOption{
		InvoiceColumn:  rds_config.InvoiceColumn,
		CustomerColumn: rds_config.CustomerColumn,
		ItemColumn:     rds_config.ItemColumn,
		Encoding:       rds_config.EncodingLatin1,
	}
}

// ReadBasketCsv 读取明细csv, 按(发票, 客户)聚合为购物篮
func ReadBasketCsv(path string, opt BasketCsvOption) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		logger.Errorf("opens a csv failed, err:%v", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenCsv, path, err)
	}
	defer f.Close()
	return ReadBaskets(f, opt)
}

// ReadBaskets 丢弃有空值的行和编码不以1-9开头的商品, 购物篮按首次出现的顺序输出
func ReadBaskets(r io.Reader, opt BasketCsvOption) ([][]string, error) {
	// BOM要在解码前去掉, latin1会把它解成3个字符
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8Bom)); err == nil && bytes.Equal(head, utf8Bom) {
		_, _ = br.Discard(len(utf8Bom))
	}
	r = br
	if strings.EqualFold(opt.Encoding, rds_config.EncodingLatin1) {
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrReadCsv, err)
	}
	cols, err := locateColumns(headers, opt)
	if err != nil {
		return nil, err
	}

	var baskets [][]string
	group := make(map[string]int)
	skipped := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrReadCsv, line, err)
		}
		values, ok := pick(record, cols)
		if !ok || (!opt.KeyColumnsOnly && hasEmptyCell(record, len(headers))) || !itemCodeRegex.MatchString(values[0]) {
			skipped++
			continue
		}
		key := strings.Join(values[1:], "\x00")
		i, ok := group[key]
		if !ok {
			i = len(baskets)
			group[key] = i
			baskets = append(baskets, nil)
		}
		baskets[i] = append(baskets[i], values[0])
	}
	logger.Debugf("read %d baskets, skipped %d rows", len(baskets), skipped)
	return baskets, nil
}

// locateColumns 返回 [商品列, 发票列, (客户列)] 的下标
func locateColumns(headers []string, opt BasketCsvOption) ([]int, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}
	names := []string{opt.ItemColumn, opt.InvoiceColumn}
	if opt.CustomerColumn != "" {
		names = append(names, opt.CustomerColumn)
	}
	cols := make([]int, len(names))
	for i, name := range names {
		c, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotExist, name)
		}
		cols[i] = c
	}
	return cols, nil
}

func pick(record []string, cols []int) ([]string, bool) {
	values := make([]string, len(cols))
	for i, c := range cols {
		if c >= len(record) {
			return nil, false
		}
		v := strings.TrimSpace(record[c])
		if v == "" {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

// hasEmptyCell 行中有空单元格或列数不足表头
func hasEmptyCell(record []string, width int) bool {
	if len(record) < width {
		return true
	}
	for _, v := range record {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func CreateCsv(path string, data [][]string) error {
	csvFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer csvFile.Close()
	return WriteCsv(csvFile, data)
}

func WriteCsv(w io.Writer, data [][]string) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.WriteAll(data); err != nil {
		logger.Errorf("write csv failed, err:%v", err)
		return err
	}
	return nil
}
