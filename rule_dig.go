package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"rds-fpgrowth/fpgrowth"
	"rds-fpgrowth/rds_config"
	"rds-fpgrowth/rock-share/base/config"
	"rds-fpgrowth/rock-share/base/logger"
	"rds-fpgrowth/rock-share/global/enum"
	"rds-fpgrowth/utils"
	"rds-fpgrowth/utils/db_util"
)

// DigRule 加载购物篮, 执行FP-Growth挖掘, 结果登记到TaskResults
func DigRule(ctx context.Context, request *MineRequest, settings *config.AllConfig) (*TaskResult, error) {
	startTime := time.Now()
	taskId := uuid.NewString()
	logger.Infof("task id:%v, 规则发现开始", taskId)

	support, confidence := settings.Mining.Support, settings.Mining.Confidence
	if request.Support != nil {
		support = *request.Support
	}
	if request.Confidence != nil {
		confidence = *request.Confidence
	}
	metricName := settings.Mining.Metric
	if request.Metric != "" {
		metricName = request.Metric
	}
	metric, ok := enum.ParseRuleMetric(metricName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown metric %q", utils.ErrParameter, metricName)
	}
	threshold := confidence
	if request.Threshold != nil {
		threshold = *request.Threshold
	}
	opts := []fpgrowth.Option{
		fpgrowth.WithMetric(metric, threshold),
		fpgrowth.WithMaxLen(pickInt(request.MaxLen, settings.Mining.MaxLen)),
		fpgrowth.WithWorkers(pickInt(request.Workers, settings.Mining.Workers)),
	}

	baskets, err := loadBaskets(request, settings)
	if err != nil {
		return nil, err
	}
	catalog, err := config.LoadItemCatalog(settings.Storage.CatalogPath)
	if err != nil {
		return nil, err
	}

	res, err := fpgrowth.MineLabels(ctx, baskets, support, confidence, opts...)
	if err != nil {
		logger.Errorf("task id:%v, 规则发现失败: %v", taskId, err)
		return nil, err
	}

	task := &TaskResult{
		TaskId:     taskId,
		CreatedAt:  startTime,
		Support:    support,
		Confidence: confidence,
		Metric:     metric,
		Threshold:  threshold,
		Result:     res,
		Catalog:    catalog,
	}
	top := pickInt(request.Top, settings.Mining.TopN)
	logger.Infof("task id:%v, top rules:\n%s", taskId,
		utils.RenderRuleTable(nil, "TOP RULES", utils.NewRuleRecords(res.Rules.Head(top), task.describe)))

	if settings.Server.ResultDir != "" {
		p, err := ExeRules(task, settings.Server.ResultDir)
		if err != nil {
			logger.Errorf("task id:%v, 导出规则失败: %v", taskId, err)
		}
		task.ResultPath = p
	}
	task.SpentTime = time.Since(startTime).Milliseconds()
	SaveTask(task)

	logger.Infof("task id:%v, 规则发现已完成, 耗时%dms, 事务数:%v, 频繁项集:%v, 规则:%v",
		taskId, task.SpentTime, res.N, len(res.Itemsets), res.Rules.Len())
	return task, nil
}

func loadBaskets(request *MineRequest, settings *config.AllConfig) ([][]string, error) {
	switch {
	case request.Transactions != nil:
		return request.Transactions, nil
	case request.Table != nil:
		p, err := resolveDataPath(settings.Storage.DataDir, request.Table.Path)
		if err != nil {
			return nil, err
		}
		opt := utils.BasketCsvOption{
			InvoiceColumn:  pickString(request.Table.InvoiceColumn, settings.Storage.InvoiceColumn),
			CustomerColumn: pickString(request.Table.CustomerColumn, settings.Storage.CustomerColumn),
			ItemColumn:     pickString(request.Table.ItemColumn, settings.Storage.ItemColumn),
			Encoding:       pickString(request.Table.Encoding, settings.Storage.Encoding),
			KeyColumnsOnly: request.Table.KeyColumnsOnly,
		}
		return utils.ReadBasketCsv(p, opt)
	case request.Db != nil || settings.Storage.SqlitePath != "":
		p := settings.Storage.SqlitePath
		if request.Db != nil {
			var err error
			if p, err = resolveDataPath(settings.Storage.DataDir, request.Db.Path); err != nil {
				return nil, err
			}
		}
		db, err := db_util.OpenSqlite(p)
		if err != nil {
			return nil, err
		}
		defer db_util.Close(db)
		return db_util.LoadBaskets(db)
	default:
		return nil, fmt.Errorf("%w: one of transactions, table or db is required", utils.ErrParameter)
	}
}

// resolveDataPath 请求中的路径相对dataDir解析, 不允许跳出dataDir
func resolveDataPath(dataDir, p string) (string, error) {
	if dataDir == "" {
		return "", fmt.Errorf("%w: data_dir is not configured, file sources are disabled", utils.ErrParameter)
	}
	root, err := filepath.Abs(dataDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrParameter, err)
	}
	full := filepath.Clean(p)
	if !filepath.IsAbs(full) {
		full = filepath.Join(root, full)
	}
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path %q is outside the data directory", utils.ErrParameter, p)
	}
	return full, nil
}

// ExeRules 把全部规则导出为 dir/<taskId>.csv
func ExeRules(task *TaskResult, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	p := path.Join(dir, task.TaskId+"."+rds_config.ExportCsv)
	data := utils.RuleRows(task.Records(task.Result.Rules.All()))
	if err := utils.CreateCsv(p, data); err != nil {
		return "", err
	}
	return p, nil
}

func pickInt(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}

func pickString(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
