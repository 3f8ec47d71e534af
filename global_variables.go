package main

import (
	"time"

	cmap "github.com/orcaman/concurrent-map"
	"rds-fpgrowth/fpgrowth"
	"rds-fpgrowth/rock-share/base/config"
	"rds-fpgrowth/rock-share/global/enum"
	"rds-fpgrowth/rock-share/global/model/assoc"
	"rds-fpgrowth/utils"
)

var TaskResults = cmap.New() // [taskID, *TaskResult]

// TaskResult 一次挖掘任务的结果, 挖掘完成后只读
type TaskResult struct {
	TaskId     string
	CreatedAt  time.Time
	Support    float64
	Confidence float64
	Metric     enum.RuleMetric
	Threshold  float64
	ResultPath string
	SpentTime  int64 // ms
	Result     *fpgrowth.LabeledResult
	Catalog    *config.ItemCatalog
}

func SaveTask(t *TaskResult) {
	TaskResults.Set(t.TaskId, t)
}

func GetTask(taskId string) (*TaskResult, bool) {
	v, ok := TaskResults.Get(taskId)
	if !ok {
		return nil, false
	}
	return v.(*TaskResult), true
}

func ClearMemory(taskId string) bool {
	if !TaskResults.Has(taskId) {
		return false
	}
	TaskResults.Remove(taskId)
	return true
}

func (t *TaskResult) labels(ids []assoc.ItemID) []string {
	return t.Result.Dictionary.Labels(ids)
}

// describe 带商品目录描述的标签, 用于表格展示
func (t *TaskResult) describe(ids []assoc.ItemID) []string {
	out := t.labels(ids)
	for i := range out {
		out[i] = t.Catalog.Describe(out[i])
	}
	return out
}

func (t *TaskResult) Records(rules []assoc.Rule) []utils.RuleRecord {
	return utils.NewRuleRecords(rules, t.labels)
}

// ItemIds 标签转id, 未出现在任何事务中的标签被忽略; 第二个返回值表示是否全部识别
func (t *TaskResult) ItemIds(labels []string) ([]assoc.ItemID, bool) {
	ids := t.Result.Dictionary.LookupAll(labels)
	return ids, len(ids) == len(labels)
}
