package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"rds-fpgrowth/fpgrowth/common"
	"rds-fpgrowth/rds_config"
	"rds-fpgrowth/rock-share/base/config"
	"rds-fpgrowth/rock-share/base/logger"
	"rds-fpgrowth/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the rule mining HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 一些初始化配置
		config.InitConfig(configDir)
		all := config.All
		l := all.Logger
		if err := logger.InitLogger(l.Level, "rds-fpgrowth", l.Path, l.MaxAge, l.RotationTime, l.RotationSize, all.Server.SentryDsn); err != nil {
			return err
		}
		defer logger.Sync()

		r := newRouter(all)
		address := ":" + all.Server.HttpPort
		logger.Infof("listening on %s", address)
		return r.Run(address)
	},
}

func newRouter(settings *config.AllConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if common.IsInternal(recovered) {
			logger.Errorf("internal invariant violated: %v", recovered)
		} else {
			logger.Errorf("panic: %v", recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
	}))

	r.POST("/mine", func(c *gin.Context) { start(c, settings) })
	tasks := r.Group("/tasks/:id")
	{
		tasks.GET("/rules", listRules)
		tasks.GET("/itemsets", listItemsets)
		tasks.POST("/rules/antecedent", rulesForAntecedent)
		tasks.POST("/rules/touching", rulesTouching)
		tasks.POST("/recommend", recommend)
		tasks.POST("/support", itemsetSupport)
		tasks.GET("/export", exportRules)
		tasks.DELETE("", deleteTask)
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func start(c *gin.Context, settings *config.AllConfig) {
	var requestJson MineRequest
	if err := c.ShouldBindJSON(&requestJson); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	task, err := DigRule(c.Request.Context(), &requestJson, settings)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"success": false, "error": err.Error()})
		return
	}
	top := pickInt(requestJson.Top, settings.Mining.TopN)
	res := task.Result
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"task_id":          task.TaskId,
		"transaction_size": res.N,
		"dropped_size":     len(res.Dropped),
		"itemset_size":     len(res.Itemsets),
		"rule_size":        res.Rules.Len(),
		"result_path":      task.ResultPath,
		"spent_time":       task.SpentTime,
		"rules":            task.Records(res.Rules.Head(top)),
	})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidParameter),
		errors.Is(err, utils.ErrParameter),
		errors.Is(err, utils.ErrColumnNotExist),
		errors.Is(err, utils.ErrOpenCsv),
		errors.Is(err, utils.ErrOpenDb),
		errors.Is(err, utils.ErrReadCsv):
		return http.StatusBadRequest
	case errors.Is(err, utils.ErrTaskNotExist):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func loadTask(c *gin.Context) (*TaskResult, bool) {
	task, ok := GetTask(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": utils.ErrTaskNotExist.Error()})
		return nil, false
	}
	return task, true
}

func bindItems(c *gin.Context) (*ItemsRequest, bool) {
	var req ItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return nil, false
	}
	return &req, true
}

// queryLimit limit缺省或非法时返回def, 上限为MaxTopN
func queryLimit(c *gin.Context, def int) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = def
	}
	if limit > rds_config.MaxTopN {
		limit = rds_config.MaxTopN
	}
	return limit
}

func listRules(c *gin.Context) {
	task, ok := loadTask(c)
	if !ok {
		return
	}
	rules := task.Result.Rules.Head(queryLimit(c, rds_config.MaxTopN))
	c.JSON(http.StatusOK, gin.H{"success": true, "total": task.Result.Rules.Len(), "rules": task.Records(rules)})
}

func listItemsets(c *gin.Context) {
	task, ok := loadTask(c)
	if !ok {
		return
	}
	sets := task.Result.Itemsets
	if limit := queryLimit(c, rds_config.MaxTopN); limit < len(sets) {
		sets = sets[:limit]
	}
	out := make([]gin.H, len(sets))
	for i, s := range sets {
		out[i] = gin.H{"items": task.labels(s.Items), "count": s.Count, "support": s.Support}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "total": len(task.Result.Itemsets), "itemsets": out})
}

// rulesForAntecedent 前件与items完全相等的规则
func rulesForAntecedent(c *gin.Context) {
	task, ok := loadTask(c)
	if !ok {
		return
	}
	req, ok := bindItems(c)
	if !ok {
		return
	}
	ids, known := task.ItemIds(req.Items)
	if !known {
		c.JSON(http.StatusOK, gin.H{"success": true, "rules": []utils.RuleRecord{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rules": task.Records(task.Result.Rules.ForAntecedent(ids))})
}

func rulesTouching(c *gin.Context) {
	task, ok := loadTask(c)
	if !ok {
		return
	}
	req, ok := bindItems(c)
	if !ok {
		return
	}
	ids, _ := task.ItemIds(req.Items)
	c.JSON(http.StatusOK, gin.H{"success": true, "rules": task.Records(task.Result.Rules.Touching(ids))})
}

func recommend(c *gin.Context) {
	task, ok := loadTask(c)
	if !ok {
		return
	}
	req, ok := bindItems(c)
	if !ok {
		return
	}
	ids, _ := task.ItemIds(req.Items)
	recs := task.Result.Rules.Recommend(ids, req.Limit)
	out := make([]gin.H, len(recs))
	for i, r := range recs {
		out[i] = gin.H{
			"item":       task.Result.Dictionary.Label(r.Item),
			"confidence": r.Rule.Confidence,
			"lift":       r.Rule.Lift,
			"rule":       utils.NewRuleRecord(r.Rule, task.labels),
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recommendations": out})
}

// itemsetSupport 任意商品集合的支持度, 集合不必是频繁项集; 含未知商品时计数为0
func itemsetSupport(c *gin.Context) {
	task, ok := loadTask(c)
	if !ok {
		return
	}
	req, ok := bindItems(c)
	if !ok {
		return
	}
	count, support := 0, 0.0
	ids, known := task.ItemIds(req.Items)
	if known {
		count, support = task.Result.Support(ids)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": req.Items, "count": count, "support": support})
}

func exportRules(c *gin.Context) {
	task, ok := loadTask(c)
	if !ok {
		return
	}
	records := task.Records(task.Result.Rules.All())
	filename := task.TaskId + "."
	switch format := c.DefaultQuery("format", rds_config.ExportCsv); format {
	case rds_config.ExportCsv:
		c.Header("Content-Disposition", "attachment; filename="+filename+rds_config.ExportCsv)
		c.Header("Content-Type", "text/csv")
		c.Status(http.StatusOK)
		if err := utils.ExportCsv(c.Writer, records); err != nil {
			logger.Errorf("task id:%v, export csv failed: %v", task.TaskId, err)
		}
	case rds_config.ExportJson:
		c.Header("Content-Disposition", "attachment; filename="+filename+rds_config.ExportJson)
		c.Header("Content-Type", "application/json")
		c.Status(http.StatusOK)
		if err := utils.ExportJson(c.Writer, records); err != nil {
			logger.Errorf("task id:%v, export json failed: %v", task.TaskId, err)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unsupported format " + format})
	}
}

func deleteTask(c *gin.Context) {
	if !ClearMemory(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": utils.ErrTaskNotExist.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
