// Package stats 提供求解统计文档的组装
package stats

import (
	"encoding/json"
	"math"
	"time"
)

// SchemaVersion 统计文档的版本标签
const SchemaVersion = "v1"

// Float 可承载 NaN 哨兵值的浮点数
// 无可行解时目标值为 NaN，序列化为 JSON null
type Float float64

// MarshalJSON 实现 json.Marshaler
func (f Float) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(f)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

// UnmarshalJSON 实现 json.Unmarshaler，null 还原为 NaN
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// IsNaN 检查是否为 NaN 哨兵值
func (f Float) IsNaN() bool {
	return math.IsNaN(float64(f))
}

// Custom 求解器相关的业务统计
type Custom struct {
	Provider          string  `json:"provider"`
	Status            string  `json:"status"`
	Variables         int     `json:"variables"`
	FixedVariables    int     `json:"fixed_variables"`
	Constraints       int     `json:"constraints"`
	ActiveWorkers     int     `json:"active_workers"`
	TotalWorkers      int     `json:"total_workers"`
	AvailabilityUsage float64 `json:"availability_usage"` // 百分比
}

// ResultStats 求解结果统计
type ResultStats struct {
	Custom   Custom  `json:"custom"`
	Duration float64 `json:"duration"` // 求解器耗时（秒）
	Value    Float   `json:"value"`    // 目标值，无可行解时为 null
}

// RunStats 整次调用统计
type RunStats struct {
	Duration float64 `json:"duration"` // 总耗时（秒）
}

// Statistics 输出文档中的统计对象
type Statistics struct {
	Result ResultStats `json:"result"`
	Run    RunStats    `json:"run"`
	Schema string      `json:"schema"`
}

// AvailabilityUsage 计算可用性使用率（百分比）
// 没有工人时报告 0 而不是除零
func AvailabilityUsage(activeWorkers, totalWorkers int) float64 {
	if totalWorkers == 0 {
		return 0
	}
	return 100 * float64(activeWorkers) / float64(totalWorkers)
}

// Collect 组装统计文档
func Collect(
	provider, status string,
	variables, fixedVariables, constraints int,
	activeWorkers, totalWorkers int,
	objective float64,
	solveDuration, runDuration time.Duration,
) *Statistics {
	return &Statistics{
		Result: ResultStats{
			Custom: Custom{
				Provider:          provider,
				Status:            status,
				Variables:         variables,
				FixedVariables:    fixedVariables,
				Constraints:       constraints,
				ActiveWorkers:     activeWorkers,
				TotalWorkers:      totalWorkers,
				AvailabilityUsage: AvailabilityUsage(activeWorkers, totalWorkers),
			},
			Duration: solveDuration.Seconds(),
			Value:    Float(objective),
		},
		Run: RunStats{
			Duration: runDuration.Seconds(),
		},
		Schema: SchemaVersion,
	}
}
