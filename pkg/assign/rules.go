// Package assign 实现班次指派的调度核心
package assign

import (
	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/model"
)

// ResolveRules 把每个工人映射到恰好一条规则记录
// 匹配到零条或多条规则时返回配置错误，在建模之前终止
func ResolveRules(workers []model.Worker, rules []model.Rule) (map[string]*model.Rule, error) {
	resolved := make(map[string]*model.Rule, len(workers))
	for i := range workers {
		w := &workers[i]
		var match *model.Rule
		matches := 0
		for j := range rules {
			if rules[j].ID == w.RuleID {
				match = &rules[j]
				matches++
			}
		}
		if matches != 1 {
			return nil, errors.InvalidRule(w.ID, w.RuleID, matches)
		}
		resolved[w.ID] = match
	}
	return resolved, nil
}
