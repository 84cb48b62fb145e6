// Package rules 将预测结果映射为临床决策建议。
//
// 规则用 CEL 表达式描述触发条件，命中时按模板产出建议文案。
// 建议仅供参考：本核心不校验临床正确性，规则集由部署方配置。
package rules

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/amrkit/core"
	"github.com/rushteam/amrkit/pkg/dsl"
)

// Rule 是一条建议规则：Expr 为 CEL 触发条件（变量：antibiotic、resistant、
// probability），Message 为建议模板，%s 占位符填入抗生素标签。
type Rule struct {
	Name    string `yaml:"name" json:"name"`
	Expr    string `yaml:"expr" json:"expr"`
	Message string `yaml:"message" json:"message"`

	prg cel.Program
}

// Compile 编译规则集。任一表达式非法即整体失败（规则集属于启动配置）。
func Compile(rules []Rule) ([]Rule, error) {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		prg, err := dsl.Compile(r.Expr)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		r.prg = prg
		out[i] = r
	}
	return out, nil
}

// Default 返回缺省规则集：每个耐药判定提示避免使用该抗生素。
func Default() []Rule {
	rules, err := Compile([]Rule{
		{
			Name:    "avoid_resistant",
			Expr:    "resistant",
			Message: "Avoid using %s. Consider alternative antibiotic.",
		},
	})
	if err != nil {
		// 缺省表达式为常量，编译失败意味着 CEL 环境本身不可用
		panic(err)
	}
	return rules
}

// Apply 对单条预测求值全部规则，返回命中的建议文案。
// 单条规则求值失败只跳过该规则，不影响其余规则与请求。
func Apply(rules []Rule, p *core.Prediction) []string {
	var out []string
	for i := range rules {
		r := &rules[i]
		if r.prg == nil {
			continue
		}
		matched, err := dsl.EvalPrediction(r.prg, p)
		if err != nil || !matched {
			continue
		}
		msg := r.Message
		if strings.Contains(msg, "%s") {
			msg = fmt.Sprintf(msg, p.Antibiotic)
		}
		out = append(out, msg)
	}
	return out
}
