// Package dsl 基于 CEL (Common Expression Language) 提供预测结果上的规则表达式求值。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/amrkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// initCELEnv 初始化 CEL 环境，定义规则可见的变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("antibiotic", cel.StringType),
		cel.Variable("resistant", cel.BoolType),
		cel.Variable("probability", cel.DoubleType),
	)
}

// Env 获取或创建全局 CEL 环境。
func Env() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Compile 编译规则表达式为可复用的 cel.Program。
// 表达式必须返回布尔值；编译一次，按预测多次求值。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：resistant / !resistant
//   - 数值：probability > 0.9 / probability >= 0.5
//   - 逻辑：resistant && probability > 0.8
//   - 标签：antibiotic == "Amoxicillin"
func Compile(expr string) (cel.Program, error) {
	env, err := Env()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}
	return prg, nil
}

// EvalPrediction 对单条预测求值已编译的规则表达式，返回布尔结果。
func EvalPrediction(prg cel.Program, p *core.Prediction) (bool, error) {
	out, _, err := prg.Eval(map[string]interface{}{
		"antibiotic":  p.Antibiotic,
		"resistant":   p.Resistant,
		"probability": p.Probability,
	})
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}
