package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/shopperos/tastekit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Program 把一条候选规则表达式编译为可复用的 CEL 程序。
// 表达式使用 CEL (Common Expression Language) 语法，必须返回布尔值。
//
// 可用变量：
//   - item.id / item.score / item.reason
//   - item.category / item.color / item.price / item.brand（商品未解析时为零值）
//   - label.<key>（Label 的 Value，不存在的 key 需用 label.key != null 判断）
//
// 示例：
//   - `item.price >= 20.0 && item.price <= 80.0`
//   - `item.category != "Socks"`
//   - `label.recall_source == "popular"`
type Program struct {
	prg cel.Program
}

// Compile 编译表达式并缓存为 Program，可并发调用 Eval。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
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

	return &Program{prg: prg}, nil
}

// Eval 对单个候选执行表达式，返回布尔结果。
func (p *Program) Eval(c *core.Candidate) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(c))
	if err != nil {
		// 对于不存在的 key，CEL 会返回错误；
		// 规则应使用 label.key != null 检查存在性而非直接访问
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(c *core.Candidate) map[string]interface{} {
	labels := make(map[string]interface{}, len(c.Labels))
	for k, v := range c.Labels {
		labels[k] = v.Value
	}

	item := map[string]interface{}{
		"id":     c.ID,
		"score":  c.Score,
		"reason": c.Reason,
	}
	if c.Product != nil {
		item["category"] = c.Product.Category
		item["color"] = c.Product.Color
		item["price"] = c.Product.Price
		item["brand"] = c.Product.Brand
	} else {
		item["category"] = ""
		item["color"] = ""
		item["price"] = 0.0
		item["brand"] = ""
	}

	return map[string]interface{}{
		"item":  item,
		"label": labels,
	}
}
