package filter

import (
	"context"

	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/pkg/dsl"
)

// Expr 是 CEL 表达式过滤器：表达式为真时保留候选（Keep 语义）。
// 用于配置驱动的业务规则，例如：
//
//	expr, _ := filter.NewExpr(`item.price >= 20.0 && item.category != "Socks"`)
//
// 表达式语法见 pkg/dsl。
type Expr struct {
	prg *dsl.Program
}

// NewExpr 编译规则表达式，编译失败立即返回错误（配置错误应在启动时暴露）。
func NewExpr(expr string) (*Expr, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"filter: bad expression: "+err.Error())
	}
	return &Expr{prg: prg}, nil
}

func (f *Expr) Name() string { return "filter.expr" }

func (f *Expr) ShouldFilter(_ context.Context, _ *core.Query, c *core.Candidate) (bool, error) {
	keep, err := f.prg.Eval(c)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
