package logs

// 统一日志入口, 封装hertz的hlog
// 业务代码只依赖本包, 方便后续替换底层实现

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func Infof(format string, v ...any) {
	hlog.Infof(format, v...)
}

func Warnf(format string, v ...any) {
	hlog.Warnf(format, v...)
}

func Errorf(format string, v ...any) {
	hlog.Errorf(format, v...)
}

// Error 与Errorf等价, 保留旧调用习惯
func Error(format string, v ...any) {
	hlog.Errorf(format, v...)
}

func CtxInfof(ctx context.Context, format string, v ...any) {
	hlog.CtxInfof(ctx, format, v...)
}

func CtxWarnf(ctx context.Context, format string, v ...any) {
	hlog.CtxWarnf(ctx, format, v...)
}

func CtxErrorf(ctx context.Context, format string, v ...any) {
	hlog.CtxErrorf(ctx, format, v...)
}

// CondErrorf 条件成立时记录错误, 常用于过滤io.EOF
func CondErrorf(cond bool, format string, v ...any) {
	if cond {
		hlog.Errorf(format, v...)
	}
}
