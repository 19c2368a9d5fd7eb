package safego

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/parsa-ai/parsa-core-api/pkg/logs"
)

// Go 启动带recover的协程, 用于后台任务(如标题生成), panic不会波及主流程
func Go(ctx context.Context, fn func()) {
	go func() {
		defer Recovery(ctx)

		fn()
	}()
}

func Recovery(ctx context.Context) {
	e := recover()
	if e == nil {
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}

	err := fmt.Errorf("%v", e)
	logs.CtxErrorf(ctx, "[catch panic] err = %v \n stacktrace:\n%s", err, debug.Stack())
}
