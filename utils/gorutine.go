package utils

import (
	"context"
	"time"

	clog "docker-worker-mgr/utils/log" //custom log
)

/*
f를 고루틴에서 실행하고,
panic 시 복구한 뒤 restartDelay 대기 후 재실행을 무한 반복.
ctx가 취소되면 루프를 종료함.
*/
func SafeGoRoutineCtx(ctx context.Context, restartDelay time.Duration, f func(ctx context.Context)) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			func() {
				defer func() {
					if r := recover(); r != nil {
						clog.Error("Recovered from panic", "panic", r)
					}
				}()
				f(ctx)
			}()

			if ctx.Err() != nil {
				return
			}

			clog.Error("SafeGoRoutine: function exited, restarting", "delay", restartDelay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(restartDelay):
			}
		}
	}()
}
