package app

import (
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// TaskPool runs detached work (answering inbound calls, media teardown after
// removal) so notification handlers return promptly. Failures have no caller
// to report to, so the pool logs them itself.
type TaskPool struct {
	pool *pool.Pool
}

func NewTaskPool(maxWorkers int) *TaskPool {
	if maxWorkers <= 0 {
		maxWorkers = 8
	}
	return &TaskPool{pool: pool.New().WithMaxGoroutines(maxWorkers)}
}

// Go submits a task. The name shows up in logs when the task fails.
func (p *TaskPool) Go(name string, task func() error) {
	p.pool.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				MetricTaskFailures.Inc()
				log.Error().Str("module", "app.pool").Str("task", name).Any("panic", r).Msg("detached task panicked")
			}
		}()
		if err := task(); err != nil {
			MetricTaskFailures.Inc()
			log.Error().Err(err).Str("module", "app.pool").Str("task", name).Msg("detached task failed")
		}
	})
}

// Wait blocks until all submitted tasks finish. Called once during shutdown.
func (p *TaskPool) Wait() {
	p.pool.Wait()
}
