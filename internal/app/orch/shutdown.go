package orch

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Masteraddy/teamsbot-test/internal/app"
	"github.com/Masteraddy/teamsbot-test/internal/platform"
)

// ShutdownCoordinator terminates the platform client and drains outstanding
// background work during graceful stop. Shutdown runs once per process; any
// registry or platform operation after it completes is undefined.
type ShutdownCoordinator struct {
	client platform.Client
	tasks  *app.TaskPool
	once   sync.Once
}

func NewShutdownCoordinator(client platform.Client, tasks *app.TaskPool) *ShutdownCoordinator {
	return &ShutdownCoordinator{client: client, tasks: tasks}
}

func (s *ShutdownCoordinator) Shutdown(ctx context.Context) {
	s.once.Do(func() {
		log.Warn().Str("module", "orch").Msg("shutting down the bot")
		if err := s.client.Terminate(ctx); err != nil {
			log.Error().Err(err).Str("module", "orch").Msg("terminate failed")
		}
		s.tasks.Wait()
		s.client.Dispose()
	})
}
