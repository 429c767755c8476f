package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Masteraddy/teamsbot-test/internal/app/orch"
	"github.com/Masteraddy/teamsbot-test/internal/domain"
)

type callsAPI struct {
	orch *orch.Orchestrator
	port int
}

type joinResponse struct {
	CallID     string `json:"callId"`
	ScenarioID string `json:"scenarioId"`
	ThreadID   string `json:"threadId"`
	Port       string `json:"port"`
}

type problemResponse struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// problem maps any failure, including an already-joined thread, to a 500
// with the failure message and diagnostic detail.
func problem(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, problemResponse{
		Title:  err.Error(),
		Detail: fmt.Sprintf("%+v", err),
	})
}

func (a *callsAPI) joinCall(c *gin.Context) {
	var req domain.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		problem(c, fmt.Errorf("invalid join body: %w", err))
		return
	}

	res, err := a.orch.Join(c.Request.Context(), req)
	if err != nil {
		problem(c, err)
		return
	}

	c.JSON(http.StatusOK, joinResponse{
		CallID:     res.CallID,
		ScenarioID: res.ScenarioID.String(),
		ThreadID:   string(res.ThreadID),
		Port:       strconv.Itoa(a.port),
	})
}

// endCall always answers 204: the orchestrator absorbs platform failures and
// treats an untracked thread as already gone.
func (a *callsAPI) endCall(c *gin.Context) {
	threadID := domain.ThreadID(c.Query("threadId"))
	outcome := a.orch.EndCall(c.Request.Context(), threadID)
	if outcome == orch.EndCallUnknownThread {
		log.Info().Str("module", "adapters.http").Str("thread", string(threadID)).Msg("end call for unknown thread")
	}
	c.Status(http.StatusNoContent)
}

func health(c *gin.Context) {
	c.Status(http.StatusOK)
}

func test(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}
