package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"webmall/evaluation/webmall/checklist"
	"webmall/evaluation/webmall/evaluator"
	"webmall/evaluation/webmall/shops"
	"webmall/evaluation/webmall/task"
	"webmall/evaluation/webmall/taskspec"
	werrors "webmall/internal/errors"
	"webmall/internal/logging"
	"webmall/internal/metrics"
)

// evalHandler serves the task catalog and the session lifecycle.
type evalHandler struct {
	catalog          *taskspec.Catalog
	policies         *checklist.PolicyRegistry
	urls             shops.URLs
	defaultWeighting string
	taskOptions      []task.Option
	metrics          *metrics.Metrics
	sessions         *sessionStore
	logger           logging.Logger
}

func (h *evalHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"tasks":    len(h.catalog.Tasks()),
		"sessions": h.sessions.len(),
	})
}

func (h *evalHandler) listTasks(c *gin.Context) {
	var out []taskSummary
	for _, set := range h.catalog.Sets {
		for _, spec := range set.Tasks {
			out = append(out, taskSummary{
				ID:         spec.ID,
				Set:        set.ID,
				Category:   spec.Category,
				AnswerType: spec.AnswerType(),
				Weighting:  h.catalog.Weighting(spec.ID, h.defaultWeighting),
			})
		}
	}
	if out == nil {
		out = []taskSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": out, "policies": h.policies.Names()})
}

// previewChecklist builds the checklist of a task without opening a session.
func (h *evalHandler) previewChecklist(c *gin.Context) {
	t, weighting, err := h.newTask(c.Param("id"), c.Query("weighting"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"task_id":   t.ID(),
		"weighting": weighting,
		"max_score": t.Checklist().MaxScore(),
		"checklist": t.Checklist().Records(),
	})
}

func (h *evalHandler) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	t, weighting, err := h.newTask(req.TaskID, req.Weighting)
	if err != nil {
		h.writeError(c, err)
		return
	}
	instruction, meta, err := t.Setup(c.Request.Context())
	if err != nil {
		h.logger.Warn("setup of %s failed: %v", req.TaskID, err)
		c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	sess := h.sessions.add(t, weighting)
	h.metrics.SessionOpened()
	h.logger.Info("session %s opened for task %s (%s)", sess.id, t.ID(), weighting)

	c.JSON(http.StatusCreated, createSessionResponse{
		SessionID:   sess.id,
		TaskID:      t.ID(),
		Weighting:   weighting,
		Instruction: instruction,
		Metadata:    meta,
		Checklist:   t.Checklist().Records(),
	})
}

func (h *evalHandler) getSession(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	list := sess.task.Checklist()
	c.JSON(http.StatusOK, sessionResponse{
		SessionID:  sess.id,
		TaskID:     sess.task.ID(),
		Weighting:  sess.weighting,
		CreatedAt:  sess.createdAt,
		Steps:      sess.steps,
		Done:       sess.done,
		TotalScore: list.TotalScore(),
		MaxScore:   list.MaxScore(),
		Completed:  list.AllCompleted(),
		Checklist:  list.Records(),
	})
}

func (h *evalHandler) validate(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	var page *evaluator.PageSnapshot
	if req.Page != nil {
		page = evaluator.NewPageSnapshot(req.Page.URL, req.Page.Content)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	result, err := sess.task.Validate(c.Request.Context(), page, req.Chat)
	if err != nil {
		h.writeError(c, err)
		return
	}
	sess.steps++
	sess.done = sess.done || result.Done
	c.JSON(http.StatusOK, result)
}

func (h *evalHandler) deleteSession(c *gin.Context) {
	if !h.sessions.remove(c.Param("id")) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	h.logger.Info("session %s closed", c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *evalHandler) lookup(c *gin.Context) (*session, bool) {
	sess, ok := h.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "session not found"})
		return nil, false
	}
	return sess, true
}

var errTaskNotFound = errors.New("task not found")

func (h *evalHandler) newTask(taskID, weighting string) (*task.Task, string, error) {
	spec, _, ok := h.catalog.Find(taskID)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", errTaskNotFound, taskID)
	}
	if weighting == "" {
		weighting = h.catalog.Weighting(taskID, h.defaultWeighting)
	}
	policy, err := h.policies.Lookup(weighting)
	if err != nil {
		return nil, "", err
	}

	opts := append([]task.Option{}, h.taskOptions...)
	opts = append(opts, task.WithPolicy(policy), task.WithRecorder(h.metrics))
	t, err := task.New(spec, h.urls, opts...)
	if err != nil {
		return nil, "", err
	}
	return t, policy.Name, nil
}

func (h *evalHandler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errTaskNotFound):
		status = http.StatusNotFound
	case werrors.IsFatal(err):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}
