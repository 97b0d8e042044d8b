package http

import (
	"time"

	"webmall/evaluation/webmall/checklist"
	"webmall/evaluation/webmall/task"
)

type errorResponse struct {
	Error string `json:"error"`
}

type taskSummary struct {
	ID         string `json:"id"`
	Set        string `json:"set"`
	Category   string `json:"category,omitempty"`
	AnswerType string `json:"answer_type"`
	Weighting  string `json:"weighting"`
}

type createSessionRequest struct {
	TaskID    string `json:"task_id" binding:"required"`
	Weighting string `json:"weighting"`
}

type createSessionResponse struct {
	SessionID   string             `json:"session_id"`
	TaskID      string             `json:"task_id"`
	Weighting   string             `json:"weighting"`
	Instruction string             `json:"instruction"`
	Metadata    map[string]any     `json:"metadata"`
	Checklist   []checklist.Record `json:"checklist"`
}

type pagePayload struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

type validateRequest struct {
	Page *pagePayload        `json:"page"`
	Chat []task.ChatMessage `json:"chat"`
}

type sessionResponse struct {
	SessionID  string             `json:"session_id"`
	TaskID     string             `json:"task_id"`
	Weighting  string             `json:"weighting"`
	CreatedAt  time.Time          `json:"created_at"`
	Steps      int                `json:"steps"`
	Done       bool               `json:"done"`
	TotalScore float64            `json:"total_score"`
	MaxScore   float64            `json:"max_score"`
	Completed  bool               `json:"completed"`
	Checklist  []checklist.Record `json:"checklist"`
}
