package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AgentLog - запись аудита одного шага принятия решения.
// Записи только добавляются и никогда не изменяются.
type AgentLog struct {
	ID          uuid.UUID       `json:"id"`
	AgentID     string          `json:"agent_id"` // DID-идентификатор агента, например "did:agent:triage"
	EmergencyID int64           `json:"emergency_id"`
	Action      string          `json:"action"`
	Input       json.RawMessage `json:"input"`
	Output      json.RawMessage `json:"output,omitempty"`
	DurationMs  int64           `json:"duration_ms"`
	Success     bool            `json:"success"`
	ErrorDetail *string         `json:"error_detail,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
