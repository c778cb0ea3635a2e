package calculator

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"decimal-calc/internal/calculation"
)

// CalcRequest is the JSON body for POST /calculator/{operation}. Operands may
// be JSON numbers or numeric strings.
type CalcRequest struct {
	A json.Number `json:"a"`
	B json.Number `json:"b"`
}

// CalcResponse is the JSON response for a successful calculation.
type CalcResponse struct {
	ID        string          `json:"id"`
	Operation string          `json:"operation"`
	A         string          `json:"a"`
	B         string          `json:"b"`
	Result    decimal.Decimal `json:"result"`
}

// HistoryEntry is one calculation as listed by the history endpoints.
type HistoryEntry struct {
	ID        string          `json:"id"`
	Operation string          `json:"operation"`
	A         decimal.Decimal `json:"a"`
	B         decimal.Decimal `json:"b"`
	CreatedAt time.Time       `json:"created_at"`
}

// HistoryResponse is the JSON response for GET /calculator/history.
type HistoryResponse struct {
	Calculations []HistoryEntry `json:"calculations"`
}

// OperationsResponse is the JSON response for GET /calculator/operations.
type OperationsResponse struct {
	Operations []string `json:"operations"`
}

func newHistoryEntry(c calculation.Calculation) HistoryEntry {
	return HistoryEntry{
		ID:        c.ID(),
		Operation: c.OperationName(),
		A:         c.A(),
		B:         c.B(),
		CreatedAt: c.CreatedAt(),
	}
}
