package events

import (
	"encoding/json"
	"fmt"
	"time"

	"neonspend/internal/core"
)

// Kind identifies a mutation event on the expense collection.
type Kind string

const (
	ExpenseCreated  Kind = "expense.created"
	ExpenseDeleted  Kind = "expense.deleted"
	ExpensesCleared Kind = "expenses.cleared"
)

// Message is one mutation event. Created and deleted events carry the full
// record so consumers never have to read it back from the store.
type Message struct {
	Kind      Kind          `json:"kind"`
	Expense   *core.Expense `json:"expense,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

func NewCreated(e core.Expense) *Message {
	return &Message{Kind: ExpenseCreated, Expense: &e, Timestamp: time.Now().UTC()}
}

func NewDeleted(e core.Expense) *Message {
	return &Message{Kind: ExpenseDeleted, Expense: &e, Timestamp: time.Now().UTC()}
}

func NewCleared() *Message {
	return &Message{Kind: ExpensesCleared, Timestamp: time.Now().UTC()}
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch msg.Kind {
	case ExpenseCreated, ExpenseDeleted:
		if msg.Expense == nil {
			return nil, fmt.Errorf("%s event without expense payload", msg.Kind)
		}
	case ExpensesCleared:
	default:
		return nil, fmt.Errorf("unknown event kind %q", msg.Kind)
	}
	return &msg, nil
}
