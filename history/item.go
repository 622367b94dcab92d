package history

import "time"

// Calculation is the outcome of one evaluation, before it is recorded.
type Calculation struct {
	Expression string
	Value      Result
	Error      string
}

// Success returns the Calculation for a successful evaluation.
func Success(expression string, v float64) Calculation {
	return Calculation{Expression: expression, Value: Number(v)}
}

// Failure returns the Calculation for a failed evaluation with its message.
func Failure(expression, message string) Calculation {
	return Calculation{Expression: expression, Value: ErrorResult(), Error: message}
}

// Item is a recorded calculation. Items are never modified after creation.
type Item struct {
	ID         string    `json:"id"`
	Expression string    `json:"expression"`
	Result     Result    `json:"result"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
