package viewmodel

import "tableflip.dev/calllog/pkg/call"

// Result is the outcome of a mutation. It is either Success or Failure.
type Result interface {
	isResult()
}

// Success carries the entity as the store now holds it.
type Success struct {
	Call call.Call
}

// Failure carries the reason a mutation was not applied. Input holds any user
// input the caller should keep for a retry.
type Failure struct {
	Reason error
	Input  string
}

func (Success) isResult() {}
func (Failure) isResult() {}

func (f Failure) Error() string {
	if f.Reason == nil {
		return "failed"
	}
	return f.Reason.Error()
}
