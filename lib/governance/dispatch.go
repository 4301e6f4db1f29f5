package governance

import (
	"sort"
)

// OrderExecuteCalls returns a copy of `calls` sorted by ascending
// `ExecutionOrder`. Calls sharing an order keep their submitted order.
func OrderExecuteCalls(calls []ExecuteCall) []ExecuteCall {
	ordered := make([]ExecuteCall, len(calls))
	copy(ordered, calls)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ExecutionOrder < ordered[j].ExecutionOrder
	})

	return ordered
}

// DispatchMessages returns one message per call, in execution order.
func DispatchMessages(calls []ExecuteCall) []Message {
	if len(calls) < 1 {
		return nil
	}

	messages := make([]Message, 0, len(calls))
	for _, c := range OrderExecuteCalls(calls) {
		messages = append(messages, Message{Target: c.Target, Msg: c.Msg})
	}

	return messages
}
