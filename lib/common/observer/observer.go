//
// Event buses of the governance engine.
//
// Events are triggered after the unit of work that produced them is
// committed; subscribers (metrics, logs, caches) must not block.
//
package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

var ProposalObserver = observable.New()
var VoteObserver = observable.New()

const (
	ProposalSubmitted = "submitted"
	ProposalPassed    = "passed"
	ProposalRejected  = "rejected"
	ProposalExecuted  = "executed"
	VoteCast          = "cast"
	ConditionAll      = "*"
	ConditionID       = "id"
)

type Event struct {
	Resource  string `json:"resource"`
	Condition string `json:"condition"`
	Id        string `json:"id"`
}

func NewEvent(resource, condition, id string) Event {
	return Event{
		Resource:  resource,
		Condition: condition,
		Id:        id,
	}
}

// String returns the event name used with `Trigger` / `On`, e.g.
// "passed-id=3" or "passed-*".
func (e Event) String() string {
	toStr := e.Resource + "-"
	if e.Condition == ConditionAll {
		toStr += e.Condition
	} else {
		toStr += e.Condition + "="
		toStr += e.Id
	}
	return toStr
}
