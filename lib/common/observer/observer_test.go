package observer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventString(t *testing.T) {
	require.Equal(t, "passed-*", NewEvent(ProposalPassed, ConditionAll, "").String())
	require.Equal(t, "cast-id=7", NewEvent(VoteCast, ConditionID, "7").String())
}

func TestObserverTrigger(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	name := NewEvent(ProposalSubmitted, ConditionAll, "").String()

	var triggered uint64
	ObserverFunc := func(args ...interface{}) {
		triggered = args[0].(uint64)
		wg.Done()
	}
	ProposalObserver.On(name, ObserverFunc)
	defer ProposalObserver.Off(name, ObserverFunc)

	ProposalObserver.Trigger(name, uint64(1))
	wg.Wait()

	require.Equal(t, uint64(1), triggered)
}
