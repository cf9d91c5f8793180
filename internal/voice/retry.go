package voice

import (
	"time"

	"virtualagent-backend/pkg/agentclient"
)

// Action tells the turn controller how to react to a failed call.
type Action int

const (
	// ActionAbortTurn gives up on the current turn; the conversation
	// stays enabled.
	ActionAbortTurn Action = iota
	// ActionRetry waits Delay and repeats the same call without
	// re-recording or duplicating the user message.
	ActionRetry
	// ActionDisable ends conversation mode entirely; the stored
	// credentials are wrong and retrying cannot help.
	ActionDisable
)

// Policy is one row of the retry table.
type Policy struct {
	Action      Action
	Delay       time.Duration
	MaxAttempts int
}

// retryTable maps every failure kind to its recovery, in one place rather
// than scattered through the turn stages.
var retryTable = map[agentclient.FailureKind]Policy{
	agentclient.KindAuthentication: {Action: ActionDisable},
	agentclient.KindPayment:        {Action: ActionDisable},
	agentclient.KindRateLimit:      {Action: ActionRetry, Delay: 60 * time.Second, MaxAttempts: 2},
	agentclient.KindInvalidRequest: {Action: ActionAbortTurn},
	agentclient.KindServer:         {Action: ActionRetry, Delay: 2 * time.Second, MaxAttempts: 3},
}

// PolicyFor returns the recovery policy for an error from the backend
// client. Unknown errors abort the turn but keep the conversation running.
func PolicyFor(err error) Policy {
	if err == nil {
		return Policy{Action: ActionAbortTurn}
	}
	if p, ok := retryTable[agentclient.KindOf(err)]; ok {
		return p
	}
	return Policy{Action: ActionAbortTurn}
}
