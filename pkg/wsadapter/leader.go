package wsadapter

// electionResult is the outcome of evaluating one election frame against
// the current client id.
type electionResult struct {
	previousLeader string
	newLeader      string
	isSelf         bool
}

// evaluateElection reports the previous and new leader and whether
// clientID was just elected leader. It updates nothing: the caller owns
// leaderID's storage and stores newLeader unconditionally. Being pure, it
// is trivial to test in isolation from the run loop.
func evaluateElection(clientID, previousLeader, newLeader string) electionResult {
	return electionResult{
		previousLeader: previousLeader,
		newLeader:      newLeader,
		isSelf:         clientID != "" && clientID == newLeader,
	}
}
