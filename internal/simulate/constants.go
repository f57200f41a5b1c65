package simulate

// Submission outcomes.
const (
	resultAccepted  = "accepted"
	resultDuplicate = "duplicate"
	resultRejected  = "rejected"
	resultFailed    = "failed"
)

// Jitter applied around the anchor fix.
const (
	latJitterDeg     = 1.5
	lonJitterDeg     = 1.5
	windJitterMph    = 25.0
	pressureJitterMb = 15.0
)

const (
	workerChannelMultiplier = 2
	percentageMultiplier    = 100
	maxErrorBody            = 512
)
