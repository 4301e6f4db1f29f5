package metrics

const (
	Namespace           = "council"
	GovernanceSubsystem = "governance"
	APISubsystem        = "api"
)
