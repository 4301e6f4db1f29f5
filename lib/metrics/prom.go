package metrics

// InitPrometheusMetrics replaces the nop metrics with prometheus ones
// registered to the default registry. Call it once.
func InitPrometheusMetrics() {
	Version = PromVersion()
	Governance = PromGovernanceMetrics()
	API = PromAPIMetrics()
}
