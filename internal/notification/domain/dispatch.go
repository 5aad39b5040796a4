package domain

// DispatchResult is the outcome of one send attempt to one device token.
type DispatchResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Result  string `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DispatchSummary aggregates the per-token results of one dispatch.
// Results holds exactly one entry per device token that was fetched.
type DispatchSummary struct {
	Success bool             `json:"success"`
	Sent    int              `json:"sent"`
	Failed  int              `json:"failed"`
	Results []DispatchResult `json:"results"`
}
