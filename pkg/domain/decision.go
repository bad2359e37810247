package domain

// Decision is the structured routing output produced by the Manager node.
type Decision struct {
	Agent Agent  `json:"agent"`
	Input string `json:"input"`
}

// Result is the only payload a terminal handler produces.
type Result struct {
	Result string `json:"result"`
}

// Response is what a completed route returns to its caller.
type Response struct {
	Agent  string `json:"agent"`
	Input  string `json:"input"`
	Result string `json:"result"`
}
