package domain

// Agent names the terminal handler a task is routed to.
// The set is closed: there is no default member.
type Agent string

const (
	AgentTranslate Agent = "translate"
	AgentSummarize Agent = "summarize"
	AgentCalculate Agent = "calculate"
)

// Agents lists every valid Agent in routing-table order.
var Agents = []Agent{AgentTranslate, AgentSummarize, AgentCalculate}

// ParseAgent matches s case-sensitively against the agent tokens.
func ParseAgent(s string) (Agent, bool) {
	a := Agent(s)
	return a, a.Valid()
}

// Valid reports whether a is one of the known agents.
func (a Agent) Valid() bool {
	switch a {
	case AgentTranslate, AgentSummarize, AgentCalculate:
		return true
	}
	return false
}

func (a Agent) String() string {
	return string(a)
}
