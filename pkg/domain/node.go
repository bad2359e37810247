package domain

// Node IDs of the routing graph.
const (
	NodeManager    = "Manager"
	NodeTranslator = "Translator"
	NodeSummarizer = "Summarizer"
	NodeCalculator = "Calculator"
	NodeDefault    = "Default"
)

// NodeKind classifies nodes for rendering.
type NodeKind string

const (
	// NodeKindStart is the entry node; it decides where to go next.
	NodeKindStart NodeKind = "start"
	// NodeKindTerminal produces the result and ends the request.
	NodeKindTerminal NodeKind = "terminal"
)

// Node is a point in the routing graph.
type Node struct {
	ID          string       `json:"id" yaml:"id"`
	Kind        NodeKind     `json:"kind" yaml:"kind"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Transitions []Transition `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// Transition is a conditional edge out of a node.
// An empty Condition is the fallback edge.
type Transition struct {
	ToNodeID  string `json:"to_node_id" yaml:"to"`
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}
