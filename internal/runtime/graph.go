package runtime

import "github.com/aretw0/taskroute/pkg/domain"

var nodeDescriptions = map[string]string{
	domain.NodeManager:    "Classifies the task into an agent",
	domain.NodeTranslator: "Translates the input to English",
	domain.NodeSummarizer: "Summarizes the input in 1-2 sentences",
	domain.NodeCalculator: "Evaluates arithmetic locally, else asks the model",
	domain.NodeDefault:    "Apologizes for an unknown task",
}

// Inspect returns the routing graph in a stable order: the Manager first,
// then the terminal nodes in routing-table order, then Default.
func (e *Engine) Inspect() []domain.Node {
	manager := domain.Node{
		ID:          domain.NodeManager,
		Kind:        domain.NodeKindStart,
		Description: nodeDescriptions[domain.NodeManager],
	}
	nodes := []domain.Node{}
	for _, agent := range domain.Agents {
		id := e.Next(agent)
		manager.Transitions = append(manager.Transitions, domain.Transition{ToNodeID: id, Condition: string(agent)})
		nodes = append(nodes, terminal(id))
	}
	manager.Transitions = append(manager.Transitions, domain.Transition{ToNodeID: domain.NodeDefault})
	nodes = append(nodes, terminal(domain.NodeDefault))

	return append([]domain.Node{manager}, nodes...)
}

func terminal(id string) domain.Node {
	return domain.Node{
		ID:          id,
		Kind:        domain.NodeKindTerminal,
		Description: nodeDescriptions[id],
	}
}
