package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/taskroute/pkg/domain"
)

// OtherwiseLabel marks the fallback edge of the start node.
const OtherwiseLabel = "otherwise"

// GraphOverlay highlights a route through the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a list of nodes.
// It applies semantic styling:
// - Start: ((Circle))
// - Terminal: ([Stadium])
// Routing edges are dashed and labelled with the agent token.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(nodes []domain.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Kind {
		case domain.NodeKindStart:
			opener, closer = "((", "))"
		case domain.NodeKindTerminal:
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, node.ID, closer)

		for _, t := range node.Transitions {
			label := t.Condition
			if label == "" {
				label = OtherwiseLabel
			}
			// Escape double quotes in condition for Mermaid label
			label = strings.ReplaceAll(label, "\"", "'")
			fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", safeID, label, sanitizeMermaidID(t.ToNodeID))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentNode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

// RouteOverlay highlights the path from the start node to the node chosen for agent.
// An unknown agent highlights the fallback edge target.
func RouteOverlay(nodes []domain.Node, agent string) *GraphOverlay {
	for _, n := range nodes {
		if n.Kind != domain.NodeKindStart {
			continue
		}
		target := ""
		for _, t := range n.Transitions {
			if t.Condition == agent || (t.Condition == "" && target == "") {
				target = t.ToNodeID
			}
			if t.Condition == agent {
				break
			}
		}
		return &GraphOverlay{VisitedNodes: []string{n.ID}, CurrentNode: target}
	}
	return nil
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
