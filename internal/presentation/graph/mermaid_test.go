package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/taskroute/internal/presentation/graph"
	"github.com/aretw0/taskroute/pkg/domain"
)

func routingGraph() []domain.Node {
	return []domain.Node{
		{
			ID:   domain.NodeManager,
			Kind: domain.NodeKindStart,
			Transitions: []domain.Transition{
				{ToNodeID: domain.NodeTranslator, Condition: "translate"},
				{ToNodeID: domain.NodeSummarizer, Condition: "summarize"},
				{ToNodeID: domain.NodeCalculator, Condition: "calculate"},
				{ToNodeID: domain.NodeDefault},
			},
		},
		{ID: domain.NodeTranslator, Kind: domain.NodeKindTerminal},
		{ID: domain.NodeSummarizer, Kind: domain.NodeKindTerminal},
		{ID: domain.NodeCalculator, Kind: domain.NodeKindTerminal},
		{ID: domain.NodeDefault, Kind: domain.NodeKindTerminal},
	}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []domain.Node
		contains []string
	}{
		{
			name:  "Routing Graph",
			nodes: routingGraph(),
			contains: []string{
				"graph TD\n",
				"Manager((\"Manager\"))",
				"Translator([\"Translator\"])",
				"Default([\"Default\"])",
				"Manager -. \"translate\" .-> Translator",
				"Manager -. \"calculate\" .-> Calculator",
				"Manager -. \"otherwise\" .-> Default",
			},
		},
		{
			name: "ID Sanitization",
			nodes: []domain.Node{
				{ID: "path/to/file.md"},
				{ID: "hyphen-ated"},
			},
			contains: []string{
				"path_to_file_md[\"path/to/file.md\"]",
				"hyphen_ated[\"hyphen-ated\"]",
			},
		},
		{
			name: "Transition Escaping",
			nodes: []domain.Node{
				{ID: "a", Transitions: []domain.Transition{{ToNodeID: "b", Condition: `say "hi"`}}},
			},
			contains: []string{
				`a -. "say 'hi'" .-> b`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.nodes, nil)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() missing %q\nGot:\n%s", want, got)
				}
			}
			if strings.Contains(got, "Overlay") {
				t.Error("no overlay requested")
			}
		})
	}
}

func TestGenerateMermaid_RouteOverlay(t *testing.T) {
	nodes := routingGraph()

	tests := []struct {
		agent   string
		current string
	}{
		{"calculate", domain.NodeCalculator},
		{"translate", domain.NodeTranslator},
		{"poem", domain.NodeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.agent, func(t *testing.T) {
			overlay := graph.RouteOverlay(nodes, tt.agent)
			if overlay == nil || overlay.CurrentNode != tt.current {
				t.Fatalf("RouteOverlay(%q) = %+v, want current %s", tt.agent, overlay, tt.current)
			}

			got := graph.GenerateMermaid(nodes, overlay)
			if !strings.Contains(got, "class Manager visited;") {
				t.Errorf("expected Manager visited, got:\n%s", got)
			}
			if !strings.Contains(got, "class "+tt.current+" current;") {
				t.Errorf("expected %s current, got:\n%s", tt.current, got)
			}
		})
	}
}

func TestRouteOverlay_NoStart(t *testing.T) {
	if graph.RouteOverlay([]domain.Node{{ID: "x"}}, "translate") != nil {
		t.Error("expected nil overlay without a start node")
	}
}
