package runtime_test

import (
	"testing"

	"github.com/aretw0/taskroute/internal/runtime"
	"github.com/aretw0/taskroute/internal/testutils"
	"github.com/aretw0/taskroute/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Inspect(t *testing.T) {
	nodes := runtime.NewEngine(testutils.NewScriptedGenerator()).Inspect()
	require.Len(t, nodes, 5)

	manager := nodes[0]
	assert.Equal(t, domain.NodeManager, manager.ID)
	assert.Equal(t, domain.NodeKindStart, manager.Kind)
	assert.Equal(t, []domain.Transition{
		{ToNodeID: domain.NodeTranslator, Condition: "translate"},
		{ToNodeID: domain.NodeSummarizer, Condition: "summarize"},
		{ToNodeID: domain.NodeCalculator, Condition: "calculate"},
		{ToNodeID: domain.NodeDefault},
	}, manager.Transitions)

	for _, n := range nodes[1:] {
		assert.Equal(t, domain.NodeKindTerminal, n.Kind, n.ID)
		assert.Empty(t, n.Transitions, "terminal nodes never transition")
		assert.NotEmpty(t, n.Description)
	}
}
