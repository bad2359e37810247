package taskroute_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/taskroute"
	"github.com/aretw0/taskroute/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Batch(t *testing.T) {
	gen := testutils.NewScriptedGenerator(
		testutils.Text(`{"agent":"translate","input":"Bonjour le monde"}`),
		testutils.Text("Hello world"),
		testutils.Text(`{"agent":"summarize","input":"long"}`),
		testutils.Text("Short."),
		testutils.Text(`{"agent":"calculate","input":"12 * 8 - 6"}`),
	)
	router, err := taskroute.New(gen)
	require.NoError(t, err)

	var out bytes.Buffer
	r := &taskroute.Runner{Output: &out, Headless: true}
	require.NoError(t, r.Batch(context.Background(), router, taskroute.DemoRequests))

	assert.Equal(t, "[translate] Hello world\n[summarize] Short.\n[calculate] 90\n", out.String())
}

func TestRunner_Batch_StopsOnError(t *testing.T) {
	router, err := taskroute.New(testutils.NewScriptedGenerator(testutils.Fail(errors.New("down"))))
	require.NoError(t, err)

	var out bytes.Buffer
	r := &taskroute.Runner{Output: &out, Headless: true}
	err = r.Batch(context.Background(), router, taskroute.DemoRequests)
	assert.ErrorContains(t, err, "down")
	assert.Empty(t, out.String())
}

func TestRunner_Run(t *testing.T) {
	gen := testutils.NewScriptedGenerator(
		testutils.Text(`{"agent":"calculate","input":"1+1"}`),
		testutils.Fail(errors.New("down")),
		testutils.Text(`{"agent":"calculate","input":"2*3"}`),
	)
	router, err := taskroute.New(gen)
	require.NoError(t, err)

	in := strings.NewReader("add\n1+1\ntranslate\nhola\nmul\n2*3\nexit\n")
	var out bytes.Buffer
	r := &taskroute.Runner{Input: in, Output: &out, Headless: true}

	require.NoError(t, r.Run(context.Background(), router))
	assert.Equal(t, "[calculate] 2\nerror: Manager: text generation failed: down\n[calculate] 6\n", out.String())
}

func TestRunner_Run_RenderedOutput(t *testing.T) {
	router, err := taskroute.New(testutils.NewScriptedGenerator(testutils.Text(`{"agent":"calculate","input":"3"}`)))
	require.NoError(t, err)

	var out bytes.Buffer
	r := &taskroute.Runner{
		Input:    strings.NewReader("calc\n3"),
		Output:   &out,
		Renderer: func(s string) (string, error) { return strings.ToUpper(s), nil },
	}
	require.NoError(t, r.Run(context.Background(), router))

	assert.Contains(t, out.String(), "task> input> ")
	assert.Contains(t, out.String(), "**RESULT:** 3")
}

func TestRunner_RequiresIO(t *testing.T) {
	router, err := taskroute.New(testutils.NewScriptedGenerator())
	require.NoError(t, err)

	assert.Error(t, (&taskroute.Runner{}).Run(context.Background(), router))
	assert.Error(t, (&taskroute.Runner{}).Batch(context.Background(), router, nil))
}
