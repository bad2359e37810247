package taskroute_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/taskroute"
	"github.com/aretw0/taskroute/pkg/ports"
)

// ExampleRouter_Route shows a calculation answered without a second model call.
// The generator here stands in for a real model client.
func ExampleRouter_Route() {
	gen := ports.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return `{"agent": "calculate", "input": "2+3*4"}`, nil
	})

	router, err := taskroute.New(gen)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := router.Route(context.Background(), "What is 2+3*4?", "2+3*4")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(resp.Agent, resp.Result)
	// Output: calculate 14
}

// ExampleRouter_Inspect lists the routing graph.
func ExampleRouter_Inspect() {
	router, err := taskroute.New(ports.GeneratorFunc(func(context.Context, string) (string, error) { return "", nil }))
	if err != nil {
		log.Fatal(err)
	}

	for _, n := range router.Inspect() {
		fmt.Println(n.ID, n.Kind, len(n.Transitions))
	}
	// Output:
	// Manager start 4
	// Translator terminal 0
	// Summarizer terminal 0
	// Calculator terminal 0
	// Default terminal 0
}
