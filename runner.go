package taskroute

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/taskroute/pkg/domain"
)

// Request is one task/input pair for a Runner.
type Request struct {
	Task  string `json:"task"`
	Input string `json:"input"`
}

// DemoRequests are the sample requests shipped with the CLI demo.
var DemoRequests = []Request{
	{Task: "Can you translate this?", Input: "Bonjour le monde"},
	{Task: "Please Summarize the following", Input: "Langgraph helps you build flexible multi-agent workflows in python..."},
	{Task: "What is 12 * 8 - 6?", Input: "12 * 8 - 6"},
}

// Runner drives a Router from line-oriented IO.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Batch routes every request in order and prints each response.
// It stops at the first generator failure.
func (r *Runner) Batch(ctx context.Context, router *Router, reqs []Request) error {
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	for _, req := range reqs {
		resp, err := router.Route(ctx, req.Task, req.Input)
		if err != nil {
			return fmt.Errorf("route %q: %w", req.Task, err)
		}
		r.print(req, resp)
	}
	return nil
}

// Run reads a task and an input per round until EOF, "exit" or "quit".
// Generator failures are reported and the loop continues.
func (r *Runner) Run(ctx context.Context, router *Router) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)

	if !r.Headless {
		fmt.Fprintln(r.Output, "--- taskroute (type 'exit' to quit) ---")
	}

	for {
		task, ok, err := r.prompt(lineReader, "task> ")
		if err != nil || !ok {
			return err
		}
		input, ok, err := r.prompt(lineReader, "input> ")
		if err != nil || !ok {
			return err
		}

		resp, err := router.Route(ctx, task, input)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintf(r.Output, "error: %v\n", err)
			continue
		}
		r.print(Request{Task: task, Input: input}, resp)
	}
}

// prompt returns false when the user asked to leave or input ended.
func (r *Runner) prompt(lineReader *bufio.Reader, label string) (string, bool, error) {
	if !r.Headless {
		fmt.Fprint(r.Output, label)
	}
	text, err := lineReader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && text != "") {
		if errors.Is(err, io.EOF) {
			// Graceful exit on EOF
			return "", false, nil
		}
		return "", false, fmt.Errorf("input error: %w", err)
	}
	line := strings.TrimSpace(text)
	if line == "exit" || line == "quit" {
		if !r.Headless {
			fmt.Fprintln(r.Output, "Bye!")
		}
		return "", false, nil
	}
	return line, true, nil
}

func (r *Runner) print(req Request, resp *domain.Response) {
	if r.Headless || r.Renderer == nil {
		fmt.Fprintf(r.Output, "[%s] %s\n", resp.Agent, resp.Result)
		return
	}

	md := fmt.Sprintf("### %s\n\n*Task:* %s\n\n*Input:* %s\n\n**Result:** %s\n", resp.Agent, req.Task, resp.Input, resp.Result)
	output := md
	if rendered, err := r.Renderer(md); err == nil {
		output = rendered
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(output))
}
