/*
Package taskroute routes free-text tasks to a small set of handlers with the
help of a text-generation model.

A request carries a task description and an input payload. The Manager node
asks the model to classify the task as translate, summarize or calculate and
to echo the input back as JSON. If the reply cannot be parsed, a keyword
heuristic picks the agent instead, so routing never fails on bad model output.
Exactly one terminal handler then produces the result:

  - Translator asks the model for an English translation.
  - Summarizer asks the model for a one or two sentence summary.
  - Calculator evaluates the input with a closed arithmetic grammar and only
    asks the model when the input is not a well-formed expression.

The model is injected through ports.Generator, so the router can run against
Hugging Face, Anthropic, Gemini or a scripted fake in tests.

# Usage

	gen := ports.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return client.Complete(ctx, prompt)
	})

	router, err := taskroute.New(gen, taskroute.WithLogger(slog.Default()))
	if err != nil {
		log.Fatal(err)
	}

	resp, err := router.Route(ctx, "calculate", "2+3*4")
	if err != nil {
		log.Fatal(err) // only generator failures reach here
	}
	fmt.Println(resp.Result) // 14
*/
package taskroute
