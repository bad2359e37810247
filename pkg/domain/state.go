package domain

// RequestState is the request-scoped state advanced by the router.
// It is created fresh for every request and never shared.
//
// Agent is written once by the Manager node and Result once by a terminal
// handler; a second write fails with ErrStateAlreadySet.
type RequestState struct {
	// ID correlates logs and traces for a single request.
	ID string

	Task  string
	Input string

	agent  *Agent
	result *Result
}

// NewRequestState creates a clean state for one request.
func NewRequestState(id, task, input string) *RequestState {
	return &RequestState{
		ID:    id,
		Task:  task,
		Input: input,
	}
}

// SetAgent records the routing decision. It may only be called once.
func (s *RequestState) SetAgent(a Agent) error {
	if s.agent != nil {
		return ErrStateAlreadySet
	}
	s.agent = &a
	return nil
}

// Agent returns the routed agent, if the Manager has run.
func (s *RequestState) Agent() (Agent, bool) {
	if s.agent == nil {
		return "", false
	}
	return *s.agent, true
}

// SetResult records the terminal handler's output. It may only be called once.
func (s *RequestState) SetResult(r Result) error {
	if s.result != nil {
		return ErrStateAlreadySet
	}
	s.result = &r
	return nil
}

// Result returns the terminal result, if a handler has run.
func (s *RequestState) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Response builds the caller-facing payload.
// It fails with ErrIncompleteState unless both agent and result are set.
func (s *RequestState) Response() (*Response, error) {
	if s.agent == nil || s.result == nil {
		return nil, ErrIncompleteState
	}
	return &Response{
		Agent:  string(*s.agent),
		Input:  s.Input,
		Result: s.result.Result,
	}, nil
}
