package llm

import "context"

// MockProvider is a Provider for tests. It records the last request and
// returns a canned response.
type MockProvider struct {
	Response    string
	Err         error
	LastRequest *CompletionRequest
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.LastRequest = &req
	if m.Err != nil {
		return nil, m.Err
	}
	return &CompletionResponse{Content: m.Response, Model: "mock"}, nil
}
