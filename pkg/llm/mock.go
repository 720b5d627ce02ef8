package llm

import "context"

// MockGenerator is a test double for Generator.
type MockGenerator struct {
	GenerateFunc func(ctx context.Context, req Request) (string, error)
	Calls        []Request
}

func (m *MockGenerator) Generate(ctx context.Context, req Request) (string, error) {
	m.Calls = append(m.Calls, req)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return "", nil
}

var _ Generator = (*MockGenerator)(nil)
