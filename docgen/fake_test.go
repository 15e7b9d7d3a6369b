package docgen

import (
	"context"
	"errors"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// fakeModel replays scripted replies. Entries of errs take precedence over
// replies for the same call; the last reply repeats once exhausted.
type fakeModel struct {
	mu       sync.Mutex
	replies  []string
	errs     []error
	info     map[string]any
	calls    int
	messages [][]llms.MessageContent
}

var errProviderDown = errors.New("provider unavailable")

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.calls
	f.calls++
	f.messages = append(f.messages, messages)

	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if len(f.replies) == 0 {
		return &llms.ContentResponse{}, nil
	}
	reply := f.replies[min(i, len(f.replies)-1)]
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: reply, GenerationInfo: f.info}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func (f *fakeModel) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

const validReply = "```json\n" + `{
  "summary": "Adds two numbers together and returns the sum.",
  "detailed_description": "This function takes two numeric operands and returns their arithmetic sum.",
  "parameters": [{"name": "a", "type": "int", "description": "First operand", "required": true}],
  "returns": "int: the sum",
  "raises": [],
  "examples": ["add(1, 2)  # 3"],
  "complexity": "O(1)"
}` + "\n```"
