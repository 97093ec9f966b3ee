package chat

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/gemma3n-site/backend/internal/metrics"
)

// Simulator is the offline generation backend for the chat demo. Responses
// are canned but shaped by the prompt kind, with token accounting done on
// the real text.
type Simulator struct{}

func NewSimulator() *Simulator {
	return &Simulator{}
}

var nonLatinPattern = regexp.MustCompile(`[\x{0430}-\x{044f}\x{0451}]|[\x{4e00}-\x{9faf}]|[\x{ac00}-\x{d7a3}]`)

type promptKind int

const (
	kindChat promptKind = iota
	kindCode
	kindTranslation
)

func classifyPrompt(prompt string) promptKind {
	lower := strings.ToLower(prompt)
	if strings.Contains(lower, "code") || strings.Contains(prompt, "function") || strings.Contains(prompt, "const") {
		return kindCode
	}
	if strings.Contains(lower, "translate") || nonLatinPattern.MatchString(prompt) {
		return kindTranslation
	}
	return kindChat
}

var codeResponses = []string{
	"// %s\nfunction example() {\n  const result = \"Hello World\";\n  return result;\n}",
	"// %s\nconst processData = (data) => {\n  return data.map(item => ({\n    ...item,\n    processed: true\n  }));\n};",
	"// %s\nclass Example {\n  constructor() {\n    this.value = 0;\n  }\n\n  increment() {\n    this.value++;\n    return this.value;\n  }\n}",
}

var translationResponses = []string{
	"This is a simulated translation response.",
	"Here is the translated content based on your input.",
	"Translation completed successfully.",
}

var chatResponses = []string{
	"I understand you're asking about %q. Here's what I can tell you based on my knowledge...",
	"That's an interesting question about %q. Let me provide you with some insights...",
	"Regarding %q, I can help you with that. Here's my response...",
}

func (s *Simulator) Generate(ctx context.Context, params Params) (*Result, error) {
	var content string

	switch classifyPrompt(params.Prompt) {
	case kindCode:
		content = fmt.Sprintf(codeResponses[rand.Intn(len(codeResponses))], params.Prompt)
	case kindTranslation:
		content = translationResponses[rand.Intn(len(translationResponses))]
	default:
		content = fmt.Sprintf(chatResponses[rand.Intn(len(chatResponses))], params.Prompt)
	}

	usage := Usage{
		PromptTokens:     countTokens(params.Prompt),
		CompletionTokens: countTokens(content),
	}
	usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens

	metrics.ChatRequests.WithLabelValues("simulated").Inc()
	metrics.ChatTokens.WithLabelValues("prompt").Add(float64(usage.PromptTokens))
	metrics.ChatTokens.WithLabelValues("completion").Add(float64(usage.CompletionTokens))

	return &Result{
		Content:      content,
		Usage:        usage,
		FinishReason: "stop",
	}, nil
}

func countTokens(text string) int {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false), prose.WithTagging(false))
	if err != nil {
		return len(strings.Fields(text))
	}
	return len(doc.Tokens())
}
