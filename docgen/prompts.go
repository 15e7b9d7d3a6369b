package docgen

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
	"github.com/v-bommidi/ai-doc-generator/types"
)

const documentationSystemTemplate = `You are an expert technical writer and software engineer.

Your task is to generate comprehensive documentation for code snippets.

Guidelines:
1. Write a clear 1-2 sentence summary
2. Explain what the code does and why
3. Document all parameters with types
4. Specify return values
5. List potential exceptions
6. Include usage examples when helpful
7. Mention complexity if it's an algorithm

Output valid JSON matching this structure:

{{.format_instructions}}`

const documentationHumanTemplate = `Generate documentation for this code:

Language: {{.language}}
Type: {{.code_type}}
File: {{.file_path}}
Lines: {{.line_start}}-{{.line_end}}

Code:
` + "```" + `{{.language}}
{{.code}}
` + "```" + `

{{.context}}`

const formatInstructions = `{
  "summary": "string, 10-500 characters",
  "detailed_description": "string, at least 20 characters",
  "parameters": [{"name": "string", "type": "string", "description": "string", "default": "string or omitted", "required": true}],
  "returns": "string or omitted",
  "raises": ["string"],
  "examples": ["string"],
  "complexity": "string or omitted",
  "notes": ["string"]
}
Respond with the JSON object only.`

const translationSystemTemplate = `You are a technical translator.
Translate to {{.target_language}}:

1. Keep code snippets unchanged
2. Keep technical terms in English
3. Maintain formatting
4. Be technically accurate`

const translationHumanTemplate = `Translate this documentation from {{.source_language}} to {{.target_language}}:

{{.documentation}}`

var (
	documentationSystemPrompt = prompts.NewPromptTemplate(documentationSystemTemplate,
		[]string{"format_instructions"})
	documentationHumanPrompt = prompts.NewPromptTemplate(documentationHumanTemplate,
		[]string{"language", "code_type", "file_path", "line_start", "line_end", "code", "context"})
	translationSystemPrompt = prompts.NewPromptTemplate(translationSystemTemplate,
		[]string{"target_language"})
	translationHumanPrompt = prompts.NewPromptTemplate(translationHumanTemplate,
		[]string{"source_language", "target_language", "documentation"})
)

// documentationMessages renders the system and human messages for el.
func documentationMessages(el types.Element, extra string) ([]llms.MessageContent, error) {
	system, err := documentationSystemPrompt.Format(map[string]any{
		"format_instructions": formatInstructions,
	})
	if err != nil {
		return nil, fmt.Errorf("render system prompt: %w", err)
	}

	human, err := documentationHumanPrompt.Format(map[string]any{
		"language":   cmp.Or(el.Language, "python"),
		"code_type":  string(el.Kind),
		"file_path":  cmp.Or(el.FilePath, "N/A"),
		"line_start": el.LineStart,
		"line_end":   el.LineEnd,
		"code":       el.Source,
		"context":    cmp.Or(extra, "No additional context."),
	})
	if err != nil {
		return nil, fmt.Errorf("render human prompt: %w", err)
	}

	return []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, human),
	}, nil
}

// translationMessages renders the messages translating text between languages.
func translationMessages(text string, from, to LanguageCode) ([]llms.MessageContent, error) {
	system, err := translationSystemPrompt.Format(map[string]any{
		"target_language": string(to),
	})
	if err != nil {
		return nil, fmt.Errorf("render system prompt: %w", err)
	}

	human, err := translationHumanPrompt.Format(map[string]any{
		"source_language": string(from),
		"target_language": string(to),
		"documentation":   text,
	})
	if err != nil {
		return nil, fmt.Errorf("render human prompt: %w", err)
	}

	return []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, human),
	}, nil
}

// messageText concatenates the text parts of messages.
func messageText(messages []llms.MessageContent) string {
	var b strings.Builder
	for _, m := range messages {
		for _, p := range m.Parts {
			if t, ok := p.(llms.TextContent); ok {
				b.WriteString(t.Text)
			}
		}
	}
	return b.String()
}
