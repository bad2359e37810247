// Package prompts holds the text templates sent to the text-generation
// collaborator. Defaults reproduce the router's original wording; a YAML file
// may override any of them.
package prompts

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Kind identifies one of the prompt templates.
type Kind string

const (
	KindManager    Kind = "manager"
	KindTranslator Kind = "translator"
	KindSummarizer Kind = "summarizer"
	KindCalculator Kind = "calculator"
)

const (
	defaultManager = "You are a task router. Return ONLY a JSON object with keys 'agent' and 'input'.\n" +
		"- agent must be one of: translate, summarize, calculate.\n" +
		"- input must echo the provided input.\n\n" +
		"Task: {{.Task}}\nInput: {{.Input}}\n\n" +
		"Respond like: {\"agent\": \"summarize\", \"input\": \"...\"}"
	defaultTranslator = "Translate this to English. Respond with ONLY the translation text, no notes.\n\n{{.Input}}"
	defaultSummarizer = "Summarize the following in 1-2 concise sentences.\nRespond with ONLY the summary text.\n\n{{.Input}}"
	defaultCalculator = "Calculate the result of the arithmetic expression below. Respond with ONLY the final number.\n{{.Input}}"
)

// Data is the value templates are executed against.
type Data struct {
	Task  string
	Input string
}

// Source is the YAML shape of a prompts file. Empty fields keep the default.
type Source struct {
	Manager    string `yaml:"manager"`
	Translator string `yaml:"translator"`
	Summarizer string `yaml:"summarizer"`
	Calculator string `yaml:"calculator"`
}

// Templates is an immutable set of compiled prompts.
type Templates struct {
	byKind map[Kind]*template.Template
}

// Default returns the built-in templates.
func Default() *Templates {
	t, err := Compile(Source{})
	if err != nil {
		panic(fmt.Sprintf("prompts: default templates do not compile: %v", err))
	}
	return t
}

// Compile builds templates from src, falling back to defaults for empty fields.
func Compile(src Source) (*Templates, error) {
	texts := map[Kind]string{
		KindManager:    or(src.Manager, defaultManager),
		KindTranslator: or(src.Translator, defaultTranslator),
		KindSummarizer: or(src.Summarizer, defaultSummarizer),
		KindCalculator: or(src.Calculator, defaultCalculator),
	}

	t := &Templates{byKind: make(map[Kind]*template.Template, len(texts))}
	for kind, text := range texts {
		tmpl, err := template.New(string(kind)).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("prompt %q: %w", kind, err)
		}
		t.byKind[kind] = tmpl
	}
	return t, nil
}

// Load reads a YAML prompts file.
func Load(path string) (*Templates, error) {
	// #nosec G304 -- path comes from configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var src Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}
	return Compile(src)
}

// Render executes the template for kind.
func (t *Templates) Render(kind Kind, data Data) (string, error) {
	tmpl, ok := t.byKind[kind]
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", kind)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", kind, err)
	}
	return buf.String(), nil
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
