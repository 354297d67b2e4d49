package prompts

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// embeds all .yaml files in the templates folder at compile time
//
//go:embed templates/*.yaml
var templateFS embed.FS

// PromptProvider is what the services depend on; PromptManager implements it.
type PromptProvider interface {
	BuildPrompt(mode, variant string, data map[string]string) (string, error)
	Modes() []string
}

// PromptManager renders instruction prompts from embedded YAML templates.
// Placeholder substitution is plain string replacement, so code content is
// embedded verbatim: no truncation, no sanitization, no template escaping.
type PromptManager struct {
	prompts map[string]map[string]string // mode -> variant -> template text
}

// on-disk template shape
type promptTemplate struct {
	BasePrompt string            `yaml:"base_prompt"`
	Variants   map[string]string `yaml:"variants"`
}

// NewPromptManager loads every embedded template.
func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{
		prompts: make(map[string]map[string]string),
	}

	if err := pm.loadPrompts(); err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	return pm, nil
}

// BuildPrompt renders the template for the given mode and variant,
// substituting each {{.Key}} placeholder with data["Key"].
func (pm *PromptManager) BuildPrompt(mode, variant string, data map[string]string) (string, error) {
	modePrompts, exists := pm.prompts[mode]
	if !exists {
		return "", fmt.Errorf("template not found for mode: %s", mode)
	}

	template, exists := modePrompts[variant]
	if !exists {
		return "", fmt.Errorf("variant '%s' not found for mode '%s'", variant, mode)
	}

	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}

	return result, nil
}

// Modes lists the loaded template modes.
func (pm *PromptManager) Modes() []string {
	modes := make([]string, 0, len(pm.prompts))
	for mode := range pm.prompts {
		modes = append(modes, mode)
	}
	return modes
}

// loadPrompts loads all YAML prompt files from the embedded filesystem.
func (pm *PromptManager) loadPrompts() error {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}

		var template promptTemplate
		if err := yaml.Unmarshal(data, &template); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}

		name := strings.TrimSuffix(entry.Name(), ".yaml")
		pm.prompts[name] = make(map[string]string)

		for variant, variantPrompt := range template.Variants {
			var fullPrompt strings.Builder
			if template.BasePrompt != "" {
				fullPrompt.WriteString(template.BasePrompt)
				fullPrompt.WriteString("\n\n")
			}
			fullPrompt.WriteString(variantPrompt)

			pm.prompts[name][variant] = fullPrompt.String()
		}
	}

	return nil
}
