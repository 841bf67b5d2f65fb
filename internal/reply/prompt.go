package reply

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/supplysight/assistant-core/internal/assist/model"
)

//go:embed template/system_prompt.txt
var systemPromptTpl string

// renderSystemPrompt renders the assistant system prompt via the Eino prompt
// component so prompt callbacks fire like every other prompt in the service.
func renderSystemPrompt(ctx context.Context) (string, error) {
	labels := make([]string, 0, len(model.ActivityLabels))
	for _, l := range model.ActivityLabels {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(systemPromptTpl),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"Destinations": strings.Join(labels, ", "),
	})
	if err != nil {
		return "", fmt.Errorf("system prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("system prompt render: empty result")
	}
	return msgs[0].Content, nil
}
