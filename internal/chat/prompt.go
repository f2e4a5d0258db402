package chat

import (
	"fmt"
	"strings"

	"github.com/muhandis-app/assistant-api/internal/domain"
)

// HistoryWindow is the number of prior messages included with a request.
const HistoryWindow = 10

// BuildSystemPrompt combines the mode's system prompt with per-request
// context the providers share: the caller's platform role and the reply
// language.
func BuildSystemPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(req.SystemPrompt)

	if req.Role != "" {
		fmt.Fprintf(&b, "\n\nThe user is a %s on the platform.", req.Role)
	}
	if req.Language != "" {
		fmt.Fprintf(&b, "\nReply in language: %s.", req.Language)
	}
	if len(req.Attachments) > 0 {
		b.WriteString("\nThe user attached the following files:")
		for _, a := range req.Attachments {
			fmt.Fprintf(&b, "\n- %s (%s)", a.Name, a.Mime)
		}
	}

	return b.String()
}

// BuildTurns flattens the request into an ordered message list: the bounded
// history window followed by the new user message.
func BuildTurns(req Request) []Turn {
	history := req.History
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}

	turns := make([]Turn, 0, len(history)+1)
	turns = append(turns, history...)
	turns = append(turns, Turn{Role: domain.RoleUser, Content: req.Message})
	return turns
}
