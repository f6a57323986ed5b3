package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rroopesh55/ResuForge/internal/domain"
)

var stylePrompts = map[domain.Style]string{
	domain.StyleBold:     "Use strong action verbs.",
	domain.StyleCreative: "Use engaging language.",
	domain.StyleSafe:     "Keep it professional.",
}

// RewriteBullet asks the backend for one constrained rewrite. The max-chars
// instruction is a best-effort contract; the caller validates the result
// locally and falls back on its own. Output is fence-stripped and
// whitespace-normalized, never truncated here.
func (c *Client) RewriteBullet(ctx context.Context, bullet string, keywords []string, style domain.Style, maxChars int) (string, error) {
	stylePrompt, ok := stylePrompts[style]
	if !ok {
		stylePrompt = stylePrompts[domain.StyleSafe]
	}

	prompt := fmt.Sprintf(`Rewrite this resume bullet to include: %s.

Constraints:
1. MUST be under %d chars
2. Do NOT make up facts
3. %s
4. Return ONLY the rewritten bullet

Original: %q
`, strings.Join(keywords, ", "), maxChars, stylePrompt, bullet)

	out, err := c.chat(ctx, prompt)
	if err != nil {
		return "", err
	}

	out = stripFences(out)
	out = strings.Trim(strings.TrimSpace(out), `"`)
	out = strings.Join(strings.Fields(out), " ")
	return out, nil
}
