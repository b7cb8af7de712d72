package analysis

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are an expert SEO and keyword research strategist. " +
	"Respond with ONLY valid JSON. No markdown, no code fences, no prose before or after the JSON object."

func analysisPrompt(keyword string) string {
	return fmt.Sprintf(`Analyze the keyword %q for a content strategist.

Return a JSON object with exactly these fields:
{
  "searchIntent": "one or two sentences describing what searchers want",
  "targetAudience": "who is searching for this",
  "contentIdeas": [{"title": "...", "type": "..."}],
  "secondaryKeywords": ["..."],
  "difficultyAnalysis": "how hard it is to rank and why",
  "monetizationIdeas": ["..."]
}

Suggest exactly 3 contentIdeas. Use content types like "Blog Post", "Video",
"Comparison Page" or "Product Page".`, keyword)
}

func ideasPrompt(keyword string, existing []string, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Suggest exactly %d new content ideas for the keyword %q.\n\n", count, keyword)

	if len(existing) > 0 {
		sb.WriteString("Do NOT duplicate any of these existing ideas:\n")
		for _, title := range existing {
			fmt.Fprintf(&sb, "- %s\n", title)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(`Return a JSON object with exactly this shape:
{
  "contentIdeas": [{"title": "...", "type": "..."}]
}`)
	return sb.String()
}
