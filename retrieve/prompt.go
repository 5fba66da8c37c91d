package retrieve

import (
	"fmt"
	"strings"

	"github.com/mwestrik/siteqa"
)

// BuildPrompt builds the user prompt containing the retrieved chunks and
// the question. Chunks are wrapped in XML-ish tags with their source URL
// so the model can attribute its answer.
func BuildPrompt(results []siteqa.RetrievedResult, question string) string {
	var sb strings.Builder
	sb.WriteString("<context>\n")
	for i, res := range results {
		title := res.Title
		if title == "" {
			title = res.SourceURL
		}
		sb.WriteString("<chunk>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<title>%s</title>\n", title)
		fmt.Fprintf(&sb, "<source>%s</source>\n", res.SourceURL)
		fmt.Fprintf(&sb, "<content>%s</content>\n", res.Text)
		sb.WriteString("</chunk>\n")
	}
	sb.WriteString("</context>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
