package runner

import (
	"fmt"
	"strings"

	"collectarr/internal/notifications"
	"collectarr/internal/reconcile"
)

const (
	messageTitle  = "Radarr Collections updated"
	messageHeader = "🎬 *Radarr Collections updated!*"
	bullet        = "• "

	// maxBodyLength is Telegram's sendMessage limit, counted in bytes so
	// multi-byte text stays under it as well as ntfy's message size.
	maxBodyLength = 4096
)

var markdownEscaper = strings.NewReplacer(
	`_`, `\_`,
	`*`, `\*`,
	"`", "\\`",
	`[`, `\[`,
)

// FormatMessage renders the run report. Collection blocks keep the order in
// which collections were processed. Blocks that would push the body past
// maxBodyLength are replaced by a single overflow line.
func FormatMessage(summary reconcile.Summary) notifications.Message {
	var b strings.Builder
	b.WriteString(messageHeader)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%d existing movies set as monitored.\n", summary.Monitored)
	fmt.Fprintf(&b, "%d movies added and monitored.\n", summary.Added)
	b.WriteString("\nPer collection overview:\n")

	reserve := len(overflowLine(len(summary.Collections)))
	for i, report := range summary.Collections {
		block := collectionBlock(report)
		last := i == len(summary.Collections)-1
		if b.Len()+len(block) > maxBodyLength-reserve && (!last || b.Len()+len(block) > maxBodyLength) {
			b.WriteString(overflowLine(len(summary.Collections) - i))
			break
		}
		b.WriteString(block)
	}

	return notifications.Message{
		Title: messageTitle,
		Body:  strings.TrimRight(b.String(), "\n"),
		Tags:  []string{"movie_camera", "collectarr"},
	}
}

func collectionBlock(report reconcile.CollectionReport) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(collectionHeading(report.Name))
	b.WriteString("\n")
	for _, line := range report.Lines {
		b.WriteString(bullet)
		b.WriteString(escapeMarkdown(line))
		b.WriteString("\n")
	}
	return b.String()
}

// collectionHeading bolds the name. Telegram ignores escapes inside an
// entity, so the name goes in raw, and names containing the bold marker
// itself are left unbolded and escaped instead.
func collectionHeading(name string) string {
	if strings.Contains(name, "*") {
		return escapeMarkdown(name)
	}
	return "*" + name + "*"
}

func overflowLine(remaining int) string {
	return fmt.Sprintf("\n… and %d more collections\n", remaining)
}

// escapeMarkdown neutralizes the characters Telegram's legacy Markdown treats
// as entity delimiters.
func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}
