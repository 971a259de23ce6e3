package lineproto

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/swamp/internal/core/domain"
)

// FormatRecord renders a record as <id> "<words>" #tag #tag.
func FormatRecord(r domain.Record) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(r.ID, 10))
	sb.WriteString(` "`)
	sb.WriteString(strings.Join(r.Words, " "))
	sb.WriteByte('"')
	for _, t := range r.Tags {
		sb.WriteString(" #")
		sb.WriteString(t)
	}
	return sb.String()
}

// FormatAdded renders the response to an add command.
func FormatAdded(r domain.Record) string {
	return strconv.FormatUint(r.ID, 10)
}

// FormatDone renders the response to a done command.
func FormatDone() string {
	return "done"
}

// FormatFound renders the response to a search command. Lines are joined
// with "\n" and there is no trailing newline.
func FormatFound(records []domain.Record) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strconv.Itoa(len(records))+" item(s) found")
	for _, r := range records {
		lines = append(lines, FormatRecord(r))
	}
	return strings.Join(lines, "\n")
}
