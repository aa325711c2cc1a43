package receipt

import "strings"

// Text renders the layout as plain fixed-width text for share sheets and the
// clipboard. Trailing spaces are trimmed.
func Text(l *Layout) string {
	var sb strings.Builder
	for _, row := range l.Rows() {
		sb.WriteString(strings.TrimRight(row.Text, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
