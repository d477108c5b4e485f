package util

import "strings"

// JoinArgs renders an argument list as a single shell-like string for log
// output. Arguments containing spaces are wrapped in double quotes unless
// they already carry quoting of their own or look like a flag; the result
// is for display only and is never handed back to a shell.
func JoinArgs(args []string) string {
	if len(args) == 0 {
		return ""
	}

	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		if strings.Contains(arg, " ") &&
			!strings.ContainsAny(arg, `"'`) &&
			!strings.HasPrefix(arg, "-") {
			b.WriteByte('"')
			b.WriteString(arg)
			b.WriteByte('"')
			continue
		}
		b.WriteString(arg)
	}
	return b.String()
}
