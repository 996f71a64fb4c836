// Package cut implements the field filter: split each input line on a
// delimiter and re-emit the selected fields, order preserved as requested.
// It is stateless per invocation and unrelated to the messaging core.
package cut

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseFields parses a 1-indexed comma list such as "3,1". Order is
// preserved as given and duplicates are allowed.
func ParseFields(list string) ([]int, error) {
	parts := strings.Split(list, ",")
	fields := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid field %q: fields are 1-indexed positive numbers", part)
		}
		fields = append(fields, n)
	}
	return fields, nil
}

// Line selects fields from a single line. Out-of-range fields are skipped;
// the delimiter is emitted before every selected field but the first
// requested one, so a skipped leading field can yield a leading delimiter.
func Line(line string, delimiter rune, fields []int) string {
	tokens := strings.Split(line, string(delimiter))
	var b strings.Builder
	for i, target := range fields {
		if target < 1 || target > len(tokens) {
			continue
		}
		if i > 0 {
			b.WriteRune(delimiter)
		}
		b.WriteString(tokens[target-1])
	}
	return b.String()
}

// Run filters r line by line onto w.
func Run(r io.Reader, w io.Writer, delimiter rune, fields []int) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(w, Line(scanner.Text(), delimiter, fields)); err != nil {
			return err
		}
	}
	return scanner.Err()
}
