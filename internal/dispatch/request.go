package dispatch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const Prompt = "Please enter comma separated operations: "

// ReadRequest writes prompt to w and reads a single line from r. An empty
// line is returned as is; it dispatches as one unknown token.
func ReadRequest(r io.Reader, w io.Writer, prompt string) (string, error) {
	if prompt != "" {
		if _, err := fmt.Fprint(w, prompt); err != nil {
			return "", err
		}
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read request: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// SplitOperations splits line on commas, keeping each token as typed.
func SplitOperations(line string) []string {
	return strings.Split(line, ",")
}

// JoinArgs rebuilds a request line from command-line arguments.
func JoinArgs(args []string) string {
	return strings.Join(args, ",")
}
