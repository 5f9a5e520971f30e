package dispatch

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestReadRequest(t *testing.T) {
	var prompt bytes.Buffer
	line, err := ReadRequest(strings.NewReader("Trimming, Get Details\r\nignored\n"), &prompt, Prompt)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if line != "Trimming, Get Details" {
		t.Fatalf("unexpected line: %q", line)
	}
	if prompt.String() != Prompt {
		t.Fatalf("unexpected prompt: %q", prompt.String())
	}
}

func TestReadRequestWithoutTrailingNewline(t *testing.T) {
	line, err := ReadRequest(strings.NewReader("mute audio"), &bytes.Buffer{}, "")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if line != "mute audio" {
		t.Fatalf("unexpected line: %q", line)
	}
}

func TestReadRequestEmptyLine(t *testing.T) {
	for _, in := range []string{"\n", ""} {
		line, err := ReadRequest(strings.NewReader(in), &bytes.Buffer{}, "")
		if err != nil {
			t.Fatalf("read %q: %v", in, err)
		}
		if line != "" {
			t.Fatalf("read %q: unexpected line %q", in, line)
		}
	}
}

func TestSplitOperationsKeepsRawTokens(t *testing.T) {
	got := SplitOperations("Trimming, Mute Audio ,x")
	want := []string{"Trimming", " Mute Audio ", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: got=%q want=%q", got, want)
	}
}

func TestJoinArgs(t *testing.T) {
	if got := JoinArgs([]string{"trimming", "get details"}); got != "trimming,get details" {
		t.Fatalf("unexpected joined line: %q", got)
	}
}
