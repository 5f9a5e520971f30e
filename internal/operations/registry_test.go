package operations

import (
	"errors"
	"reflect"
	"testing"

	"github.com/danmuck/transcodectl/internal/testutil/testlog"
)

func TestLookupIgnoresCaseAndSpace(t *testing.T) {
	testlog.Start(t)
	r := DefaultRegistry()
	inputs := []string{
		"trimming",
		" Trimming",
		"CHANGE ASPECT RATIO ",
		"\tChange Bitrate",
		" change frame rate",
		"Change Frame Size",
		"Mute Audio",
		"remove VIDEO",
		" Convert MP4 to HLS",
		"Reverse Video  ",
		"Get Details",
	}
	for _, in := range inputs {
		if _, ok := r.Lookup(in); !ok {
			t.Fatalf("expected %q to resolve", in)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	testlog.Start(t)
	r := DefaultRegistry()
	for _, in := range []string{"", "trim", "change  bitrate", "get-details", "reverse"} {
		if _, ok := r.Lookup(in); ok {
			t.Fatalf("expected %q to be unknown", in)
		}
	}
}

func TestDefaultRegistryOrder(t *testing.T) {
	testlog.Start(t)
	want := []string{
		"trimming",
		"change aspect ratio",
		"change bitrate",
		"change frame rate",
		"change frame size",
		"mute audio",
		"remove video",
		"convert mp4 to hls",
		"reverse video",
		"get details",
	}
	got := DefaultRegistry().Names()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected names: got=%v want=%v", got, want)
	}
	if len(DefaultRegistry().List()) != len(want) {
		t.Fatalf("list length mismatch")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	op := Catalog()[KindTrim]
	if err := r.Register(op); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(op); !errors.Is(err, ErrOperationExists) {
		t.Fatalf("expected ErrOperationExists, got %v", err)
	}
}

func TestRegisterInvalid(t *testing.T) {
	testlog.Start(t)
	cases := []Operation{
		{Name: "", Tool: ToolProber},
		{Name: "Trimming", Tool: ToolTranscoder, OutputFile: "x.mp4"},
		{Name: " trimming", Tool: ToolTranscoder, OutputFile: "x.mp4"},
		{Name: "trimming", Tool: "sox", OutputFile: "x.mp4"},
		{Name: "trimming", Tool: ToolTranscoder},
	}
	for _, op := range cases {
		if err := NewRegistry().Register(op); !errors.Is(err, ErrInvalidOperation) {
			t.Fatalf("expected ErrInvalidOperation for %+v, got %v", op, err)
		}
	}
}
