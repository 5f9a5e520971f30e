package operations

import (
	"fmt"
	"path/filepath"
)

// Kind enumerates every supported operation.
type Kind uint8

const (
	KindTrim Kind = iota + 1
	KindAspectRatio
	KindBitrate
	KindFrameRate
	KindFrameSize
	KindMuteAudio
	KindRemoveVideo
	KindHLS
	KindReverse
	KindDetails
)

// Kinds lists every Kind in catalog order.
func Kinds() []Kind {
	return []Kind{
		KindTrim,
		KindAspectRatio,
		KindBitrate,
		KindFrameRate,
		KindFrameSize,
		KindMuteAudio,
		KindRemoveVideo,
		KindHLS,
		KindReverse,
		KindDetails,
	}
}

// Tool selects which external program an operation drives.
type Tool string

const (
	ToolTranscoder Tool = "ffmpeg"
	ToolProber     Tool = "ffprobe"
)

// Operation is one pre-parameterized invocation of an external tool.
type Operation struct {
	Kind        Kind
	Name        string
	Tool        Tool
	OutputFile  string
	Success     string
	Description string
}

// WritesOutput reports whether the operation produces a file.
func (o Operation) WritesOutput() bool {
	return o.OutputFile != ""
}

// OutputPath is where the operation writes its result, or "" for none.
func (o Operation) OutputPath(outputDir string) string {
	if !o.WritesOutput() {
		return ""
	}
	return filepath.Join(outputDir, o.OutputFile)
}

// Args builds the full tool argument list for input, writing into outputDir.
func (o Operation) Args(input, outputDir string) []string {
	if o.Tool == ToolProber {
		return []string{"-i", input}
	}
	args := []string{"-y", "-i", input}
	args = append(args, o.Kind.flags()...)
	return append(args, o.OutputPath(outputDir))
}

// flags returns the per-kind transcoder flags placed between input and output.
func (k Kind) flags() []string {
	switch k {
	case KindTrim:
		return []string{"-ss", "00:00:30", "-t", "00:01:00", "-c:v", "copy", "-c:a", "copy"}
	case KindAspectRatio:
		return []string{"-aspect", "1:1"}
	case KindBitrate:
		return []string{"-b:v", "118K", "-b:a", "250K"}
	case KindFrameRate:
		return []string{"-r", "13"}
	case KindFrameSize:
		return []string{"-vf", "scale=180:120"}
	case KindMuteAudio:
		return []string{"-filter:a", "volume=0"}
	case KindRemoveVideo:
		return []string{"-vn"}
	case KindHLS:
		return []string{"-codec", "copy", "-start_number", "0", "-hls_time", "25", "-hls_list_size", "0", "-f", "hls"}
	case KindReverse:
		return []string{"-vf", "reverse", "-af", "areverse"}
	case KindDetails:
		return nil
	default:
		panic(fmt.Sprintf("operations: unhandled kind %d", k))
	}
}

func (k Kind) String() string {
	if op, ok := Catalog()[k]; ok {
		return op.Name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Catalog returns the definition of every operation keyed by kind.
func Catalog() map[Kind]Operation {
	return map[Kind]Operation{
		KindTrim: {
			Kind:        KindTrim,
			Name:        "trimming",
			Tool:        ToolTranscoder,
			OutputFile:  "trimmed_video.mp4",
			Success:     "Video trimmed successfully!",
			Description: "one minute stream-copied excerpt starting at 00:00:30",
		},
		KindAspectRatio: {
			Kind:        KindAspectRatio,
			Name:        "change aspect ratio",
			Tool:        ToolTranscoder,
			OutputFile:  "changed_aspect_ratio_video.mp4",
			Success:     "Aspect ratio changed successfully!",
			Description: "force a 1:1 display aspect ratio",
		},
		KindBitrate: {
			Kind:        KindBitrate,
			Name:        "change bitrate",
			Tool:        ToolTranscoder,
			OutputFile:  "changed_bitrate_video.mp4",
			Success:     "Bitrate changed successfully!",
			Description: "video 118K, audio 250K average bitrate",
		},
		KindFrameRate: {
			Kind:        KindFrameRate,
			Name:        "change frame rate",
			Tool:        ToolTranscoder,
			OutputFile:  "changed_frame_rate_video.mp4",
			Success:     "Frame rate changed successfully!",
			Description: "re-time the video to 13 fps",
		},
		KindFrameSize: {
			Kind:        KindFrameSize,
			Name:        "change frame size",
			Tool:        ToolTranscoder,
			OutputFile:  "changed_frame_size_video.mp4",
			Success:     "Frame size changed successfully!",
			Description: "scale frames to 180x120",
		},
		KindMuteAudio: {
			Kind:        KindMuteAudio,
			Name:        "mute audio",
			Tool:        ToolTranscoder,
			OutputFile:  "muted_video.mp4",
			Success:     "The video is muted successfully!",
			Description: "keep the audio track at zero volume",
		},
		KindRemoveVideo: {
			Kind:        KindRemoveVideo,
			Name:        "remove video",
			Tool:        ToolTranscoder,
			OutputFile:  "removed_video.mp4",
			Success:     "Video Removed successfully!",
			Description: "drop the video stream, audio only",
		},
		KindHLS: {
			Kind:        KindHLS,
			Name:        "convert mp4 to hls",
			Tool:        ToolTranscoder,
			OutputFile:  "http_live_stream.m3u8",
			Success:     "Converted to HLS successfully!",
			Description: "HLS playlist plus segments of at most 25s",
		},
		KindReverse: {
			Kind:        KindReverse,
			Name:        "reverse video",
			Tool:        ToolTranscoder,
			OutputFile:  "reversed_video.mp4",
			Success:     "The video is reversed successfully!",
			Description: "reverse both video and audio",
		},
		KindDetails: {
			Kind:        KindDetails,
			Name:        "get details",
			Tool:        ToolProber,
			Description: "print container and stream metadata",
		},
	}
}
