package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamweld/streamweld/internal/media"
	"github.com/streamweld/streamweld/internal/probe"
	"github.com/streamweld/streamweld/internal/report"
)

func probed(path string, types ...string) *Input {
	res := &probe.Result{Path: path, Success: true}
	for i, typ := range types {
		res.Streams = append(res.Streams, &probe.Stream{Index: i, Type: typ})
	}
	return &Input{File: media.NewFile(path), Probe: res}
}

func TestBuildBlockOrdering(t *testing.T) {
	run := report.NewRun(report.NullSink{})
	video := media.NewFile("/in/A.mkv")
	inputs := []*Input{
		// Video file carries subtitle and audio ahead of a second video
		// stream to prove bucketing ignores source order.
		probed("/in/A.mkv", probe.TypeSubtitle, probe.TypeAudio, probe.TypeVideo, "Attachment"),
		probed("/in/A.flac", probe.TypeAudio),
	}

	m := Build(run, video, inputs)

	require.Len(t, m.Refs, 5)
	assert.Equal(t, 1, m.VideoCount)
	assert.Equal(t, 2, m.AudioCount)
	assert.Equal(t, 1, m.SubtitleCount)
	assert.Equal(t, 1, m.OtherCount)

	// Video block first, then audio in encounter order, subtitle, other.
	want := []StreamRef{
		{File: 0, Stream: 2},
		{File: 0, Stream: 1},
		{File: 1, Stream: 0},
		{File: 0, Stream: 0},
		{File: 0, Stream: 3},
	}
	assert.Equal(t, want, m.Refs)
}

func TestBuildAssignsContiguousOutputIndices(t *testing.T) {
	run := report.NewRun(report.NullSink{})
	video := media.NewFile("/in/A.mkv")
	inputs := []*Input{
		probed("/in/A.mkv", probe.TypeVideo, probe.TypeAudio),
		{File: media.NewFile("/in/A.eng.srt"), Diff: ".eng",
			Probe: &probe.Result{Streams: []*probe.Stream{{Index: 0, Type: probe.TypeSubtitle}}}},
	}

	m := Build(run, video, inputs)

	seen := make(map[int]bool)
	for _, in := range inputs {
		for _, s := range in.Probe.Streams {
			require.NotNil(t, s.OutputIndex)
			seen[*s.OutputIndex] = true
		}
	}
	for i := 0; i < len(m.Refs); i++ {
		assert.True(t, seen[i], "output index %d missing", i)
	}
}

func TestBuildSubtitleTitle(t *testing.T) {
	run := report.NewRun(report.NullSink{})
	video := media.NewFile("/in/A.mkv")
	inputs := []*Input{
		probed("/in/A.mkv", probe.TypeVideo),
		{File: media.NewFile("/in/A.eng.srt"), Diff: ".eng",
			Probe: &probe.Result{Streams: []*probe.Stream{{Index: 0, Type: probe.TypeSubtitle}}}},
	}

	m := Build(run, video, inputs)

	require.Len(t, m.Titles, 1)
	assert.Equal(t, "eng.srt", m.Titles[0].Text)
	assert.Equal(t, 1, m.Titles[0].OutputIndex)
}

func TestBuildSubtitleTitleFromVideoStreamGetsNone(t *testing.T) {
	run := report.NewRun(report.NullSink{})
	video := media.NewFile("/in/A.mkv")
	inputs := []*Input{
		probed("/in/A.mkv", probe.TypeVideo, probe.TypeSubtitle),
		probed("/in/A.flac", probe.TypeAudio),
	}

	m := Build(run, video, inputs)

	// Embedded subtitle streams keep whatever title the container has.
	assert.Empty(t, m.Titles)
}

func TestBuildWarnings(t *testing.T) {
	tests := []struct {
		name   string
		inputs func() []*Input
		want   string
	}{
		{
			name: "video stream in audio file",
			inputs: func() []*Input {
				return []*Input{
					probed("/in/A.mkv", probe.TypeVideo),
					probed("/in/A.flac", probe.TypeVideo),
				}
			},
			want: "Found unexpected video stream #0 in audio file: /in/A.flac",
		},
		{
			name: "audio stream in subtitle file",
			inputs: func() []*Input {
				return []*Input{
					probed("/in/A.mkv", probe.TypeVideo),
					probed("/in/A.eng.srt", probe.TypeAudio, probe.TypeSubtitle),
				}
			},
			want: "Found unexpected audio stream #0 in subtitle file: /in/A.eng.srt",
		},
		{
			name: "two subtitle streams in one subtitle file",
			inputs: func() []*Input {
				return []*Input{
					probed("/in/A.mkv", probe.TypeVideo),
					probed("/in/A.eng.ass", probe.TypeSubtitle, probe.TypeSubtitle),
				}
			},
			want: "Found 2 subtitle streams in subtitle file: /in/A.eng.ass",
		},
		{
			name: "no video stream",
			inputs: func() []*Input {
				return []*Input{
					probed("/in/A.mkv"),
					probed("/in/A.flac", probe.TypeAudio),
				}
			},
			want: "No video stream found in /in/A.mkv",
		},
		{
			name: "no matching companion",
			inputs: func() []*Input {
				return []*Input{probed("/in/A.mkv", probe.TypeVideo)}
			},
			want: "No matching file found for /in/A.mkv",
		},
		{
			name: "multiple video streams",
			inputs: func() []*Input {
				return []*Input{
					probed("/in/A.mkv", probe.TypeVideo),
					probed("/in/B.mkv", probe.TypeVideo),
				}
			},
			want: "Merge 2 video streams into one file.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := report.NewRun(report.NullSink{})
			Build(run, media.NewFile("/in/A.mkv"), tt.inputs())
			assert.Contains(t, run.Warnings, tt.want)
		})
	}
}

func TestBuildAudioStreamInAudioFileNoWarning(t *testing.T) {
	run := report.NewRun(report.NullSink{})
	inputs := []*Input{
		probed("/in/A.mkv", probe.TypeVideo),
		probed("/in/A.flac", probe.TypeAudio),
		{File: media.NewFile("/in/A.eng.srt"), Diff: ".eng",
			Probe: &probe.Result{Streams: []*probe.Stream{{Index: 0, Type: probe.TypeSubtitle}}}},
	}

	Build(run, media.NewFile("/in/A.mkv"), inputs)

	assert.Empty(t, run.Warnings)
}
