// Package mapping computes the deterministic stream-to-output-track
// assignment for one video and its matched companion files.
package mapping

import (
	"github.com/streamweld/streamweld/internal/media"
	"github.com/streamweld/streamweld/internal/probe"
	"github.com/streamweld/streamweld/internal/report"
)

// Input is one probed input of a task: the triggering video first, then
// matched companions in encounter order.
type Input struct {
	File media.File
	// Diff is the companion-match differential against the video's stem;
	// empty for the video itself.
	Diff  string
	Probe *probe.Result
}

// StreamRef addresses one stream by input-file index and stream index.
type StreamRef struct {
	File   int
	Stream int
}

// Title is a display title for a mapped subtitle stream sourced from a
// standalone subtitle file. An empty title is legal and passed through.
type Title struct {
	OutputIndex int
	Text        string
}

// Mapping is the computed assignment for one task.
type Mapping struct {
	InputPaths []string
	// Refs lists every mapped stream in output-index order: the video
	// block, then audio, subtitle, and other blocks, each internally in
	// input-encounter order.
	Refs   []StreamRef
	Titles []Title

	VideoCount    int
	AudioCount    int
	SubtitleCount int
	OtherCount    int
}

// Build walks all inputs of one video, buckets every stream by kind,
// assigns contiguous output indices across the four blocks, and writes
// each index back into its source stream record. Output indices are
// assigned exactly once; records never change after that.
func Build(run *report.Run, video media.File, inputs []*Input) *Mapping {
	m := &Mapping{}

	var videoRefs, audioRefs, subtitleRefs, otherRefs []StreamRef

	for fileIdx, in := range inputs {
		m.InputPaths = append(m.InputPaths, in.File.Path)
		subtitleStreams := 0

		for _, s := range in.Probe.Streams {
			ref := StreamRef{File: fileIdx, Stream: s.Index}
			switch s.Type {
			case probe.TypeVideo:
				videoRefs = append(videoRefs, ref)
				switch in.File.Kind {
				case media.KindAudio:
					run.Warnf("Found unexpected video stream #%d in audio file: %s", s.Index, in.File.Path)
				case media.KindSubtitle:
					run.Warnf("Found unexpected video stream #%d in subtitle file: %s", s.Index, in.File.Path)
				}
			case probe.TypeAudio:
				audioRefs = append(audioRefs, ref)
				if in.File.Kind == media.KindSubtitle {
					run.Warnf("Found unexpected audio stream #%d in subtitle file: %s", s.Index, in.File.Path)
				}
			case probe.TypeSubtitle:
				subtitleRefs = append(subtitleRefs, ref)
				subtitleStreams++
			default:
				otherRefs = append(otherRefs, ref)
				switch in.File.Kind {
				case media.KindAudio:
					run.Warnf("Found unexpected stream #%d in audio file: %s", s.Index, in.File.Path)
				case media.KindSubtitle:
					run.Warnf("Found unexpected stream #%d in subtitle file: %s", s.Index, in.File.Path)
				}
			}
		}

		if in.File.Kind == media.KindSubtitle && subtitleStreams > 1 {
			run.Warnf("Found %d subtitle streams in subtitle file: %s", subtitleStreams, in.File.Path)
		}
	}

	m.VideoCount = len(videoRefs)
	m.AudioCount = len(audioRefs)
	m.SubtitleCount = len(subtitleRefs)
	m.OtherCount = len(otherRefs)

	if m.VideoCount > 1 {
		run.Warnf("Merge %d video streams into one file.", m.VideoCount)
	}
	if m.VideoCount == 0 {
		run.Warnf("No video stream found in %s", video.Path)
	}
	if len(inputs) <= 1 {
		run.Warnf("No matching file found for %s", video.Path)
	}

	out := 0
	for i, ref := range videoRefs {
		assign(inputs[ref.File].Probe, ref.Stream, out)
		run.Infof("Stream #%d:%d -> Stream #%d [Video #%d] (from %s)",
			ref.File, ref.Stream, out, i, inputs[ref.File].File.Path)
		m.Refs = append(m.Refs, ref)
		out++
	}
	for i, ref := range audioRefs {
		assign(inputs[ref.File].Probe, ref.Stream, out)
		run.Infof("Stream #%d:%d -> Stream #%d [Audio #%d] (from %s)",
			ref.File, ref.Stream, out, i, inputs[ref.File].File.Path)
		m.Refs = append(m.Refs, ref)
		out++
	}
	for i, ref := range subtitleRefs {
		assign(inputs[ref.File].Probe, ref.Stream, out)
		in := inputs[ref.File]
		if in.File.Kind == media.KindSubtitle {
			// Standalone subtitle files get a display title derived from
			// the part of their name that extends past the video's, with
			// the original extension kept so multiple editions of the
			// same language stay distinguishable.
			title := subtitleTitle(in)
			if title == "" || title == "." {
				run.Warnf("Subtitle file %s has no valid title", in.File.Path)
			}
			m.Titles = append(m.Titles, Title{OutputIndex: out, Text: title})
			run.Infof("Stream #%d:%d -> Stream #%d [Subtitle #%d: %s] (from %s)",
				ref.File, ref.Stream, out, i, title, in.File.Path)
		} else {
			run.Infof("Stream #%d:%d -> Stream #%d [Subtitle #%d] (from %s)",
				ref.File, ref.Stream, out, i, in.File.Path)
		}
		m.Refs = append(m.Refs, ref)
		out++
	}
	for _, ref := range otherRefs {
		assign(inputs[ref.File].Probe, ref.Stream, out)
		run.Infof("Stream #%d:%d -> Stream #%d (from %s)",
			ref.File, ref.Stream, out, inputs[ref.File].File.Path)
		m.Refs = append(m.Refs, ref)
		out++
	}

	return m
}

// assign writes the output index into the stream record with the given
// stream index.
func assign(res *probe.Result, streamIdx, outputIdx int) {
	for _, s := range res.Streams {
		if s.Index == streamIdx && s.OutputIndex == nil {
			idx := outputIdx
			s.OutputIndex = &idx
			return
		}
	}
}

// subtitleTitle derives the display title for a standalone subtitle
// file: the match differential plus the file's original extension, with
// a single leading separator dot stripped.
func subtitleTitle(in *Input) string {
	title := in.Diff + "." + in.File.Ext()
	if len(title) > 1 && title[0] == '.' {
		title = title[1:]
	}
	return title
}
