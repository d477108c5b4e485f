package mapping

import "fmt"

// BuildMergeArgs assembles the complete merge argument list for one task:
// tool name, inputs in encounter order, stream maps in output-index
// order, subtitle titles, default-track dispositions, codec flags, and
// the destination path.
//
// When copyAll is set a single "-c copy" covers every track type; that
// can fail to mux subtitle formats the target container rejects, which
// is the caller's deliberate choice. Otherwise video and audio are
// copied verbatim and subtitle codec handling is left to the tool.
func BuildMergeArgs(tool string, m *Mapping, outputPath string, copyAll bool) []string {
	args := []string{tool}

	for _, path := range m.InputPaths {
		args = append(args, "-i", path)
	}
	for _, ref := range m.Refs {
		args = append(args, "-map", fmt.Sprintf("%d:%d", ref.File, ref.Stream))
	}
	for _, t := range m.Titles {
		args = append(args,
			fmt.Sprintf("-metadata:s:%d", t.OutputIndex),
			fmt.Sprintf("title=%q", t.Text))
	}
	if m.AudioCount > 0 {
		args = append(args, "-disposition:a:0", "default")
	}
	if m.SubtitleCount > 0 {
		args = append(args, "-disposition:s:0", "default")
	}
	if copyAll {
		args = append(args, "-c", "copy")
	} else {
		args = append(args, "-c:v", "copy", "-c:a", "copy")
	}
	return append(args, outputPath)
}
