package probe

import (
	"regexp"
	"strconv"
	"strings"
)

// streamLineRe matches one stream line of the inspection tool's
// diagnostic output, e.g.
//
//	Stream #0:1(eng): Audio: flac
//
// The format is free text and carries no stability guarantee across tool
// versions or locales, so parsing is per-line and best-effort: a line
// that fails to parse is skipped with a warning instead of failing the
// whole document.
var streamLineRe = regexp.MustCompile(`Stream #(\d+):(\d+)(.*): (\w+): (\w+)`)

// parseStreams scans the captured diagnostic log of res and appends one
// Stream per matched line.
func parseStreams(res *Result) {
	matches := streamLineRe.FindAllStringSubmatch(res.Log, -1)

	for i, m := range matches {
		fileIdx, err := strconv.Atoi(m[1])
		if err != nil {
			res.warnf("Caught exception when trying to parse the stream %d info: %v", i+1, err)
			res.Errs = append(res.Errs, err)
			continue
		}
		streamIdx, err := strconv.Atoi(m[2])
		if err != nil {
			res.warnf("Caught exception when trying to parse the stream %d info: %v", i+1, err)
			res.Errs = append(res.Errs, err)
			continue
		}

		if fileIdx != 0 {
			res.warnf("Found unexpected stream index #%d:%d", fileIdx, streamIdx)
		}

		lang, ok := normalizeLanguage(m[3])
		if !ok {
			res.warnf("Found unexpected language code %s", m[3])
		}

		streamType := m[4]
		if streamType != TypeVideo && streamType != TypeAudio && streamType != TypeSubtitle {
			res.warnf("Found unexpected stream type %s", streamType)
		}

		res.Streams = append(res.Streams, &Stream{
			Index:    streamIdx,
			Type:     streamType,
			Codec:    m[5],
			Language: lang,
		})
		res.infof("Stream #%d: %s - %s - %s", streamIdx, streamType, m[5], lang)
	}
}

// normalizeLanguage reduces the raw tag segment of a stream line to a
// bare language code. An empty segment means undetermined; a trailing
// parenthesized tag like "(eng)" is unwrapped. Any other shape keeps the
// raw text and reports ok=false so the caller can warn.
func normalizeLanguage(raw string) (string, bool) {
	lang := raw
	if lang == "" {
		lang = "(und)"
	}
	if strings.HasSuffix(lang, ")") {
		if open := strings.Index(lang, "("); open >= 0 {
			lang = lang[open:]
		}
	}
	if strings.HasPrefix(lang, "(") && strings.HasSuffix(lang, ")") {
		return lang[1 : len(lang)-1], true
	}
	return raw, false
}
