package app

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yourusername/ytdl-gateway/internal/domain"
)

// Quality and container tokens understood by the selection policy
const (
	QualityBest    = "best"
	QualityHighest = "highest"
	ContainerMP3   = "mp3"
	ContainerMP4   = "mp4"
)

// FamilyFor maps a requested container token to the media-kind family it implies
func FamilyFor(container string) domain.MediaKind {
	if strings.EqualFold(container, ContainerMP3) {
		return domain.KindAudioOnly
	}
	return domain.KindCombined
}

// WantsHighest reports whether the quality token asks for the best available format
func WantsHighest(quality string) bool {
	q := strings.ToLower(strings.TrimSpace(quality))
	return q == "" || q == QualityBest || q == QualityHighest
}

// SelectFormat applies the selection policy: filter to the family implied by
// container, then pick the highest ranked format, or the highest ranked one
// whose label, coarse quality or itag equals quality. It never falls back to a
// format of another family or label.
func SelectFormat(formats []domain.Format, quality, container string) (*domain.Format, error) {
	family := FamilyFor(container)

	var candidates []domain.Format
	for _, f := range formats {
		if f.Kind() != family {
			continue
		}
		if !WantsHighest(quality) && !matchesQuality(f, quality) {
			continue
		}
		candidates = append(candidates, f)
	}

	if len(candidates) == 0 {
		return nil, domain.ErrFormatNotFound
	}

	SortByQuality(candidates)
	selected := candidates[0]
	return &selected, nil
}

// SortByQuality orders formats from best to worst, stable for equal ranks
func SortByQuality(formats []domain.Format) {
	sort.SliceStable(formats, func(i, j int) bool {
		return compareQuality(formats[i], formats[j]) > 0
	})
}

func matchesQuality(f domain.Format, token string) bool {
	token = strings.TrimSpace(token)
	if f.QualityLabel != "" && strings.EqualFold(f.QualityLabel, token) {
		return true
	}
	if f.Quality != "" && strings.EqualFold(f.Quality, token) {
		return true
	}
	if f.AudioQuality != "" && strings.EqualFold(f.AudioQuality, token) {
		return true
	}
	return strconv.Itoa(f.Itag) == token
}

// compareQuality returns >0 when a ranks above b
func compareQuality(a, b domain.Format) int {
	if a.HasVideo || b.HasVideo {
		if d := videoHeight(a) - videoHeight(b); d != 0 {
			return d
		}
		if d := a.FPS - b.FPS; d != 0 {
			return d
		}
	}
	if d := audioTier(a.AudioQuality) - audioTier(b.AudioQuality); d != 0 {
		return d
	}
	if d := a.AudioSampleRate - b.AudioSampleRate; d != 0 {
		return d
	}
	return a.Bitrate - b.Bitrate
}

// videoHeight prefers the reported height and falls back to the label ("720p60" -> 720)
func videoHeight(f domain.Format) int {
	if f.Height > 0 {
		return f.Height
	}
	label := f.QualityLabel
	if i := strings.IndexByte(label, 'p'); i > 0 {
		if h, err := strconv.Atoi(label[:i]); err == nil {
			return h
		}
	}
	return 0
}

func audioTier(q string) int {
	switch strings.ToUpper(q) {
	case "AUDIO_QUALITY_HIGH":
		return 3
	case "AUDIO_QUALITY_MEDIUM":
		return 2
	case "AUDIO_QUALITY_LOW", "AUDIO_QUALITY_ULTRALOW":
		return 1
	default:
		return 0
	}
}
