package domain

import (
	"strings"
	"time"
)

// MediaKind groups formats by the streams they carry
type MediaKind string

const (
	KindCombined  MediaKind = "videoandaudio"
	KindAudioOnly MediaKind = "audioonly"
	KindVideoOnly MediaKind = "videoonly"
)

// VideoReference is a source URL that passed validation
type VideoReference struct {
	URL     string `json:"url"`
	VideoID string `json:"videoId"`
}

// Thumbnail is one entry of a video's thumbnail list, ordered smallest first
type Thumbnail struct {
	URL    string `json:"url"`
	Width  uint   `json:"width"`
	Height uint   `json:"height"`
}

// Format is one encoded variant of a video as reported by the extraction library
type Format struct {
	Itag            int
	URL             string
	MimeType        string
	Quality         string // coarse quality, e.g. "hd720", "medium"
	QualityLabel    string // e.g. "720p", "1080p60"; empty for audio
	Container       string
	HasVideo        bool
	HasAudio        bool
	Bitrate         int
	Width           int
	Height          int
	FPS             int
	AudioQuality    string // e.g. "AUDIO_QUALITY_MEDIUM"
	AudioSampleRate int
	ContentLength   int64

	// Source holds the library's own format value so it can be handed back for streaming.
	Source interface{} `json:"-"`
}

// Kind returns the media-kind family of the format
func (f Format) Kind() MediaKind {
	switch {
	case f.HasVideo && f.HasAudio:
		return KindCombined
	case f.HasAudio:
		return KindAudioOnly
	default:
		return KindVideoOnly
	}
}

// Label returns the quality label, falling back to the coarse quality
func (f Format) Label() string {
	if f.QualityLabel != "" {
		return f.QualityLabel
	}
	return f.Quality
}

// Descriptor projects the format into its public shape
func (f Format) Descriptor() FormatDescriptor {
	d := FormatDescriptor{
		Itag:      f.Itag,
		Quality:   f.Label(),
		Container: f.Container,
		HasVideo:  f.HasVideo,
		HasAudio:  f.HasAudio,
	}
	if f.ContentLength > 0 {
		size := f.ContentLength
		d.Filesize = &size
	}
	return d
}

// FormatDescriptor is the public description of a format
type FormatDescriptor struct {
	Itag      int    `json:"itag"`
	Quality   string `json:"quality,omitempty"`
	Container string `json:"container"`
	HasVideo  bool   `json:"hasVideo"`
	HasAudio  bool   `json:"hasAudio"`
	Filesize  *int64 `json:"filesize"`
}

// Video is the extraction library's view of a video, normalized
type Video struct {
	ID          string
	Title       string
	Description string
	Author      string
	Views       int64
	Duration    time.Duration
	PublishDate time.Time
	Thumbnails  []Thumbnail
	Formats     []Format

	Source interface{} `json:"-"`
}

// FormatsOfKind returns the formats of one media-kind family, preserving order
func (v *Video) FormatsOfKind(kind MediaKind) []Format {
	var out []Format
	for _, f := range v.Formats {
		if f.Kind() == kind {
			out = append(out, f)
		}
	}
	return out
}

// VideoMetadata is the shaped metadata returned to clients
type VideoMetadata struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Thumbnail   string             `json:"thumbnail,omitempty"`
	Duration    *int64             `json:"duration"`
	Author      string             `json:"author"`
	Views       int64              `json:"views"`
	UploadDate  string             `json:"uploadDate,omitempty"`
	Formats     []FormatDescriptor `json:"formats"`
}

// ContainerFromMime extracts the container from a mime type such as
// "video/mp4; codecs=\"avc1.42001E, mp4a.40.2\""
func ContainerFromMime(mimeType string) string {
	_, subtype, ok := strings.Cut(mimeType, "/")
	if !ok {
		return ""
	}
	subtype, _, _ = strings.Cut(subtype, ";")
	return strings.TrimSpace(subtype)
}

// ResolvedLink is the result of direct-link resolution
type ResolvedLink struct {
	TaskID         string `json:"taskId"`
	Filename       string `json:"filename"`
	Title          string `json:"title"`
	DownloadURL    string `json:"downloadUrl"`
	DirectDownload bool   `json:"directDownload"`
	Message        string `json:"message"`
}
