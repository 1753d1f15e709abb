package dto

// StoredFile - результат загрузки через FileRelay
type StoredFile struct {
	Filename string `json:"filename"`
	Key      string `json:"key"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`

	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}
