package config

// FileRule - правила загрузки для одного вида файлов
type FileRule struct {
	Kind         string
	Folder       string
	Extensions   []string
	MimePrefixes []string
	MaxSize      int64
}

const (
	KindArtwork = "artwork"
	KindResume  = "resume"
)

// UploadRules возвращает правила загрузки с учетом лимитов из конфигурации
func (c *Config) UploadRules() map[string]FileRule {
	return map[string]FileRule{
		KindArtwork: {
			Kind:         KindArtwork,
			Folder:       "portfolio-artworks",
			Extensions:   []string{"jpg", "jpeg", "png", "webp", "gif"},
			MimePrefixes: []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
			MaxSize:      c.Upload.ArtworkMaxSize,
		},
		KindResume: {
			Kind:         KindResume,
			Folder:       "portfolio-resume",
			Extensions:   []string{"pdf"},
			MimePrefixes: []string{"application/pdf"},
			MaxSize:      c.Upload.ResumeMaxSize,
		},
	}
}
