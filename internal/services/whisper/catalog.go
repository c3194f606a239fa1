package whisper

// ModelInfo describes one selectable model size.
type ModelInfo struct {
	Name        string
	Description string
	DownloadMB  int
}

// Catalog lists the supported model sizes from fastest to most accurate.
func Catalog() []ModelInfo {
	return []ModelInfo{
		{Name: "tiny", Description: "fastest, lowest accuracy", DownloadMB: 75},
		{Name: "base", Description: "fast, basic accuracy", DownloadMB: 142},
		{Name: "small", Description: "balanced speed and accuracy", DownloadMB: 466},
		{Name: "medium", Description: "good accuracy, moderate speed", DownloadMB: 1500},
		{Name: "large-v3", Description: "best accuracy, slowest", DownloadMB: 2900},
	}
}

// KnownModel reports whether name is a supported model size.
func KnownModel(name string) bool {
	for _, model := range Catalog() {
		if model.Name == name {
			return true
		}
	}
	return false
}
