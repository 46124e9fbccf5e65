package content

// Settings holds the editor's per-project configuration, persisted alongside
// the content collections. Delays are in milliseconds.
type Settings struct {
	ExportTargetID   string `json:"exportTargetId"`
	DownloadFileName string `json:"downloadFileName"`
	SaveDelay        int    `json:"saveDelay"`
	ExportDelay      int    `json:"exportDelay"`
}

// DefaultSettings returns the built-in settings used when no settings
// document exists or the stored one is unreadable.
func DefaultSettings() Settings {
	return Settings{
		ExportTargetID:   "default",
		DownloadFileName: "swipeforfuture.ces",
		SaveDelay:        5000,
		ExportDelay:      5000,
	}
}
