package config

const (
	defaultLibraryPath        = "~/.local/share/photovault/library.json"
	defaultDefaultStorageRoot = "~/Pictures"
	defaultLogDir             = "~/.local/share/photovault/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// defaultExtensions lists the accepted image extensions in thumbnail probe
// priority order. Order matters: when a record carries no thumbnail name,
// blob deletion probes thumbnails in this order and removes the first match.
var defaultExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryPath:        defaultLibraryPath,
			DefaultStorageRoot: defaultDefaultStorageRoot,
			LogDir:             defaultLogDir,
		},
		Import: Import{
			Extensions: append([]string(nil), defaultExtensions...),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
