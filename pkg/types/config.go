// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PathsConfig holds the folders and files the batch reads and writes.
type PathsConfig struct {
	// InputFolder is scanned (non-recursively) for *.pdf files.
	InputFolder string `json:"input_folder" yaml:"InputFolder"`

	// OutputFolder receives the filled spreadsheet.
	OutputFolder string `json:"output_folder" yaml:"OutputFolder"`

	// ProcessedFolder receives source PDFs after a successful write.
	ProcessedFolder string `json:"processed_folder" yaml:"ProcessedFolder"`

	// ErrorFolder receives source PDFs that failed at any stage.
	ErrorFolder string `json:"error_folder" yaml:"ErrorFolder"`

	// ExcelTemplate is the XLSX template copied and filled for each run.
	ExcelTemplate string `json:"excel_template" yaml:"ExcelTemplate"`
}

// SettingsConfig holds logging settings.
type SettingsConfig struct {
	// LogFile is the size-rotated log file path.
	LogFile string `json:"log_file" yaml:"LogFile"`

	// LogLevel is the minimum level written (default "info").
	LogLevel string `json:"log_level" yaml:"LogLevel"`

	// LogMaxSizeMB is the size threshold for rotation in megabytes (default 5).
	LogMaxSizeMB int `json:"log_max_size_mb" yaml:"LogMaxSizeMB"`

	// LogMaxBackups is the number of rotated files kept (default 3).
	LogMaxBackups int `json:"log_max_backups" yaml:"LogMaxBackups"`
}

// Config groups all settings for one batch run. It is loaded once at
// startup and passed explicitly to each component.
type Config struct {
	Paths    PathsConfig    `json:"paths" yaml:"Paths"`
	Settings SettingsConfig `json:"settings" yaml:"Settings"`
}
