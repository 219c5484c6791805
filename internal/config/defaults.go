package config

import (
	"os"
	"runtime"
)

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		StartPath:           defaultStartPath(),
		MaxDepth:            10,
		Top:                 5,
		MaxWorkers:          10,
		OnlyPhysicalFiles:   true,  // Cloud placeholders count as ~1KB, not nominal size
		FollowReparsePoints: false, // Junction cycles and double-counted mounts otherwise
		MinSize:             "",

		PollIntervalMs: 500,
		QuietWindowSec: 30,
		HardTimeoutSec: 600, // 10 minutes

		ExcludeNames: nil, // Platform defaults apply

		Transcript:    true,
		TranscriptDir: "",
		Verbose:       false,
		DryRun:        false,
	}
}

// defaultStartPath returns the filesystem root for the current platform.
func defaultStartPath() string {
	if runtime.GOOS == "windows" {
		if drive := os.Getenv("SystemDrive"); drive != "" {
			return drive + `\`
		}
		return `C:\`
	}
	return "/"
}
