package utils

import (
	"fmt"
	"strings"
)

const (
	B  = 1
	KB = 1024 * B
	MB = 1024 * KB
	GB = 1024 * MB
	TB = 1024 * GB
)

// FormatBytes converts bytes to human-readable format. The unit is chosen so
// the mantissa stays below 1024.
func FormatBytes(bytes uint64) string {
	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.2f TB", float64(bytes)/float64(TB))
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// ParseSize converts human-readable size ("500MB", "2GB") to bytes.
func ParseSize(size string) (uint64, error) {
	size = strings.TrimSpace(size)
	if size == "" {
		return 0, fmt.Errorf("empty size")
	}

	var value float64
	var unit string

	n, err := fmt.Sscanf(size, "%f%s", &value, &unit)
	if err != nil && n == 0 {
		return 0, fmt.Errorf("invalid size format: %s", size)
	}
	if value < 0 {
		return 0, fmt.Errorf("size must be >= 0: %s", size)
	}

	switch strings.ToUpper(unit) {
	case "", "B":
		return uint64(value), nil
	case "KB", "K":
		return uint64(value * KB), nil
	case "MB", "M":
		return uint64(value * MB), nil
	case "GB", "G":
		return uint64(value * GB), nil
	case "TB", "T":
		return uint64(value * TB), nil
	default:
		return 0, fmt.Errorf("unknown unit: %s", unit)
	}
}
