package platform

import (
	"os"
	"runtime"
	"strings"
)

// Info contains host facts the scanner and reporter need
type Info struct {
	OS           string
	Hostname     string
	Elevated     bool
	ExcludeNames []string
}

// GetInfo returns platform-specific information
func GetInfo() (*Info, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	return &Info{
		OS:           runtime.GOOS,
		Hostname:     hostname,
		Elevated:     IsElevated(),
		ExcludeNames: SystemExcludedNames(),
	}, nil
}

// SystemExcludedNames returns entry names known to hang or mislead recursive
// scans. These are measured shallowly and never drilled into.
func SystemExcludedNames() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			"$Recycle.Bin",
			"System Volume Information",
			"Recovery",
			"pagefile.sys",
			"hiberfil.sys",
			"swapfile.sys",
		}
	case "darwin":
		return []string{
			".Trashes",
			".Spotlight-V100",
			".fseventsd",
			"System Volume Information",
		}
	default:
		return []string{
			"proc",
			"sys",
			"dev",
			"run",
			"lost+found",
		}
	}
}

// IsExcludedName reports whether name matches any of the excluded entry
// names, case-insensitively.
func IsExcludedName(name string, excluded []string) bool {
	for _, ex := range excluded {
		if strings.EqualFold(name, ex) {
			return true
		}
	}
	return false
}
