package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/config"
)

// Requirement defines an external dependency the resolver relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ForConfig returns the binary requirements for the configured decoder. Both
// binaries are only exercised for mp3 input; wav files decode in process.
func ForConfig(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpeg(),
			Description: "Decodes mp3 files for local analysis",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobe(),
			Description: "Inspects audio streams before decoding",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// CheckCredentials reports whether Spotify client credentials are configured.
// The remote lookup step is disabled without them; the rest of the pipeline
// keeps working.
func CheckCredentials(cfg *config.Config) Status {
	status := Status{
		Name:        "Spotify credentials",
		Description: "Enable the remote BPM lookup",
		Optional:    true,
	}
	if _, _, ok := cfg.SpotifyCredentials(); !ok {
		status.Detail = "client credentials not configured"
		return status
	}
	status.Available = true
	return status
}
