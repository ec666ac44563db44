package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/deps"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check external binaries and Spotify credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			binaries := deps.CheckBinaries(deps.ForConfig(cfg))
			credentials := deps.CheckCredentials(cfg)

			if jsonOut {
				return writeJSON(cmd, newDoctorPayload(binaries, credentials))
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}

			var missing []string
			for _, status := range append(append([]deps.Status{}, binaries...), credentials) {
				fmt.Fprintln(out, renderStatusLine(status.Name, statusKindFor(status), statusMessage(status), colorize))
				if !status.Available && !status.Optional {
					missing = append(missing, status.Name)
				}
			}
			if !credentials.Available {
				fmt.Fprintln(out, "Remote lookup stays disabled until Spotify credentials are configured.")
			}
			if len(missing) > 0 {
				return fmt.Errorf("missing required dependencies: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit dependency statuses as JSON")
	return cmd
}

func statusKindFor(status deps.Status) statusKind {
	switch {
	case status.Available:
		return statusOK
	case status.Optional:
		return statusWarn
	default:
		return statusError
	}
}

func statusMessage(status deps.Status) string {
	if !status.Available {
		return status.Detail
	}
	return status.Command
}

type doctorPayload struct {
	Binaries    []dependencyPayload `json:"binaries"`
	Credentials dependencyPayload   `json:"credentials"`
	Healthy     bool                `json:"healthy"`
}

type dependencyPayload struct {
	Name        string `json:"name"`
	Command     string `json:"command,omitempty"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

func newDoctorPayload(binaries []deps.Status, credentials deps.Status) doctorPayload {
	payload := doctorPayload{
		Credentials: newDependencyPayload(credentials),
		Healthy:     true,
	}
	for _, status := range binaries {
		payload.Binaries = append(payload.Binaries, newDependencyPayload(status))
		if !status.Available && !status.Optional {
			payload.Healthy = false
		}
	}
	return payload
}

func newDependencyPayload(status deps.Status) dependencyPayload {
	return dependencyPayload{
		Name:        status.Name,
		Command:     status.Command,
		Description: status.Description,
		Optional:    status.Optional,
		Available:   status.Available,
		Detail:      status.Detail,
	}
}
