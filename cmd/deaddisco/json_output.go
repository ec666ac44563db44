package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// writeJSON renders the --json payloads (resolution results and doctor
// reports) as indented JSON on the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
