package main

import (
	"github.com/spf13/cobra"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/resolve"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	var (
		songName  string
		fileName  string
		directory string
		jsonOut   bool
		writeTag  bool
	)

	rootCmd := &cobra.Command{
		Use:           "deaddisco",
		Short:         "BPM resolver for Dead as Disco",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if songName == "" && fileName == "" && directory == "" && !jsonOut && !writeTag {
				return runGUI(ctx)
			}
			req := resolve.Request{
				SongName:  songName,
				FilePath:  fileName,
				Directory: directory,
			}
			return runResolve(cmd, ctx, req, jsonOut, writeTag)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.Flags().StringVarP(&songName, "song", "s", "", "Song name to look up")
	rootCmd.Flags().StringVarP(&fileName, "filename", "f", "", "Audio file to analyze (.mp3 or .wav)")
	rootCmd.Flags().StringVarP(&directory, "directory", "d", "", "Directory to scan when the remote lookup fails")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the resolution result as JSON")
	rootCmd.Flags().BoolVar(&writeTag, "write-tag", false, "Write the resolved tempo into the analyzed mp3's TBPM frame")

	rootCmd.AddCommand(newGUICommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
