package main

import (
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/ui"
)

const appID = "com.deadasdisco.bpm"

func newGUICommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the graphical resolver",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(ctx)
		},
	}
}

// runGUI owns the window lifecycle. The resolver and the UI reference each
// other, so wiring happens in two steps: the window is built first so it can
// act as the pipeline's event sink, then the pipeline is handed back to it.
func runGUI(ctx *commandContext) error {
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	lock, err := ui.NewInstanceLock("")
	if err != nil {
		return err
	}
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	fyneApp := app.NewWithID(appID)
	window := fyneApp.NewWindow(ui.WindowTitle)
	root := ui.New(window, logger)

	pipeline, err := ctx.buildPipeline(logger, root)
	if err != nil {
		return err
	}
	root.SetResolver(pipeline)

	window.ShowAndRun()
	return nil
}
