package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/audio"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/logging"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/resolve"
)

// WindowTitle is the main window caption.
const WindowTitle = "BPM Detector for Dead as Disco"

const (
	windowWidth  = 450
	windowHeight = 350
)

// Resolver runs one resolution request to completion.
type Resolver interface {
	Resolve(ctx context.Context, req resolve.Request) resolve.Result
}

// RootUI owns the window content and doubles as the pipeline's event sink.
type RootUI struct {
	window   fyne.Window
	resolver Resolver
	logger   *slog.Logger

	songEntry *widget.Entry
	dirEntry  *widget.Entry
	fileEntry *widget.Entry
	getButton *widget.Button
	status    *widget.Label
	result    *widget.Label

	running atomic.Bool
}

// New builds the window content. Wire the pipeline with SetResolver before
// showing the window; the pipeline should use the returned UI as its sink.
func New(window fyne.Window, logger *slog.Logger) *RootUI {
	ui := &RootUI{
		window: window,
		logger: logging.NewComponentLogger(logger, "ui"),
	}
	window.SetTitle(WindowTitle)
	window.Resize(fyne.NewSize(windowWidth, windowHeight))
	window.SetContent(ui.buildLayout())
	return ui
}

// SetResolver connects the resolution pipeline.
func (ui *RootUI) SetResolver(r Resolver) {
	ui.resolver = r
}

func (ui *RootUI) buildLayout() fyne.CanvasObject {
	ui.songEntry = widget.NewEntry()
	ui.songEntry.SetPlaceHolder("Song name")
	ui.songEntry.OnSubmitted = func(string) { ui.onGetBPM() }

	ui.dirEntry = widget.NewEntry()
	ui.dirEntry.SetPlaceHolder("Directory to scan")
	dirRow := container.NewBorder(nil, nil, nil,
		widget.NewButton("Browse Directory", ui.onBrowseDirectory), ui.dirEntry)

	ui.fileEntry = widget.NewEntry()
	ui.fileEntry.SetPlaceHolder("Audio file path")
	fileRow := container.NewBorder(nil, nil, nil,
		widget.NewButton("Browse File", ui.onBrowseFile), ui.fileEntry)

	ui.getButton = widget.NewButton("Get BPM", ui.onGetBPM)
	ui.getButton.Importance = widget.HighImportance

	ui.status = widget.NewLabel("")
	ui.result = widget.NewLabel("")
	ui.result.Wrapping = fyne.TextWrapWord

	return container.NewVBox(
		widget.NewLabel("Enter Song Name (e.g., Firefly Jim Yosef):"),
		ui.songEntry,
		dirRow,
		widget.NewLabel("Or Select Audio File (.mp3 or .wav):"),
		fileRow,
		ui.getButton,
		ui.status,
		ui.result,
	)
}

func (ui *RootUI) onGetBPM() {
	if ui.resolver == nil {
		return
	}
	if !ui.running.CompareAndSwap(false, true) {
		return
	}

	req := resolve.Request{
		SongName:  ui.songEntry.Text,
		FilePath:  ui.fileEntry.Text,
		Directory: ui.dirEntry.Text,
	}
	ui.getButton.Disable()
	ui.status.SetText("Resolving...")
	ui.result.SetText("")

	go func() {
		ui.resolver.Resolve(context.Background(), req)
	}()
}

func (ui *RootUI) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if uri == nil {
			return
		}
		ui.dirEntry.SetText(uri.Path())
	}, ui.window)
}

func (ui *RootUI) onBrowseFile() {
	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		ui.fileEntry.SetText(reader.URI().Path())
	}, ui.window)
	picker.SetFilter(storage.NewExtensionFileFilter(audio.SupportedExtensions()))
	picker.Show()
}

// StepStarted implements resolve.Sink.
func (ui *RootUI) StepStarted(step, detail string) {
	text := detail
	if text == "" {
		text = stepLabel(step)
	}
	fyne.Do(func() {
		ui.status.SetText(text)
	})
}

// StepFailed implements resolve.Sink. Failures surface in the status line
// while the pipeline moves on to the next fallback.
func (ui *RootUI) StepFailed(step, message string) {
	fyne.Do(func() {
		ui.status.SetText(message)
	})
}

// Resolved implements resolve.Sink and re-arms the form.
func (ui *RootUI) Resolved(result resolve.Result) {
	fyne.Do(func() {
		ui.status.SetText("")
		ui.result.SetText(resultText(result))
		ui.getButton.Enable()
	})
	ui.running.Store(false)
}

func stepLabel(step string) string {
	switch step {
	case resolve.StepRemoteLookup:
		return "Searching Spotify..."
	case resolve.StepFileScan:
		return "Scanning directory..."
	case resolve.StepLocalAnalysis:
		return "Analyzing audio..."
	default:
		return "Working..."
	}
}

func resultText(result resolve.Result) string {
	if result.Resolved() {
		return fmt.Sprintf("Use this BPM in Dead as Disco: %s\n%s", resolve.FormatBPM(*result.BPM), result.Message)
	}
	return "Failed to find BPM.\n" + result.Message
}
