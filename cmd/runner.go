package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/m3ux/internal/editor"
	"github.com/desertthunder/m3ux/internal/m3u"
	"github.com/desertthunder/m3ux/internal/repositories"
	"github.com/desertthunder/m3ux/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	session    *editor.Session
	history    *repositories.HistoryRecorder
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Store      editor.Store                  // defaults to a FileStore built from Config
	History    *repositories.HistoryRecorder // nil disables history
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Store == nil {
		opts.Store = editor.FileStore{
			Options:   parseOptions(opts.Config),
			Extension: opts.Config.Editor.DefaultExtension,
		}
	}

	sessionOpts := editor.SessionOpts{Store: opts.Store, Logger: opts.Logger}
	if opts.History != nil {
		sessionOpts.Recorder = opts.History
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		session:    editor.NewSession(sessionOpts),
		history:    opts.History,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the logger used by the runner and its session.
func (r *Runner) SetLogger(l *log.Logger) {
	if l == nil {
		return
	}
	r.logger = l
	r.session.SetLogger(l)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		showCommand, removeCommand, moveCommand, selectCommand, exportCommand,
		tuiCommand, guiCommand, historyCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func parseOptions(config *shared.Config) m3u.ParseOptions {
	return m3u.ParseOptions{Lenient: config.Editor.LenientParse}
}

// open loads path through the session.
func (r *Runner) open(path string) (editor.Document, error) {
	if path == "" {
		return editor.Document{}, fmt.Errorf("%w: playlist file", shared.ErrMissingArgument)
	}
	doc, _, err := r.session.Update(editor.Document{}, editor.Open(path))
	return doc, err
}

// apply runs cmd against doc through the session.
func (r *Runner) apply(doc editor.Document, cmd editor.Command) (editor.Document, editor.Outcome, error) {
	return r.session.Update(doc, cmd)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
