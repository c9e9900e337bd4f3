package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/preciselog/bridge/zapbridge"
	"github.com/philipp01105/preciselog/formatter"
	"github.com/philipp01105/preciselog/timestamp"
)

// app carries state shared by all subcommands
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
	log     *zap.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "preciselog",
		Short:         "Render precise timestamps and formatted log records",
		Long:          `preciselog renders epoch values as ISO8601 timestamps with a chosen fractional precision and timezone, and emits log records through the text and JSON formatters.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.verbose {
				a.log = newDiagnostics(stderr)
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Write diagnostics to stderr")

	root.AddCommand(newEmitCmd(a))
	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newValidateCmd(a))
	return root
}

// newDiagnostics builds the zap logger used for --verbose output. It
// stamps its own lines with the same renderer the formatters use.
func newDiagnostics(w io.Writer) *zap.Logger {
	r := timestamp.MustNew(timestamp.MaxPrecision, "")
	enc := zapcore.NewConsoleEncoder(zapbridge.NewEncoderConfig(r))
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zap.DebugLevel))
}

// formatterFlags are the Config overrides shared by emit and render
type formatterFlags struct {
	configPath    string
	fracDigits    int
	timezone      string
	format        string
	messageFormat string
	renames       map[string]string
	strict        bool
	caller        bool
}

func (f *formatterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML formatter config to start from")
	fs.IntVarP(&f.fracDigits, "frac-digits", "d", timestamp.DefaultFracDigits, "Digits after the decimal point")
	fs.StringVar(&f.timezone, "tz", "", "IANA timezone (default: host local zone)")
	fs.StringVarP(&f.format, "format", "f", formatter.FormatText, "Output format: text or json")
	fs.StringVarP(&f.messageFormat, "template", "t", "", "Message template, e.g. '{timestamp} {message}'")
	fs.StringToStringVar(&f.renames, "rename", nil, "Output key renames, e.g. timestamp=ts,level=lvl")
	fs.BoolVar(&f.strict, "strict", false, "Reject malformed templates and renames")
	fs.BoolVar(&f.caller, "caller", false, "Include caller information")
}

// config starts from --config (or the defaults) and applies every flag
// the user set explicitly.
func (f *formatterFlags) config(cmd *cobra.Command) (formatter.Config, error) {
	cfg := formatter.DefaultConfig()
	if f.configPath != "" {
		loaded, err := formatter.LoadConfig(f.configPath)
		if err != nil {
			return formatter.Config{}, err
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("frac-digits") {
		cfg.FracDigits = f.fracDigits
	}
	if fs.Changed("tz") {
		cfg.Timezone = f.timezone
	}
	if fs.Changed("format") {
		cfg.Format = f.format
	}
	if fs.Changed("template") {
		cfg.MessageFormat = f.messageFormat
	}
	if fs.Changed("rename") {
		cfg.FieldRenames = f.renames
	}
	if fs.Changed("strict") {
		cfg.StrictValidation = f.strict
	}
	if fs.Changed("caller") {
		cfg.IncludeCaller = f.caller
	}
	return cfg, nil
}
