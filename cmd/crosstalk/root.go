package main

import (
	"fmt"
	"io"
	stdslog "log/slog"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/crosstalk"
	"github.com/unkn0wn-root/crosstalk/internal/config"
	logruslog "github.com/unkn0wn-root/crosstalk/log/logrus"
	sloglog "github.com/unkn0wn-root/crosstalk/log/slog"
	zaplog "github.com/unkn0wn-root/crosstalk/log/zap"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	language   string
	logLevel   string

	cfg    *config.Config
	log    crosstalk.Logger
	closer func()
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, closer: func() {}}

	root := &cobra.Command{
		Use:   "crosstalk",
		Short: "Encode and decode six-symbol dialect frames",
		Long: `crosstalk turns text into frames written with a six-symbol language.
Any party can decode any frame: the sender's language travels in the frame.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) { a.closer() },
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	pf.StringVarP(&a.language, "language", "l", "", "language name or six symbols (overrides config)")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newCheckCmd(a),
		newCodebookCmd(a),
		newLanguagesCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.log, a.closer, err = newLogger(cfg.Log, a.stderr)
	return err
}

func (a *app) translator() (*crosstalk.Translator, error) {
	opts, err := a.cfg.Options(a.language, a.log)
	if err != nil {
		return nil, err
	}
	return crosstalk.New(opts)
}

// input returns args joined by spaces, or all of stdin when there are none.
func (a *app) input(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func newLogger(c config.LogConfig, w io.Writer) (crosstalk.Logger, func(), error) {
	nop := func() {}
	switch c.Backend {
	case "none":
		return crosstalk.NopLogger{}, nop, nil
	case "zap":
		lvl, err := zapcore.ParseLevel(c.Level)
		if err != nil {
			return nil, nop, err
		}
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		l := zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), lvl))
		return zaplog.New(l), func() { _ = l.Sync() }, nil
	case "logrus":
		lvl, err := logrus.ParseLevel(c.Level)
		if err != nil {
			return nil, nop, err
		}
		l := logrus.New()
		l.SetOutput(w)
		l.SetLevel(lvl)
		return logruslog.New(l), nop, nil
	case "slog":
		var lvl stdslog.Level
		if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
			return nil, nop, err
		}
		h := stdslog.NewTextHandler(w, &stdslog.HandlerOptions{Level: lvl})
		return sloglog.New(stdslog.New(h)), nop, nil
	}
	return nil, nop, fmt.Errorf("unknown log backend %q", c.Backend)
}
