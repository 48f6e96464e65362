// Package bootstrap resolves configuration and builds the shared pieces a
// unibot command needs: knowledge table, logger and turn event publisher.
package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/unibot/pkg/cliui"
	"github.com/papercomputeco/unibot/pkg/config"
	"github.com/papercomputeco/unibot/pkg/dotdir"
	"github.com/papercomputeco/unibot/pkg/eventstream"
	"github.com/papercomputeco/unibot/pkg/eventstream/async"
	"github.com/papercomputeco/unibot/pkg/eventstream/kafka"
	"github.com/papercomputeco/unibot/pkg/eventstream/nop"
	"github.com/papercomputeco/unibot/pkg/knowledge"
	"github.com/papercomputeco/unibot/pkg/logger"
)

// Runtime is what a command runs against. Close releases it.
type Runtime struct {
	Config    *config.Config
	Store     *knowledge.Store
	Logger    *slog.Logger
	Publisher eventstream.Publisher

	// KnowledgeSource is the file the store came from, or "" for the
	// built-in table.
	KnowledgeSource string

	closers []io.Closer
}

// Options selects the flags to bind and where logs go.
type Options struct {
	Cmd      *cobra.Command
	FlagKeys []string
	Stderr   io.Writer
}

// Open resolves settings with precedence flag > env > config.toml > default
// and builds the runtime from them.
func Open(opts Options) (*Runtime, error) {
	configDir, debug := "", false
	if opts.Cmd != nil {
		configDir, _ = opts.Cmd.Flags().GetString("config-dir")
		debug, _ = opts.Cmd.Flags().GetBool("debug")
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}
	if opts.Cmd != nil {
		config.BindRegisteredFlags(v, opts.Cmd, config.Registry, opts.FlagKeys)
	}
	cfg := config.FromViper(v)

	rt := &Runtime{Config: cfg}

	rt.Logger, err = rt.newLogger(cfg.Log, debug, stderr)
	if err != nil {
		return nil, err
	}

	rt.Store, rt.KnowledgeSource, err = OpenStore(cfg.Knowledge.Path, configDir)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}

	rt.Publisher, err = NewPublisher(cfg.Events, rt.Logger)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.closers = append(rt.closers, rt.Publisher)

	rt.Logger.Debug("runtime ready",
		"knowledge", rt.KnowledgeSource,
		"events", cfg.Events.Provider,
		"mode", cfg.Chat.Mode,
	)
	return rt, nil
}

// OpenStore loads the knowledge table from path, else from knowledge.yaml
// in the dot directory, else the built-in table.
func OpenStore(path, configDir string) (*knowledge.Store, string, error) {
	if path == "" {
		found, err := dotdir.NewManager().KnowledgePath(configDir)
		if err != nil {
			return nil, "", err
		}
		path = found
	}
	if path == "" {
		return knowledge.Default(), "", nil
	}

	store, err := knowledge.Load(path)
	if err != nil {
		return nil, "", err
	}
	return store, path, nil
}

// NewPublisher builds the publisher named by events.provider. Network
// backends are wrapped in an async pool so turns do not wait on them.
func NewPublisher(cfg config.EventsConfig, logger *slog.Logger) (eventstream.Publisher, error) {
	switch cfg.Provider {
	case eventstream.ProviderNone, "":
		return nop.NewPublisher(), nil
	case eventstream.ProviderKafka:
		p, err := kafka.NewPublisher(kafka.Config{Brokers: cfg.Brokers, Topic: cfg.Topic})
		if err != nil {
			return nil, fmt.Errorf("kafka publisher: %w", err)
		}
		pool, err := async.NewPool(&async.Config{Publisher: p, Logger: logger})
		if err != nil {
			return nil, errors.Join(err, p.Close())
		}
		return pool, nil
	default:
		return nil, fmt.Errorf("%w: %q", eventstream.ErrUnknownProvider, cfg.Provider)
	}
}

func (rt *Runtime) newLogger(cfg config.LogConfig, debug bool, stderr io.Writer) (*slog.Logger, error) {
	base := logger.New(
		logger.WithWriter(stderr),
		logger.WithDebug(debug),
		logger.WithSource(debug),
		logger.WithJSON(cfg.JSON),
		logger.WithPretty(cliui.IsTerminal(stderr)),
	)
	if cfg.File == "" {
		return base, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	rt.closers = append(rt.closers, f)

	return logger.Multi(base, logger.New(
		logger.WithWriter(f),
		logger.WithDebug(debug),
		logger.WithSource(debug),
		logger.WithJSON(true),
	)), nil
}

// Close releases the publisher and any log file, in reverse order of
// creation. Publisher counters are logged once the publisher is drained.
func (rt *Runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		c := rt.closers[i]
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
		rt.logEventStats(c)
	}
	rt.closers = nil
	return errors.Join(errs...)
}

func (rt *Runtime) logEventStats(c io.Closer) {
	switch p := c.(type) {
	case *nop.Publisher:
		rt.Logger.Debug("turn events not published", "dropped", p.Dropped())
	case *async.Pool:
		if n := p.Failed(); n > 0 {
			rt.Logger.Warn("turn events failed to publish", "failed", n)
		}
	}
}
