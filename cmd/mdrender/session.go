package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	flag "github.com/spf13/pflag"

	"github.com/qblog/go-mdrender"
	"github.com/qblog/go-mdrender/internal/config"
	"github.com/qblog/go-mdrender/internal/metrics"
)

// session is the state shared by one command run: the effective config,
// the logger, a private metrics registry and the renderer factory.
type session struct {
	cfg      *config.Config
	envCfg   *envConfig
	logger   *slog.Logger
	registry *prometheus.Registry
	recorder mdrender.Recorder
	factory  *mdrender.Factory
	variant  string
}

// unknownVariantError reports a variant selection that names no variant.
type unknownVariantError struct {
	name      string
	available []string
}

func (e *unknownVariantError) Error() string {
	return fmt.Sprintf("%v: %q", mdrender.ErrUnknownVariant, e.name)
}

func (e *unknownVariantError) Unwrap() error {
	return mdrender.ErrUnknownVariant
}

// newSession loads configuration (flags > env > file > defaults) and builds
// the factory.
func newSession(common commonFlags, env *Environment) (*session, error) {
	envCfg := loadEnvConfig(env.Getenv)
	if !common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	cfg := env.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	applyEnvConfig(envCfg, cfg)
	if common.variant != "" {
		cfg.DefaultVariant = common.variant
	}

	s := &session{
		cfg:      cfg,
		envCfg:   envCfg,
		logger:   newLogger(env.Stderr, common.quiet, common.verbose),
		registry: prometheus.NewRegistry(),
	}
	s.recorder = mdrender.NewPrometheusRecorder(s.registry)

	variants, err := mergeVariants(cfg)
	if err != nil {
		return nil, err
	}
	s.variant = cfg.DefaultVariant
	if s.variant == "" {
		s.variant = mdrender.DefaultVariant
	}
	if _, ok := variants[s.variant]; !ok {
		return nil, &unknownVariantError{name: s.variant, available: sortedNames(variants)}
	}

	list := make([]mdrender.Variant, 0, len(variants))
	for _, v := range variants {
		list = append(list, v)
	}
	s.factory, err = mdrender.NewFactory(
		mdrender.WithVariants(list...),
		mdrender.WithDefaultVariant(s.variant),
		mdrender.WithLogger(s.logger),
		mdrender.WithRecorder(s.recorder),
		mdrender.WithAssetPath(cfg.Assets.BasePath),
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// renderer returns the renderer of the selected variant.
func (s *session) renderer() *mdrender.Renderer {
	return s.factory.Get(s.variant)
}

// printMetrics writes the non-zero counters of the session registry.
func (s *session) printMetrics(w io.Writer) {
	samples, err := metrics.Snapshot(s.registry)
	if err != nil {
		s.logger.Warn("gathering metrics failed", "error", err)
		return
	}
	for _, sm := range samples {
		if sm.Value == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s %g\n", sm.Name, sm.Value)
	}
}

// usageError maps a flag parse error to ErrUsage. --help is not an error.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
