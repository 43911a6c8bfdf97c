package mdrender

import (
	"fmt"
	"log/slog"
	"sort"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/qblog/go-mdrender/internal/assets"
	"github.com/qblog/go-mdrender/internal/metrics"
	"github.com/qblog/go-mdrender/internal/plantuml"
)

// Recorder receives rendering metrics. See NewPrometheusRecorder.
type Recorder = metrics.Recorder

// Option configures a Factory.
type Option func(*Factory)

// WithVariants adds or replaces variants by name.
func WithVariants(variants ...Variant) Option {
	return func(f *Factory) {
		for _, v := range variants {
			f.variants[v.Name] = v
		}
	}
}

// WithDefaultVariant sets the variant unknown keys resolve to. Without it
// they resolve to FallbackVariant.
func WithDefaultVariant(name string) Option {
	return func(f *Factory) {
		f.defaultName = name
	}
}

// WithLogger sets the logger for renderer builds and diagram failures.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(f *Factory) {
		if r != nil {
			f.recorder = r
		}
	}
}

// WithDiagramEncoder replaces the PlantUML payload encoder.
func WithDiagramEncoder(enc func(source []byte) (string, error)) Option {
	return func(f *Factory) {
		f.encoder = enc
	}
}

// WithAssetPath sets a directory with custom styles and templates for
// standalone documents. Missing assets fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(f *Factory) {
		f.assetPath = path
	}
}

// Factory builds renderers per variant and caches them for the life of the
// Factory. It is safe for concurrent use.
type Factory struct {
	variants    map[string]Variant
	defaultName string
	logger      *slog.Logger
	recorder    Recorder
	encoder     plantuml.Encoder
	assetPath   string

	assets *assets.Resolver
	cache  cmap.ConcurrentMap[string, *Renderer]
}

// NewFactory creates a Factory with the built-in variants plus any given
// through options. Every variant is validated up front.
func NewFactory(opts ...Option) (*Factory, error) {
	f := &Factory{
		variants:    make(map[string]Variant),
		defaultName: FallbackVariant,
		logger:      slog.New(slog.DiscardHandler),
		recorder:    metrics.NoopRecorder{},
		cache:       cmap.New[*Renderer](),
	}
	for _, v := range BuiltinVariants() {
		f.variants[v.Name] = v
	}

	for _, opt := range opts {
		opt(f)
	}

	for name, v := range f.variants {
		if name != v.Name {
			return nil, fmt.Errorf("%w: key %q holds variant %q", ErrInvalidVariant, name, v.Name)
		}
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	if _, ok := f.variants[f.defaultName]; !ok {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownVariant, f.defaultName)
	}

	resolver, err := assets.NewResolver(f.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	f.assets = resolver

	return f, nil
}

// Get returns the renderer for key, building it on first use. Unknown keys
// resolve to the default variant, so the cache never holds more entries
// than there are variants.
func (f *Factory) Get(key string) *Renderer {
	name := f.resolve(key)

	if r, ok := f.cache.Get(name); ok {
		f.recorder.IncRendererCache(metrics.CacheHit)
		return r
	}

	built := false
	r := f.cache.Upsert(name, nil, func(exist bool, inMap, _ *Renderer) *Renderer {
		if exist && inMap != nil {
			return inMap
		}
		built = true
		return f.build(f.variants[name])
	})
	if built {
		f.recorder.IncRendererCache(metrics.CacheMiss)
	} else {
		f.recorder.IncRendererCache(metrics.CacheHit)
	}
	return r
}

// Render renders text with the renderer for key. Empty text yields
// EmptyPlaceholder.
func (f *Factory) Render(key, text string) string {
	if text == "" {
		return EmptyPlaceholder
	}
	return f.Get(key).RenderText(text)
}

// Lookup returns the variant registered under name.
func (f *Factory) Lookup(name string) (Variant, bool) {
	v, ok := f.variants[name]
	return v, ok
}

// Variants returns the registered variants sorted by name.
func (f *Factory) Variants() []Variant {
	out := make([]Variant, 0, len(f.variants))
	for _, v := range f.variants {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DefaultVariant returns the name unknown keys resolve to.
func (f *Factory) DefaultVariant() string {
	return f.defaultName
}

// Cached returns the number of renderers built so far.
func (f *Factory) Cached() int {
	return f.cache.Count()
}

func (f *Factory) resolve(key string) string {
	if _, ok := f.variants[key]; ok {
		return key
	}
	f.logger.Debug("unknown variant, using default", "key", key, "default", f.defaultName)
	return f.defaultName
}
