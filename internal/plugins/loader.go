package plugins

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"decimal-calc/internal/commands"
	"decimal-calc/internal/operations"
)

// APIVersion is the only descriptor version this binary understands.
const APIVersion = "calculator/v1"

// ErrPluginLoad wraps every failure reported by Loader.Load.
var ErrPluginLoad = errors.New("plugin load failed")

// Descriptor is the on-disk form of a plugin, one YAML file per unit.
type Descriptor struct {
	APIVersion  string `yaml:"apiVersion"`
	Kind        Kind   `yaml:"kind"`
	Provider    string `yaml:"provider"`
	Description string `yaml:"description"`
}

// Plugin describes a unit that was registered successfully.
type Plugin struct {
	Name     string
	Kind     Kind
	Provider string
	Path     string
}

// Loader binds plugin descriptors found in a directory to catalog providers.
type Loader struct {
	Catalog Catalog
	Logger  *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{Catalog: DefaultCatalog(), Logger: logger}
}

// Load scans dir for descriptors and registers each one under its file's base
// name. Failures are logged and returned; they never stop the remaining
// descriptors from loading.
func (l *Loader) Load(dir string, reg *operations.Registry, disp *commands.Dispatcher) ([]Plugin, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		l.Logger.Warn("plugins directory not readable, skipping plugin loading",
			zap.String("dir", dir),
			zap.Error(err),
		)
		return nil, []error{fmt.Errorf("%w: read dir %s: %w", ErrPluginLoad, dir, err)}
	}

	var (
		loaded   []Plugin
		failures []error
	)
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		name := strings.ToLower(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))

		p, err := l.install(name, path, reg, disp)
		if err != nil {
			err = fmt.Errorf("%w: %s: %w", ErrPluginLoad, name, err)
			l.Logger.Error("failed to load plugin", zap.String("plugin", name), zap.Error(err))
			failures = append(failures, err)
			continue
		}

		l.Logger.Info("loaded plugin",
			zap.String("plugin", p.Name),
			zap.String("kind", string(p.Kind)),
			zap.String("provider", p.Provider),
		)
		loaded = append(loaded, p)
	}

	return loaded, failures
}

func (l *Loader) install(name, path string, reg *operations.Registry, disp *commands.Dispatcher) (Plugin, error) {
	if name == "" || strings.ContainsAny(name, " \t") {
		return Plugin{}, fmt.Errorf("invalid plugin name %q", name)
	}

	desc, err := readDescriptor(path)
	if err != nil {
		return Plugin{}, err
	}

	if desc.APIVersion != APIVersion {
		return Plugin{}, fmt.Errorf("unsupported apiVersion %q, want %q", desc.APIVersion, APIVersion)
	}

	providerName := desc.Provider
	if providerName == "" {
		providerName = name
	}

	provider, ok := l.Catalog[providerName]
	if !ok {
		return Plugin{}, fmt.Errorf("unknown provider %q", providerName)
	}
	if provider.Kind() != desc.Kind {
		return Plugin{}, fmt.Errorf("provider %q is a %s, descriptor declares %q", providerName, provider.Kind(), desc.Kind)
	}

	switch p := provider.(type) {
	case OperationProvider:
		reg.Register(name, p.Fn)
	case CommandProvider:
		disp.Register(name, p.New())
	default:
		return Plugin{}, fmt.Errorf("unsupported provider type %T", provider)
	}

	return Plugin{Name: name, Kind: desc.Kind, Provider: providerName, Path: path}, nil
}

func readDescriptor(path string) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("read descriptor: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var desc Descriptor
	if err := dec.Decode(&desc); err != nil {
		return Descriptor{}, fmt.Errorf("decode descriptor: %w", err)
	}
	return desc, nil
}
