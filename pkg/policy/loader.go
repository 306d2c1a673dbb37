package policy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/openfroyo/froyo-analyzer/pkg/analyzer"
)

// ManifestFile is the pack manifest looked up in a pack directory.
const ManifestFile = "policypack.yaml"

const reloadDelay = 500 * time.Millisecond

// Manifest is the YAML description of a pack directory.
type Manifest struct {
	Name             string           `yaml:"name" validate:"omitempty,max=100"`
	DisplayName      string           `yaml:"displayName"`
	Version          string           `yaml:"version"`
	EnforcementLevel string           `yaml:"enforcementLevel" validate:"omitempty,oneof=advisory mandatory ADVISORY MANDATORY"`
	Policies         []PolicyManifest `yaml:"policies" validate:"dive"`
}

// PolicyManifest describes one policy file of a pack.
type PolicyManifest struct {
	Name             string                 `yaml:"name" validate:"required,max=100"`
	File             string                 `yaml:"file" validate:"required"`
	DisplayName      string                 `yaml:"displayName"`
	Description      string                 `yaml:"description"`
	Message          string                 `yaml:"message"`
	EnforcementLevel string                 `yaml:"enforcementLevel" validate:"omitempty,oneof=advisory mandatory ADVISORY MANDATORY"`
	Kind             string                 `yaml:"kind" validate:"omitempty,oneof=resource stack"`
	Tags             []string               `yaml:"tags"`
	Config           map[string]interface{} `yaml:"config"`
}

// jsonPolicy is a policy defined in a .json file with inline source.
type jsonPolicy struct {
	Name             string                 `json:"name" validate:"required,max=100"`
	DisplayName      string                 `json:"displayName"`
	Description      string                 `json:"description"`
	Message          string                 `json:"message"`
	EnforcementLevel string                 `json:"enforcementLevel" validate:"omitempty,oneof=advisory mandatory ADVISORY MANDATORY"`
	Kind             string                 `json:"kind" validate:"omitempty,oneof=resource stack"`
	Tags             []string               `json:"tags"`
	Config           map[string]interface{} `json:"config"`
	Rego             string                 `json:"rego" validate:"required_without=Starlark,excluded_with=Starlark"`
	Starlark         string                 `json:"starlark"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Loader reads pack directories and watches them for changes.
type Loader struct {
	logger  zerolog.Logger
	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// NewLoader creates a new policy loader.
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{
		logger: logger.With().Str("component", "policy-loader").Logger(),
	}
}

// LoadPack reads a pack directory. Policies listed in the manifest come first
// in manifest order, followed by unlisted .rego, .star and .json files in
// file name order. Without a manifest the pack is named after the directory.
func (l *Loader) LoadPack(dir string) (*Pack, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat pack directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	manifest, err := readManifest(dir)
	if err != nil {
		return nil, err
	}

	pack := &Pack{
		Name:        manifest.Name,
		DisplayName: manifest.DisplayName,
		Version:     manifest.Version,
		Dir:         dir,
	}
	if pack.Name == "" {
		pack.Name = filepath.Base(filepath.Clean(dir))
	}
	if pack.Version == "" {
		pack.Version = "dev"
	}
	if pack.EnforcementLevel, err = analyzer.ParseEnforcementLevel(manifest.EnforcementLevel); err != nil {
		return nil, fmt.Errorf("%s: %w", ManifestFile, err)
	}

	listed := make(map[string]bool)
	for i := range manifest.Policies {
		pm := &manifest.Policies[i]
		path := filepath.Join(dir, pm.File)
		listed[filepath.Clean(path)] = true

		p, err := l.loadFile(path)
		if err != nil {
			return nil, err
		}
		if err := applyManifest(p, pm); err != nil {
			return nil, fmt.Errorf("%s: policy %s: %w", ManifestFile, pm.Name, err)
		}
		pack.Policies = append(pack.Policies, *p)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() || !isPolicyFile(entry.Name()) {
			continue
		}
		path := filepath.Clean(filepath.Join(dir, entry.Name()))
		if listed[path] {
			continue
		}
		p, err := l.loadFile(path)
		if err != nil {
			return nil, err
		}
		pack.Policies = append(pack.Policies, *p)
	}

	l.logger.Debug().
		Str("dir", dir).
		Str("pack", pack.Name).
		Int("policies", len(pack.Policies)).
		Msg("Policy pack read")

	return pack, nil
}

func readManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ManifestFile, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestFile, err)
	}
	if err := validate.Struct(&m); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ManifestFile, err)
	}
	return &m, nil
}

func applyManifest(p *Policy, pm *PolicyManifest) error {
	p.Name = pm.Name
	if pm.DisplayName != "" {
		p.DisplayName = pm.DisplayName
	}
	if pm.Description != "" {
		p.Description = pm.Description
	}
	if pm.Message != "" {
		p.Message = pm.Message
	}
	if pm.EnforcementLevel != "" {
		level, err := analyzer.ParseEnforcementLevel(pm.EnforcementLevel)
		if err != nil {
			return err
		}
		p.EnforcementLevel = level
	}
	if pm.Kind != "" {
		p.Kind = Kind(pm.Kind)
	}
	if len(pm.Tags) > 0 {
		p.Tags = pm.Tags
	}
	if len(pm.Config) > 0 {
		p.Config = pm.Config
	}
	return nil
}

func isPolicyFile(name string) bool {
	switch filepath.Ext(name) {
	case ".rego", ".star", ".json":
		return true
	}
	return false
}

// loadFile reads one policy file. Rego and Starlark policies are named after
// the file; JSON files carry their own name.
func (l *Loader) loadFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	switch filepath.Ext(path) {
	case ".rego":
		return &Policy{
			Name:        name,
			Description: extractDescription(string(data)),
			Language:    LanguageRego,
			Source:      string(data),
			Path:        path,
		}, nil
	case ".star":
		return &Policy{
			Name:        name,
			Description: extractDescription(string(data)),
			Language:    LanguageStarlark,
			Source:      string(data),
			Path:        path,
		}, nil
	case ".json":
		p, err := parseJSONPolicy(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		p.Path = path
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported policy file: %s", path)
	}
}

func parseJSONPolicy(data []byte) (*Policy, error) {
	var jp jsonPolicy
	if err := json.Unmarshal(data, &jp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON policy: %w", err)
	}
	if err := validate.Struct(&jp); err != nil {
		return nil, fmt.Errorf("invalid JSON policy: %w", err)
	}

	level, err := analyzer.ParseEnforcementLevel(jp.EnforcementLevel)
	if err != nil {
		return nil, err
	}
	if jp.EnforcementLevel == "" {
		level = ""
	}

	p := &Policy{
		Name:             jp.Name,
		DisplayName:      jp.DisplayName,
		Description:      jp.Description,
		Message:          jp.Message,
		EnforcementLevel: level,
		Kind:             Kind(jp.Kind),
		Tags:             jp.Tags,
		Config:           jp.Config,
		Language:         LanguageRego,
		Source:           jp.Rego,
	}
	if jp.Starlark != "" {
		p.Language = LanguageStarlark
		p.Source = jp.Starlark
	}
	return p, nil
}

// extractDescription joins the leading comment block of a source file.
func extractDescription(content string) string {
	var description strings.Builder

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			comment := strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
			if comment != "" {
				if description.Len() > 0 {
					description.WriteString(" ")
				}
				description.WriteString(comment)
			}
			continue
		}
		if trimmed != "" || description.Len() > 0 {
			break
		}
	}

	return description.String()
}

// Watch watches pack directories and calls reloadFn with the directory of
// every changed pack, debounced per directory. It returns once watching has
// started; the watcher stops when ctx is done.
func (l *Loader) Watch(ctx context.Context, dirs []string, reloadFn func(dir string) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	l.mu.Lock()
	l.watcher = watcher
	l.mu.Unlock()

	go l.processEvents(ctx, watcher, reloadFn)

	l.logger.Info().
		Strs("dirs", dirs).
		Msg("Started watching policy packs")

	return nil
}

// processEvents debounces file system events into reloads.
func (l *Loader) processEvents(ctx context.Context, watcher *fsnotify.Watcher, reloadFn func(dir string) error) {
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = watcher.Close()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			base := filepath.Base(event.Name)
			if !isPolicyFile(base) && base != ManifestFile {
				continue
			}

			dir := filepath.Dir(event.Name)
			l.logger.Debug().
				Str("file", event.Name).
				Str("op", event.Op.String()).
				Msg("Policy file changed")

			if t, exists := timers[dir]; exists {
				t.Stop()
			}
			timers[dir] = time.AfterFunc(reloadDelay, func() {
				if ctx.Err() != nil {
					return
				}
				l.triggerReload(dir, reloadFn)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			l.logger.Error().Err(err).Msg("Watcher error")
		}
	}
}

func (l *Loader) triggerReload(dir string, reloadFn func(dir string) error) {
	l.logger.Info().Str("dir", dir).Msg("Reloading policy pack")

	if err := reloadFn(dir); err != nil {
		l.logger.Error().Err(err).Str("dir", dir).Msg("Failed to reload policy pack; keeping previous version")
		return
	}

	l.logger.Info().Str("dir", dir).Msg("Policy pack reloaded")
}

// StopWatching stops watching for file changes.
func (l *Loader) StopWatching() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		err := l.watcher.Close()
		l.watcher = nil
		return err
	}
	return nil
}
