package repository

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gorewood/devlogs/internal/prompt"
	"github.com/gorewood/devlogs/internal/render"
)

// Init step names, reported in InitResult.
const (
	StepDir           = "storage_dir"
	StepConfig        = "config"
	StepInfo          = "info_file"
	StepLogTemplate   = "log_template"
	StepIssueDir      = "issue_dir"
	StepIssueTemplate = "issue_template"
	StepCounter       = "counter"
)

// InitOptions controls a repository initialization.
type InitOptions struct {
	// Force overwrites an existing repository.
	Force bool
	// Dir is the repository directory; empty uses DefaultDirName.
	Dir string
	// Preset answers keyed by the Field* constants. Preset fields are not prompted.
	Preset map[string]string
}

// InitStep records one completed filesystem step.
type InitStep struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "ok" or "failed"
	Path   string `json:"path"`
	Error  string `json:"error,omitempty"`
}

// InitResult describes an initialized repository.
type InitResult struct {
	Dir    string     `json:"dir"`
	Config *Config    `json:"config"`
	Steps  []InitStep `json:"steps"`
}

// TemplateSource returns the bundled default template by name.
type TemplateSource func(name string) ([]byte, error)

// Initializer creates a new repository directory from collected metadata.
type Initializer struct {
	prompter  prompt.Prompter
	templates TemplateSource
	logger    *slog.Logger
}

// NewInitializer creates an Initializer. A nil templates uses render.Builtin
// and a nil logger uses slog.Default. A nil prompter requires every field to
// be preset.
func NewInitializer(p prompt.Prompter, templates TemplateSource, logger *slog.Logger) *Initializer {
	if templates == nil {
		templates = render.Builtin
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Initializer{prompter: p, templates: templates, logger: logger}
}

// Run initializes the repository. Without Force an existing config fails with
// ErrAlreadyInitialized before anything is touched. Filesystem steps run in
// order and stop at the first failure with ErrInitializationFailed; earlier
// steps are not rolled back, and re-running with Force repairs them.
func (in *Initializer) Run(ctx context.Context, opts InitOptions) (*InitResult, error) {
	store := NewConfigStore(opts.Dir)

	if fileExists(store.ConfigPath()) && !opts.Force {
		return nil, fmt.Errorf("%w at %s", ErrAlreadyInitialized, store.Dir())
	}

	values, err := Collect(ctx, in.prompter, InitFields(), opts.Preset)
	if err != nil {
		return nil, err
	}
	cfg := configFromValues(values)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	// A forced re-init keeps an existing counter so issue numbers are never reused.
	counter := NewCounterDocument()
	if opts.Force {
		if existing, readErr := store.ReadCounter(); readErr == nil {
			counter = existing
		}
	}

	result := &InitResult{Dir: store.Dir(), Config: cfg}
	steps := []struct {
		name string
		path string
		run  func() error
	}{
		{StepDir, store.Dir(), func() error { return os.MkdirAll(store.Dir(), 0o755) }},
		{StepConfig, store.ConfigPath(), func() error { return store.WriteConfig(cfg) }},
		{StepInfo, store.InfoPath(cfg.Name), func() error { return writeInfoFile(store.InfoPath(cfg.Name), cfg) }},
		{StepLogTemplate, store.LogTemplatePath(), func() error {
			return in.copyTemplate(render.LogTemplate, store.LogTemplatePath())
		}},
		{StepIssueDir, store.IssueDir(), func() error { return os.MkdirAll(store.IssueDir(), 0o755) }},
		{StepIssueTemplate, store.IssueTemplatePath(), func() error {
			return in.copyTemplate(render.IssueTemplate, store.IssueTemplatePath())
		}},
		{StepCounter, store.CounterPath(), func() error { return store.WriteCounter(counter) }},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			result.Steps = append(result.Steps, InitStep{Name: step.name, Status: "failed", Path: step.path, Error: err.Error()})
			in.logger.Debug("init step failed", "step", step.name, "path", step.path, "error", err)
			return result, fmt.Errorf("%w: %s: %w", ErrInitializationFailed, step.name, err)
		}
		result.Steps = append(result.Steps, InitStep{Name: step.name, Status: "ok", Path: step.path})
		in.logger.Debug("init step complete", "step", step.name, "path", step.path)
	}

	return result, nil
}

// copyTemplate writes the bundled template name to dest, replacing any existing file.
func (in *Initializer) copyTemplate(name, dest string) error {
	data, err := in.templates(name)
	if err != nil {
		return err
	}
	if err := atomicWrite(dest, data); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

// writeInfoFile writes the human-readable project description.
func writeInfoFile(path string, cfg *Config) error {
	content := "# " + cfg.Name + "\n" + cfg.Description + "\n"
	if err := atomicWrite(path, []byte(content)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// IsInitialized reports whether dir holds a repository config.
func IsInitialized(dir string) bool {
	return fileExists(NewConfigStore(dir).ConfigPath())
}
