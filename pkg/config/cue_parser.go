package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"github.com/go-playground/validator/v10"
)

// Parser reads CUE configuration files and unifies them with the schema.
type Parser struct {
	ctx       *cue.Context
	schema    cue.Value
	validator *validator.Validate
}

// NewParser creates a parser with the embedded schema compiled.
func NewParser() (*Parser, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(configSchema, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile config schema: %w", err)
	}

	return &Parser{
		ctx:       ctx,
		schema:    schema.LookupPath(cue.ParsePath("#Config")),
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// Load reads and unifies the given files or CUE package directories. With
// no sources it returns the defaults.
func Load(sources ...string) (*Config, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	return p.Parse(sources...)
}

// Default returns the configuration with every default applied.
func Default() *Config {
	cfg, err := Load()
	if err != nil {
		// The embedded schema is static; failing here is a programming error.
		panic(err)
	}
	return cfg
}

// Parse reads the sources in order and unifies them. Conflicting values
// across sources are errors, not overrides.
func (p *Parser) Parse(sources ...string) (*Config, error) {
	value := p.schema
	var errs []ValidationError
	var files []string

	for _, source := range sources {
		info, err := os.Stat(source)
		if err != nil {
			return nil, fmt.Errorf("failed to stat config source %s: %w", source, err)
		}

		var val cue.Value
		var loaded []string
		var loadErrs []ValidationError
		if info.IsDir() {
			val, loaded, loadErrs = p.loadDirectory(source)
		} else {
			val, loadErrs = p.loadFile(source)
			loaded = []string{source}
		}
		errs = append(errs, loadErrs...)
		files = append(files, loaded...)
		if len(loadErrs) == 0 {
			value = value.Unify(val)
		}
	}

	if len(errs) > 0 {
		return nil, &Error{Errors: errs}
	}

	return p.decode(value, files)
}

// ParseInline parses configuration from a string.
func (p *Parser) ParseInline(content string) (*Config, error) {
	val := p.ctx.CompileString(content, cue.Filename("inline.cue"))
	if err := val.Err(); err != nil {
		return nil, &Error{Errors: convertCUEErrors(err)}
	}
	return p.decode(p.schema.Unify(val), []string{"inline"})
}

func (p *Parser) decode(value cue.Value, files []string) (*Config, error) {
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, &Error{Errors: convertCUEErrors(err)}
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return nil, &Error{Errors: convertCUEErrors(err)}
	}
	cfg.SourceFiles = files

	if err := p.validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate applies the struct tags and the checks CUE cannot express.
func (p *Parser) validate(cfg *Config) error {
	var errs []ValidationError

	if err := p.validator.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, ValidationError{
					Path:    fe.Namespace(),
					Message: fmt.Sprintf("failed on the %q rule", fe.Tag()),
				})
			}
		} else {
			errs = append(errs, ValidationError{Message: err.Error()})
		}
	}

	durations := map[string]string{
		"server.shutdownTimeout": cfg.Server.ShutdownTimeout,
		"policy.evalTimeout":     cfg.Policy.EvalTimeout,
	}
	for _, path := range []string{"server.shutdownTimeout", "policy.evalTimeout"} {
		d, err := time.ParseDuration(durations[path])
		if err != nil {
			errs = append(errs, ValidationError{Path: path, Message: err.Error()})
		} else if d <= 0 {
			errs = append(errs, ValidationError{Path: path, Message: "must be positive"})
		}
	}

	if len(errs) > 0 {
		return &Error{Errors: errs}
	}
	return nil
}

// loadDirectory loads a directory as a CUE package.
func (p *Parser) loadDirectory(dir string) (cue.Value, []string, []ValidationError) {
	instances := load.Instances([]string{dir}, nil)
	if len(instances) == 0 {
		return cue.Value{}, nil, []ValidationError{{File: dir, Message: "no CUE files found"}}
	}

	inst := instances[0]
	if inst.Err != nil {
		return cue.Value{}, nil, convertCUEErrors(inst.Err)
	}

	val := p.ctx.BuildInstance(inst)
	if err := val.Err(); err != nil {
		return cue.Value{}, nil, convertCUEErrors(err)
	}

	var files []string
	for _, file := range inst.Files {
		if file.Filename != "" {
			files = append(files, file.Filename)
		}
	}

	return val, files, nil
}

// loadFile loads a single CUE file.
func (p *Parser) loadFile(path string) (cue.Value, []ValidationError) {
	content, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, []ValidationError{{File: path, Message: fmt.Sprintf("failed to read file: %v", err)}}
	}

	val := p.ctx.CompileBytes(content, cue.Filename(path))
	if err := val.Err(); err != nil {
		return cue.Value{}, convertCUEErrors(err)
	}

	return val, nil
}

// convertCUEErrors flattens a CUE error list with positions.
func convertCUEErrors(err error) []ValidationError {
	var out []ValidationError

	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		ve := ValidationError{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		}
		if pos := cueerrors.Positions(e); len(pos) > 0 {
			ve.File = pos[0].Filename()
			ve.Line = pos[0].Line()
			ve.Column = pos[0].Column()
		}
		out = append(out, ve)
	}

	if len(out) == 0 {
		out = append(out, ValidationError{Message: err.Error()})
	}
	return out
}
