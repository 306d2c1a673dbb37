package policy

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/openfroyo/froyo-analyzer/pkg/analyzer"
	"github.com/openfroyo/froyo-analyzer/pkg/telemetry"
)

const (
	defaultEvalTimeout = 5 * time.Second
	defaultMaxSteps    = 10_000_000
	defaultParallelism = 4
)

// EngineConfig configures an Engine. The zero value serves the built-in pack
// under the name "froyo-analyzer".
type EngineConfig struct {
	// Name, DisplayName and Version identify the analyzer in GetAnalyzerInfo.
	Name        string
	DisplayName string
	Version     string

	// EvalTimeout bounds a single Starlark policy call.
	EvalTimeout time.Duration

	// MaxSteps bounds the Starlark instructions of one call.
	MaxSteps uint64

	// Parallelism is the number of policies of one call evaluated at once.
	Parallelism int

	// DisableBuiltin skips the built-in pack.
	DisableBuiltin bool

	// Overrides are keyed by policy name.
	Overrides map[string]Override

	Metrics *telemetry.Metrics
	Tracer  *telemetry.Tracer
	Events  *telemetry.EventPublisher
}

// evaluator runs one compiled policy and returns its raw deny entries.
type evaluator interface {
	Eval(ctx context.Context, input interface{}) ([]interface{}, error)
}

type compiledPolicy struct {
	policy   *Policy
	eval     evaluator
	compiled time.Time
}

type loadedPack struct {
	pack     *Pack
	policies []*compiledPolicy
}

// Engine evaluates resources against loaded policy packs. It implements
// analyzer.Evaluator.
type Engine struct {
	mu        sync.RWMutex
	packs     []*loadedPack
	overrides map[string]Override
	logger    zerolog.Logger
	config    EngineConfig
	loader    *Loader
}

var _ analyzer.Evaluator = (*Engine)(nil)

// NewEngine creates a policy engine with the built-in pack loaded unless
// disabled.
func NewEngine(logger zerolog.Logger, cfg EngineConfig) (*Engine, error) {
	if cfg.Name == "" {
		cfg.Name = "froyo-analyzer"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.EvalTimeout <= 0 {
		cfg.EvalTimeout = defaultEvalTimeout
	}
	if cfg.MaxSteps == 0 {
		cfg.MaxSteps = defaultMaxSteps
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = defaultParallelism
	}

	e := &Engine{
		overrides: make(map[string]Override),
		logger:    logger.With().Str("component", "policy-engine").Logger(),
		config:    cfg,
	}
	e.loader = NewLoader(logger)

	for name, o := range cfg.Overrides {
		e.overrides[name] = o
	}

	if !cfg.DisableBuiltin {
		if err := e.AddPack(context.Background(), BuiltinPack()); err != nil {
			return nil, fmt.Errorf("failed to load built-in policies: %w", err)
		}
	}

	return e, nil
}

// LoadPack loads a pack directory. A pack with the same directory or name
// is replaced in place; otherwise the pack is appended.
func (e *Engine) LoadPack(ctx context.Context, dir string) (*Pack, error) {
	pack, err := e.loader.LoadPack(dir)
	if err != nil {
		return nil, err
	}
	if err := e.AddPack(ctx, pack); err != nil {
		return nil, err
	}
	return pack, nil
}

// ValidatePack loads and compiles a pack directory without installing it.
func (e *Engine) ValidatePack(ctx context.Context, dir string) (*Pack, error) {
	pack, err := e.loader.LoadPack(dir)
	if err != nil {
		return nil, err
	}
	if _, err := e.compilePack(ctx, pack); err != nil {
		return nil, err
	}
	return pack, nil
}

// AddPack compiles and installs a pack. Every policy must compile and policy
// names must be unique across packs; on failure the engine is unchanged.
func (e *Engine) AddPack(ctx context.Context, pack *Pack) error {
	lp, err := e.compilePack(ctx, pack)
	if err != nil {
		return err
	}

	replaced, err := e.install(lp)
	if err != nil {
		return err
	}

	e.config.Metrics.SetPoliciesLoaded(pack.Name, len(lp.policies))
	if err := e.config.Events.PublishPackLoaded(pack.Name, pack.Version, len(lp.policies)); err != nil {
		e.logger.Debug().Err(err).Msg("Dropped pack event")
	}

	e.logger.Info().
		Str("pack", pack.Name).
		Str("version", pack.Version).
		Int("policies", len(lp.policies)).
		Bool("replaced", replaced).
		Msg("Policy pack loaded")

	return nil
}

// install swaps lp in for a pack with the same directory or name, or
// appends it.
func (e *Engine) install(lp *loadedPack) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pack := lp.pack
	replace := -1
	for i, existing := range e.packs {
		if (pack.Dir != "" && existing.pack.Dir == pack.Dir) || existing.pack.Name == pack.Name {
			replace = i
			break
		}
	}

	for i, existing := range e.packs {
		if i == replace {
			continue
		}
		if existing.pack.Name == pack.Name {
			return false, fmt.Errorf("policy pack %s is already loaded from %s", pack.Name, existing.pack.Dir)
		}
		for _, cp := range existing.policies {
			for _, p := range lp.policies {
				if cp.policy.Name == p.policy.Name {
					return false, fmt.Errorf("policy %s of pack %s is already defined by pack %s", p.policy.Name, pack.Name, existing.pack.Name)
				}
			}
		}
	}

	if replace >= 0 {
		e.packs[replace] = lp
		return true, nil
	}
	e.packs = append(e.packs, lp)
	return false, nil
}

// compilePack compiles every policy of a pack, filling in defaults.
func (e *Engine) compilePack(ctx context.Context, pack *Pack) (*loadedPack, error) {
	if pack.Name == "" {
		return nil, fmt.Errorf("policy pack has no name")
	}

	lp := &loadedPack{pack: pack}
	seen := make(map[string]bool, len(pack.Policies))

	for i := range pack.Policies {
		p := &pack.Policies[i]
		if p.Name == "" {
			return nil, fmt.Errorf("policy pack %s: policy %d has no name", pack.Name, i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("policy pack %s: duplicate policy %s", pack.Name, p.Name)
		}
		seen[p.Name] = true

		if p.EnforcementLevel == "" {
			p.EnforcementLevel = pack.EnforcementLevel
		}
		if p.EnforcementLevel == "" {
			p.EnforcementLevel = analyzer.EnforcementAdvisory
		}

		cp, err := e.compilePolicy(ctx, pack, p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile policy %s of pack %s: %w", p.Name, pack.Name, err)
		}
		lp.policies = append(lp.policies, cp)

		e.logger.Debug().
			Str("pack", pack.Name).
			Str("policy", p.Name).
			Str("language", string(p.Language)).
			Str("kind", string(p.Kind)).
			Msg("Policy compiled successfully")
	}

	return lp, nil
}

func (e *Engine) compilePolicy(ctx context.Context, pack *Pack, p *Policy) (*compiledPolicy, error) {
	var ev evaluator
	switch p.Language {
	case LanguageRego:
		if p.Kind == "" {
			p.Kind = KindResource
		}
		re, err := compileRego(ctx, pack, p)
		if err != nil {
			return nil, err
		}
		ev = re
	case LanguageStarlark:
		se, err := compileStarlark(p, e.config.EvalTimeout, e.config.MaxSteps, e.logger)
		if err != nil {
			return nil, err
		}
		p.Kind = se.kind
		ev = se
	default:
		return nil, fmt.Errorf("unsupported policy language %q", p.Language)
	}

	if p.Kind != KindResource && p.Kind != KindStack {
		return nil, fmt.Errorf("unsupported policy kind %q", p.Kind)
	}

	return &compiledPolicy{policy: p, eval: ev, compiled: time.Now()}, nil
}

// Analyze evaluates every enabled resource policy against one resource.
// Diagnostics follow pack order, then policy order.
func (e *Engine) Analyze(ctx context.Context, resource analyzer.Resource) ([]analyzer.Diagnostic, error) {
	startTime := time.Now()

	resourceValue, err := toInput(resourceInput(resource))
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource %s: %w", resource.URN, err)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	var tasks []evalTask
	for _, lp := range e.packs {
		for _, cp := range lp.policies {
			if cp.policy.Kind != KindResource {
				continue
			}
			settings := e.effective(cp.policy)
			if !settings.enabled {
				continue
			}

			tasks = append(tasks, evalTask{
				pack:     lp.pack,
				policy:   cp,
				settings: settings,
				urn:      resource.URN,
				input: map[string]interface{}{
					"resource": resourceValue,
					"context":  evalContext(analyzer.MethodAnalyze, lp.pack, cp.policy),
					"config":   settings.config,
				},
			})
		}
	}
	diags := e.runTasks(ctx, tasks)

	e.logger.Debug().
		Str("urn", resource.URN).
		Int("diagnostics", len(diags)).
		Dur("duration", time.Since(startTime)).
		Msg("Resource policy evaluation completed")

	return diags, nil
}

// AnalyzeStack evaluates every enabled stack policy against the whole stack.
// Within a policy, diagnostics keep the order the policy reported them in.
func (e *Engine) AnalyzeStack(ctx context.Context, resources []analyzer.Resource) ([]analyzer.Diagnostic, error) {
	startTime := time.Now()

	graph, err := analyzer.NewResourceGraph(resources)
	if err != nil {
		return nil, err
	}

	safe := make([]analyzer.Resource, len(resources))
	for i := range resources {
		safe[i] = resourceInput(resources[i])
	}
	resourcesValue, err := toInput(safe)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resources: %w", err)
	}
	graphValue, err := toInput(graph.Summary())
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource graph: %w", err)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	var tasks []evalTask
	for _, lp := range e.packs {
		for _, cp := range lp.policies {
			if cp.policy.Kind != KindStack {
				continue
			}
			settings := e.effective(cp.policy)
			if !settings.enabled {
				continue
			}

			tasks = append(tasks, evalTask{
				pack:     lp.pack,
				policy:   cp,
				settings: settings,
				input: map[string]interface{}{
					"resources": resourcesValue,
					"graph":     graphValue,
					"context":   evalContext(analyzer.MethodAnalyzeStack, lp.pack, cp.policy),
					"config":    settings.config,
				},
			})
		}
	}
	diags := e.runTasks(ctx, tasks)

	e.logger.Debug().
		Int("resources", len(resources)).
		Int("dangling", len(graph.Dangling())).
		Int("diagnostics", len(diags)).
		Dur("duration", time.Since(startTime)).
		Msg("Stack policy evaluation completed")

	return diags, nil
}

// evaluate runs one policy. A failing policy yields a single diagnostic
// describing the failure at the policy's level.
func (e *Engine) evaluate(ctx context.Context, pack *Pack, cp *compiledPolicy, settings effectiveSettings, input map[string]interface{}, urn string) []analyzer.Diagnostic {
	p := cp.policy

	ctx, span := e.config.Tracer.StartPolicySpan(ctx, pack.Name, p.Name, string(p.Language))
	defer span.End()
	timer := telemetry.NewTimer()

	entries, err := cp.eval.Eval(ctx, input)
	if err != nil {
		telemetry.RecordError(span, err)
		e.config.Metrics.RecordPolicyEvaluation(p.Name, string(p.Language), "error", timer.Duration())
		e.logger.Warn().Err(err).
			Str("pack", pack.Name).
			Str("policy", p.Name).
			Str("urn", urn).
			Msg("Policy evaluation failed")

		return []analyzer.Diagnostic{newDiagnostic(pack, p, settings.level, fmt.Sprintf("policy evaluation failed: %v", err), urn)}
	}

	diags := make([]analyzer.Diagnostic, 0, len(entries))
	for _, entry := range entries {
		v := parseViolation(entry)

		level := settings.level
		if !settings.levelOverridden && v.EnforcementLevel != "" {
			level = v.EnforcementLevel
		}

		message := v.Message
		if message == "" {
			message = p.Message
		}
		if message == "" {
			message = p.Description
		}

		target := v.URN
		if target == "" {
			target = urn
		}

		diags = append(diags, newDiagnostic(pack, p, level, message, target))
	}

	result := "pass"
	if len(diags) > 0 {
		result = "deny"
	}
	telemetry.RecordSuccess(span)
	span.SetAttributes(telemetry.AttrDiagnostics.Int(len(diags)))
	e.config.Metrics.RecordPolicyEvaluation(p.Name, string(p.Language), result, timer.Duration())

	return diags
}

func newDiagnostic(pack *Pack, p *Policy, level analyzer.EnforcementLevel, message, urn string) analyzer.Diagnostic {
	var tags []string
	if len(p.Tags) > 0 {
		tags = append([]string(nil), p.Tags...)
	}
	return analyzer.Diagnostic{
		PolicyName:        p.Name,
		PolicyPackName:    pack.Name,
		PolicyPackVersion: pack.Version,
		Description:       p.Description,
		Message:           message,
		Tags:              tags,
		EnforcementLevel:  level,
		URN:               urn,
	}
}

// parseViolation reads a deny entry: a string, or an object with message,
// urn and enforcementLevel. Other values are formatted as the message.
func parseViolation(entry interface{}) violation {
	switch v := entry.(type) {
	case string:
		return violation{Message: v}
	case map[string]interface{}:
		var out violation
		if msg, ok := v["message"].(string); ok {
			out.Message = msg
		}
		if urn, ok := v["urn"].(string); ok {
			out.URN = urn
		}
		if lvl, ok := v["enforcementLevel"].(string); ok {
			if parsed, err := analyzer.ParseEnforcementLevel(lvl); err == nil && lvl != "" {
				out.EnforcementLevel = parsed
			}
		}
		return out
	default:
		return violation{Message: fmt.Sprintf("%v", entry)}
	}
}

func evalContext(method string, pack *Pack, p *Policy) map[string]interface{} {
	return map[string]interface{}{
		"method":      method,
		"pack":        pack.Name,
		"packVersion": pack.Version,
		"policy":      p.Name,
	}
}

type effectiveSettings struct {
	enabled         bool
	level           analyzer.EnforcementLevel
	levelOverridden bool
	config          map[string]interface{}
}

// effective applies the override for p. Callers hold e.mu.
func (e *Engine) effective(p *Policy) effectiveSettings {
	s := effectiveSettings{
		enabled: true,
		level:   p.EnforcementLevel,
	}

	o, ok := e.overrides[p.Name]
	if ok {
		s.enabled = !o.Disabled
		if o.EnforcementLevel != "" {
			s.level = o.EnforcementLevel
			s.levelOverridden = true
		}
	}

	cfg := make(map[string]interface{}, len(p.Config)+len(o.Config))
	for k, v := range p.Config {
		cfg[k] = v
	}
	for k, v := range o.Config {
		cfg[k] = v
	}
	normalized, err := toInput(cfg)
	if err != nil {
		e.logger.Warn().Err(err).Str("policy", p.Name).Msg("Policy config is not JSON-encodable; using empty config")
		normalized = map[string]interface{}{}
	}
	s.config = normalized.(map[string]interface{})

	return s
}

// Info returns the analyzer identity and every loaded policy, enabled or
// not, with its effective enforcement level.
func (e *Engine) Info() analyzer.AnalyzerInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()

	info := analyzer.AnalyzerInfo{
		Name:        e.config.Name,
		DisplayName: e.config.DisplayName,
		Version:     e.config.Version,
		Policies:    []analyzer.PolicyInfo{},
	}
	for _, lp := range e.packs {
		for _, cp := range lp.policies {
			info.Policies = append(info.Policies, cp.policy.Info(e.effective(cp.policy).level))
		}
	}
	return info
}

// Policies returns the status of every loaded policy in report order.
func (e *Engine) Policies() []Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []Status
	for _, lp := range e.packs {
		for _, cp := range lp.policies {
			s := e.effective(cp.policy)
			out = append(out, Status{
				Pack:             lp.pack.Name,
				PackVersion:      lp.pack.Version,
				Policy:           *cp.policy,
				Enabled:          s.enabled,
				EnforcementLevel: s.level,
				CompiledAt:       cp.compiled,
			})
		}
	}
	return out
}

// Packs returns the loaded packs in evaluation order.
func (e *Engine) Packs() []Pack {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]Pack, 0, len(e.packs))
	for _, lp := range e.packs {
		out = append(out, *lp.pack)
	}
	return out
}

// EnablePolicy clears the disabled flag of a policy.
func (e *Engine) EnablePolicy(name string) error {
	return e.updateOverride(name, func(o *Override) { o.Disabled = false })
}

// DisablePolicy stops a policy from producing diagnostics. It stays listed.
func (e *Engine) DisablePolicy(name string) error {
	return e.updateOverride(name, func(o *Override) { o.Disabled = true })
}

// SetEnforcementLevel overrides the enforcement level of a policy.
func (e *Engine) SetEnforcementLevel(name string, level analyzer.EnforcementLevel) error {
	if level != analyzer.EnforcementAdvisory && level != analyzer.EnforcementMandatory {
		return analyzer.NewInvalidError(fmt.Sprintf("unknown enforcement level %q", level), nil).WithField("enforcementLevel")
	}
	return e.updateOverride(name, func(o *Override) { o.EnforcementLevel = level })
}

// ApplyOverrides merges overrides by policy name. Names of policies that are
// not loaded are kept and take effect once such a policy appears.
func (e *Engine) ApplyOverrides(overrides map[string]Override) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for name, o := range overrides {
		e.overrides[name] = o
	}
}

func (e *Engine) updateOverride(name string, update func(*Override)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasPolicy(name) {
		return analyzer.NewNotFoundError(fmt.Sprintf("policy not found: %s", name), nil)
	}

	o := e.overrides[name]
	update(&o)
	e.overrides[name] = o

	e.logger.Info().
		Str("policy", name).
		Bool("disabled", o.Disabled).
		Str("enforcement_level", string(o.EnforcementLevel)).
		Msg("Policy override updated")

	return nil
}

func (e *Engine) hasPolicy(name string) bool {
	for _, lp := range e.packs {
		for _, cp := range lp.policies {
			if cp.policy.Name == name {
				return true
			}
		}
	}
	return false
}

// Watch reloads the given pack directories when their files change. A pack
// that fails to reload keeps serving its previous version.
func (e *Engine) Watch(ctx context.Context, dirs []string) error {
	return e.loader.Watch(ctx, dirs, func(dir string) error {
		if _, err := e.LoadPack(ctx, dir); err != nil {
			e.config.Metrics.RecordPackReload("failure")
			if pubErr := e.config.Events.PublishPackReloadFailed(dir, err.Error()); pubErr != nil {
				e.logger.Debug().Err(pubErr).Msg("Dropped pack event")
			}
			return err
		}
		e.config.Metrics.RecordPackReload("success")
		return nil
	})
}
