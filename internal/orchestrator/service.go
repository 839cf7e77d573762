// Package orchestrator wires providers, agents, and task history into the
// orchestration service: the single entry point for executing tasks and
// multi-step chains.
//
// The service owns no hidden state. Registries, config, clock, and logger are
// injected at construction, so tests run against fresh instances with fake
// clocks and stub providers.
//
// IMPORTANT: This package may import internal/provider, internal/agent,
// internal/config, internal/domain, internal/constants, internal/errors, and
// internal/clock. It MUST NOT import internal/cli.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/conductor/internal/agent"
	"github.com/mrz1836/conductor/internal/clock"
	"github.com/mrz1836/conductor/internal/config"
	"github.com/mrz1836/conductor/internal/constants"
	"github.com/mrz1836/conductor/internal/domain"
	conductorerrors "github.com/mrz1836/conductor/internal/errors"
	"github.com/mrz1836/conductor/internal/provider"
)

// chainContextKey is the metadata key carrying chain correlation data on
// each step's task.
const chainContextKey = "_chain_context"

// TaskRequest describes one task execution.
type TaskRequest struct {
	// AgentType selects the specialist that processes the task.
	AgentType domain.AgentType `json:"agent_type"`

	// Provider selects the LLM backend.
	Provider domain.ProviderType `json:"provider"`

	// APIKey is the backend credential. Empty falls back to the provider's
	// environment variable. Never logged.
	APIKey string `json:"-"`

	// Model overrides the provider's default model when non-empty.
	Model string `json:"model,omitempty"`

	// InputData is the agent-specific payload.
	InputData map[string]any `json:"input_data"`

	// UserID is an opaque owner reference carried on the task.
	UserID string `json:"-"`
}

// ChainStep is one step of a multi-step chain. Each step is an independent
// task execution; UsePreviousOutput threads the prior step's output into this
// step's input under "previous_output".
type ChainStep struct {
	// AgentType selects the specialist for this step.
	AgentType domain.AgentType `json:"agent_type" yaml:"agent_type"`

	// Provider selects the LLM backend. Empty uses the chain default.
	Provider domain.ProviderType `json:"provider,omitempty" yaml:"provider,omitempty"`

	// Model overrides the provider's default model when non-empty.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// InputData is the agent-specific payload for this step.
	InputData map[string]any `json:"input_data" yaml:"input_data"`

	// UsePreviousOutput injects the prior step's output into this step's
	// input under "previous_output".
	UsePreviousOutput bool `json:"use_previous_output,omitempty" yaml:"use_previous_output,omitempty"`
}

// ChainRequest describes a multi-step chain execution.
type ChainRequest struct {
	// Steps are executed in order; a failed step aborts the remainder.
	Steps []ChainStep `json:"steps" yaml:"steps"`

	// Provider is the default backend for steps that do not name one.
	Provider domain.ProviderType `json:"provider,omitempty" yaml:"provider,omitempty"`

	// APIKey is the backend credential shared by all steps. Never logged.
	APIKey string `json:"-" yaml:"-"`

	// UserID is an opaque owner reference carried on each step's task.
	UserID string `json:"-" yaml:"-"`
}

// Service coordinates task execution across providers and agents.
// All dependencies are injected; the service itself is safe for concurrent use.
type Service struct {
	providers *provider.Registry
	agents    *agent.Registry
	cfg       *config.Config
	history   *History
	clk       clock.Clock
	logger    zerolog.Logger
}

// Options configures optional service dependencies.
type Options struct {
	// Clock supplies timestamps. Nil uses the real system clock.
	Clock clock.Clock

	// Logger is the component logger.
	Logger zerolog.Logger
}

// NewService constructs the orchestration service. The provider and agent
// registries and the config are required; history is sized from the config.
func NewService(providers *provider.Registry, agents *agent.Registry, cfg *config.Config, opts Options) (*Service, error) {
	if cfg == nil {
		return nil, conductorerrors.ErrConfigNil
	}
	history, err := NewHistory(cfg.History.MaxEntries)
	if err != nil {
		return nil, err
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Service{
		providers: providers,
		agents:    agents,
		cfg:       cfg,
		history:   history,
		clk:       clk,
		logger:    opts.Logger,
	}, nil
}

// ExecuteTask runs one task end to end and records it in history.
//
// The returned task is always terminal: resolution failures (unknown agent or
// provider, missing credential) surface as a failed task whose error
// enumerates the valid alternatives, and a context already cancelled before
// execution begins yields a cancelled task. ExecuteTask itself never returns
// an error; the task carries the outcome.
func (s *Service) ExecuteTask(ctx context.Context, req TaskRequest) *domain.AgentTask {
	task := domain.NewAgentTask(uuid.NewString(), req.AgentType, req.InputData, req.UserID, s.clk.Now())

	s.logger.Info().
		Str("task_id", task.ID).
		Str("agent", req.AgentType.String()).
		Str("provider", req.Provider.String()).
		Msg("executing task")

	if ctx.Err() != nil {
		task.MarkCancelled(s.clk.Now())
		s.history.Store(task)
		return task
	}

	agentFactory, err := s.agents.Resolve(req.AgentType)
	if err != nil {
		task.MarkFailed(fmt.Sprintf("unknown agent type %q (available: %s)",
			req.AgentType, joinAgentTypes(s.agents.Types())), s.clk.Now())
		s.history.Store(task)
		return task
	}

	providerFactory, err := s.providers.Resolve(req.Provider)
	if err != nil {
		task.MarkFailed(fmt.Sprintf("unknown provider %q (available: %s)",
			req.Provider, joinProviderTypes(s.providers.Types())), s.clk.Now())
		s.history.Store(task)
		return task
	}

	apiKey, err := s.resolveAPIKey(req.Provider, req.APIKey)
	if err != nil {
		task.MarkFailed(err.Error(), s.clk.Now())
		s.history.Store(task)
		return task
	}

	p := providerFactory(s.providerOptions(req.Provider, apiKey, req.Model))
	a := agentFactory(p, s.agentOptions(req.AgentType, req.Model))

	task = a.Execute(ctx, task)
	s.history.Store(task)

	s.logger.Info().
		Str("task_id", task.ID).
		Str("status", task.Status.String()).
		Msg("task finished")
	return task
}

// ExecuteChain runs a sequence of steps as one correlated chain.
//
// An empty chain returns ErrInvalidChain; everything else goes through
// ExecuteTask, so a step with an unknown agent type or provider becomes a
// failed task rather than an error. Each step's task is tagged with the
// shared chain id; a step that does not complete aborts the chain, and the
// returned slice holds exactly the tasks that ran.
func (s *Service) ExecuteChain(ctx context.Context, req ChainRequest) ([]*domain.AgentTask, error) {
	if len(req.Steps) == 0 {
		return nil, fmt.Errorf("%w: chain has no steps", conductorerrors.ErrInvalidChain)
	}

	chainID := uuid.NewString()
	s.logger.Info().
		Str("chain_id", chainID).
		Int("steps", len(req.Steps)).
		Msg("executing chain")

	tasks := make([]*domain.AgentTask, 0, len(req.Steps))
	var previous *domain.AgentTask

	for i, step := range req.Steps {
		input := make(map[string]any, len(step.InputData)+1)
		for k, v := range step.InputData {
			input[k] = v
		}
		// The previous step's whole result map is threaded through; agents
		// render it into a bounded prompt excerpt themselves.
		if step.UsePreviousOutput && previous != nil {
			input["previous_output"] = previous.Result
		}

		ptype := step.Provider
		if ptype == "" {
			ptype = req.Provider
		}

		task := s.ExecuteTask(ctx, TaskRequest{
			AgentType: step.AgentType,
			Provider:  ptype,
			APIKey:    req.APIKey,
			Model:     step.Model,
			InputData: input,
			UserID:    req.UserID,
		})
		// Chain correlation rides on metadata only, never in the agent's
		// input payload.
		task.Metadata[chainContextKey] = map[string]any{
			"chain_id":    chainID,
			"step_index":  i,
			"total_steps": len(req.Steps),
		}
		tasks = append(tasks, task)

		if task.Status != constants.TaskStatusCompleted {
			s.logger.Warn().
				Str("chain_id", chainID).
				Str("task_id", task.ID).
				Int("step_index", i).
				Str("status", task.Status.String()).
				Msg("chain aborted")
			break
		}
		previous = task
	}

	return tasks, nil
}

// GetTask retrieves a task from history by id.
func (s *Service) GetTask(id string) (*domain.AgentTask, error) {
	return s.history.Get(id)
}

// TaskHistory lists up to limit recent tasks, newest first, optionally
// filtered by agent type.
func (s *Service) TaskHistory(limit int, agentType domain.AgentType) []*domain.AgentTask {
	return s.history.List(limit, agentType)
}

// AvailableAgents returns the registered agent types in sorted order.
func (s *Service) AvailableAgents() []domain.AgentType {
	return s.agents.Types()
}

// AvailableProviders returns the registered provider types in sorted order.
func (s *Service) AvailableProviders() []domain.ProviderType {
	return s.providers.Types()
}

// AgentCapabilities builds the introspection payload for one agent type,
// instantiated against the given provider without any credential. The
// payload is static metadata; no network call is made.
func (s *Service) AgentCapabilities(atype domain.AgentType, ptype domain.ProviderType) (map[string]any, error) {
	agentFactory, err := s.agents.Resolve(atype)
	if err != nil {
		return nil, err
	}
	providerFactory, err := s.providers.Resolve(ptype)
	if err != nil {
		return nil, err
	}
	p := providerFactory(s.providerOptions(ptype, "", ""))
	return agentFactory(p, s.agentOptions(atype, "")).Capabilities(), nil
}

// Status summarizes the service for health/introspection surfaces.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"agents":           joinAgentTypes(s.agents.Types()),
		"providers":        joinProviderTypes(s.providers.Types()),
		"history_entries":  s.history.Len(),
		"history_capacity": s.cfg.History.MaxEntries,
	}
}

// resolveAPIKey returns the effective credential for a provider: the
// caller-supplied key, else the environment variable from config or the
// provider's default. The key never appears in the returned error.
func (s *Service) resolveAPIKey(ptype domain.ProviderType, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	envVar := s.providerConfig(ptype).APIKeyEnvVar
	if envVar == "" {
		envVar = ptype.APIKeyEnvVar()
	}
	if key := os.Getenv(envVar); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("%w: provider %s (set %s)", conductorerrors.ErrMissingAPIKey, ptype, envVar)
}

// providerOptions builds per-call provider options from config.
func (s *Service) providerOptions(ptype domain.ProviderType, apiKey, model string) provider.Options {
	pc := s.providerConfig(ptype)
	if model == "" {
		model = pc.DefaultModel
	}
	return provider.Options{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: pc.BaseURL,
		Timeout: pc.Timeout,
		Logger:  s.logger.With().Str("provider", ptype.String()).Logger(),
	}
}

// agentOptions builds per-call agent options from config.
func (s *Service) agentOptions(atype domain.AgentType, model string) agent.Options {
	ac := s.agentConfig(atype)
	return agent.Options{
		Model:       model,
		MaxTokens:   ac.MaxTokens,
		Temperature: ac.Temperature,
		Clock:       s.clk,
		Logger:      s.logger.With().Str("agent", atype.String()).Logger(),
	}
}

// providerConfig returns the config section for a provider type.
func (s *Service) providerConfig(ptype domain.ProviderType) config.ProviderConfig {
	switch ptype {
	case domain.ProviderOpenAI:
		return s.cfg.Providers.OpenAI
	case domain.ProviderAnthropic:
		return s.cfg.Providers.Anthropic
	default:
		return config.ProviderConfig{}
	}
}

// agentConfig returns the config section for an agent type.
func (s *Service) agentConfig(atype domain.AgentType) config.AgentConfig {
	switch atype {
	case domain.AgentTypeResearch:
		return s.cfg.Agents.Research
	case domain.AgentTypeWriting:
		return s.cfg.Agents.Writing
	case domain.AgentTypeCoding:
		return s.cfg.Agents.Coding
	case domain.AgentTypeGeneral:
		return s.cfg.Agents.General
	default:
		return config.AgentConfig{}
	}
}

func joinAgentTypes(types []domain.AgentType) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ", ")
}

func joinProviderTypes(types []domain.ProviderType) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ", ")
}
