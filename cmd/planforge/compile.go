package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/planforge/planforge/internal/core/domain"
	"github.com/planforge/planforge/internal/core/planner"
)

// =============================================================================
// One-Shot Compilation
// =============================================================================

// compileInput is the YAML document accepted by the -compile flag: the rollout
// request plus the ancestry of the running execution, if any.
type compileInput struct {
	Request       *domain.RolloutRequest `yaml:"request"`
	Ancestry      []domain.ActionRecord  `yaml:"ancestry"`
	ParentStageID string                 `yaml:"parent_stage_id"`
}

// compileOutput is printed as JSON on success.
type compileOutput struct {
	Plan              domain.Plan               `json:"plan"`
	SourceServerGroup *domain.ServerGroup       `json:"sourceServerGroup,omitempty"`
	Directive         planner.CapacityDirective `json:"directive"`
}

// runCompile compiles a single rollout request from a YAML file and prints the
// resulting plan to out. The plan archive is not touched.
func runCompile(cfg *Config, logger *slog.Logger, path string, out io.Writer) int {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Error("failed to read request file", "path", path, "error", err)
		return ExitCompileError
	}

	var in compileInput
	if err := yaml.Unmarshal(raw, &in); err != nil {
		logger.Error("failed to parse request file", "path", path, "error", err)
		return ExitCompileError
	}
	if in.Request == nil {
		logger.Error("request file has no request document", "path", path)
		return ExitCompileError
	}

	p := planner.NewPlanner(
		cfg.Planner.Stages.Registry(),
		planner.Capabilities{ValidationPipelines: cfg.Planner.ValidationPipelines},
		logger,
	)

	normalized, err := p.Normalize(in.Request)
	if err != nil {
		logger.Error("failed to normalize request", "error", err)
		return ExitCompileError
	}

	source, err := p.ResolveSource(in.Ancestry)
	if err != nil {
		logger.Error("failed to resolve source group", "error", err)
		return ExitCompileError
	}

	result := compileOutput{
		Plan:              p.ForwardPlan(normalized, source, in.ParentStageID),
		SourceServerGroup: source,
		Directive:         p.PrepareCapacity(normalized),
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Error("failed to encode plan", "error", err)
		return ExitCompileError
	}

	return ExitSuccess
}
