package domain

import "fmt"

// =============================================================================
// Deferred Expressions
// =============================================================================

// Expression is a deferred runtime reference, resolved by the execution
// engine when the plan runs. It is a distinct type from string so a deferred
// reference cannot be accidentally treated as an already-resolved value at
// planning time. The template syntax is opaque to the planner.
type Expression string

// String returns the raw template text.
func (e Expression) String() string {
	return string(e)
}

// StageOutput builds a deferred reference to a named output of another stage,
// identified by stage ID.
func StageOutput(stageID, key string) Expression {
	return Expression(fmt.Sprintf("${#stage('%s')['outputs']['%s']}", stageID, key))
}

// DeployedServerGroupName builds a deferred reference to the name of the
// server group resolved by the determine-target stage. The concrete group
// only exists once provisioning has run, so the name cannot be known while
// planning.
func DeployedServerGroupName(determineStageID string) Expression {
	return StageOutput(determineStageID, "serverGroupName")
}
