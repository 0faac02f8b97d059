// Package planner compiles rolling red/black deployment requests into stage
// plans.
//
// This package contains the functional core of plan generation. All planning
// is pure: each entry point is a deterministic function of its inputs plus a
// materialized ancestry snapshot, producing an ordered list of stage specs
// with no I/O. Execution, retries, and infrastructure calls belong to the
// execution engine that runs the emitted stages.
//
// # Entry points
//
//   - Normalize: parse raw request fields into a DeploymentRequest
//   - ResolveSource: find the source server group in the deployment's ancestry
//   - PrepareCapacity: zero-capacity provisioning directive with saved capacity
//   - ForwardPlan: the rollout plan (determine, pin, resize/disable per
//     percentage, scale-down or unpin)
//   - CompensationPlan: the corrective plan run when the forward plan fails
//
// The three planners are independent: the execution engine invokes them at
// different lifecycle moments (before provisioning, after provisioning, on
// failure), and none of them share state across invocations.
package planner
