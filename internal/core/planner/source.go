package planner

import (
	"fmt"

	"github.com/planforge/planforge/internal/core/domain"
)

// =============================================================================
// Source Resolver
// =============================================================================

// FindAncestor returns the first ancestry record matching the predicate, or
// nil when none matches. Ancestry is ordered nearest-first; the search is
// pure and never mutates the records.
func FindAncestor(ancestry []domain.ActionRecord, match func(domain.ActionRecord) bool) *domain.ActionRecord {
	for i := range ancestry {
		if match(ancestry[i]) {
			return &ancestry[i]
		}
	}
	return nil
}

// ResolveSource inspects the deployment's ancestry for the nearest create or
// clone server group action and extracts the source group it reported.
//
// A nil result with a nil error is the common "initial deployment, nothing to
// replace" case: either no create/clone ancestor exists, or the ancestor
// reported no source identity. It is not an error; the forward plan proceeds
// in degraded mode.
//
// Returns domain.ErrAncestryLookup only when the matched ancestor's source
// record is structurally malformed, which should never happen when a
// create/clone stage preceded this one.
func (p *Planner) ResolveSource(ancestry []domain.ActionRecord) (*domain.ServerGroup, error) {
	rec := FindAncestor(ancestry, domain.ActionRecord.IsServerGroupProvisioner)
	if rec == nil {
		p.logger.Info("no create/clone ancestor found, planning without a source server group")
		return nil, nil
	}

	raw, ok := rec.Outputs["source"]
	if !ok || raw == nil {
		p.logger.Info("ancestor reported no source server group, planning without one",
			"ancestor_id", rec.ID,
			"ancestor_kind", rec.Kind,
		)
		return nil, nil
	}

	fields, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: ancestor %s reported a non-record source", domain.ErrAncestryLookup, rec.ID)
	}

	group := domain.ServerGroup{
		Region:        stringField(fields, "region"),
		Name:          stringField(fields, "serverGroupName"),
		Account:       stringField(fields, "account"),
		CloudProvider: stringField(fields, "cloudProvider"),
	}
	if group.Region == "" || group.Name == "" || group.Account == "" {
		return nil, fmt.Errorf("%w: ancestor %s reported an incomplete source (region=%q name=%q account=%q)",
			domain.ErrAncestryLookup, rec.ID, group.Region, group.Name, group.Account)
	}

	return &group, nil
}

// stringField reads a string value out of an outputs map, tolerating absent
// or non-string entries.
func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
