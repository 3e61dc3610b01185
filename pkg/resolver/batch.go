package resolver

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rocksolid/rocksolid/pkg/skill"
)

// Failure records a reference that could not be resolved.
type Failure struct {
	Ref string
	Err error
}

// BatchResult is the settled outcome of ResolveAll.
type BatchResult struct {
	// Skills holds every resolved Skill sorted by name.
	Skills []skill.Skill

	Resolved int
	NotFound int
	Failed   int
	Total    int

	// Failures lists references that were not found or failed, in input
	// order.
	Failures []Failure
}

// ResolveAll resolves every reference concurrently and waits for all of
// them. One reference failing never stops the others.
func (r *Resolver) ResolveAll(ctx context.Context, refs []string) BatchResult {
	type outcome struct {
		skill skill.Skill
		err   error
	}
	outcomes := make([]outcome, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, ref := range refs {
		g.Go(func() error {
			s, err := r.Resolve(gctx, ref)
			outcomes[i] = outcome{skill: s, err: err}
			return nil
		})
	}
	_ = g.Wait()

	result := BatchResult{
		Skills: make([]skill.Skill, 0, len(refs)),
		Total:  len(refs),
	}
	for i, o := range outcomes {
		switch {
		case o.err == nil:
			result.Resolved++
			result.Skills = append(result.Skills, o.skill)
		case skill.IsNotFound(o.err):
			result.NotFound++
			result.Failures = append(result.Failures, Failure{Ref: refs[i], Err: o.err})
		default:
			result.Failed++
			result.Failures = append(result.Failures, Failure{Ref: refs[i], Err: o.err})
			r.logger.Warn("resolving reference", zap.String("ref", refs[i]), zap.Error(o.err))
		}
	}

	sort.SliceStable(result.Skills, func(i, j int) bool {
		a, b := strings.ToLower(result.Skills[i].Name), strings.ToLower(result.Skills[j].Name)
		if a != b {
			return a < b
		}
		return result.Skills[i].ID < result.Skills[j].ID
	})

	return result
}
