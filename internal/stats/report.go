// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"

	"github.com/verte-zerg/wordmatch/internal/model"
)

// RoundLister reads stored round history.
type RoundLister interface {
	ListRounds(ctx context.Context, cfg model.StatsConfig) ([]model.RoundAggregate, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Rounds []model.RoundAggregate
	ByMode map[model.Mode]Summary
	Total  Summary
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st RoundLister, cfg model.StatsConfig) (Report, error) {
	rounds, err := st.ListRounds(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(rounds) > cfg.Last {
		rounds = rounds[len(rounds)-cfg.Last:]
	}

	byMode := map[model.Mode][]model.RoundAggregate{}
	for _, r := range rounds {
		byMode[r.Mode] = append(byMode[r.Mode], r)
	}
	summaries := make(map[model.Mode]Summary, len(byMode))
	for mode, rs := range byMode {
		summaries[mode] = Summarize(rs)
	}
	return Report{
		Rounds: rounds,
		ByMode: summaries,
		Total:  Summarize(rounds),
	}, nil
}
