package lootbox

import (
	"context"
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/osse101/casevault/internal/domain"
)

// SimulationTier compares the disclosed and observed share of one tier
type SimulationTier struct {
	Tier     string  `json:"tier"`
	Expected float64 `json:"expected"`
	Count    int     `json:"count"`
	Observed float64 `json:"observed"`
}

// SimulationReport summarizes repeated unlocks of one container
type SimulationReport struct {
	ContainerID  int              `json:"containerId"`
	Opens        int              `json:"opens"`
	Tiers        []SimulationTier `json:"tiers"`
	Items        map[int]int      `json:"items"`
	StatTrak     int              `json:"stattrak"`
	MeanWear     float64          `json:"meanWear"`
	MaxDeviation float64          `json:"maxDeviation"`
}

// Simulate opens containerID opens times through svc and tallies the drawn
// tiers against the container's disclosed odds.
func Simulate(ctx context.Context, svc Service, containerID, opens int) (*SimulationReport, error) {
	if opens <= 0 {
		return nil, fmt.Errorf(ErrFmtSimulationOpens, domain.ErrInvalidInput, opens)
	}

	buckets, err := svc.Contents(containerID)
	if err != nil {
		return nil, err
	}

	tierOf := make(map[int]domain.RarityTier)
	index := make(map[domain.RarityTier]int, len(buckets))
	report := &SimulationReport{
		ContainerID: containerID,
		Opens:       opens,
		Items:       make(map[int]int),
		Tiers: lo.Map(buckets, func(b TierBucket, i int) SimulationTier {
			index[b.Tier] = i
			if b.Tier != domain.TierSpecial {
				for _, item := range b.Items {
					tierOf[item.ID] = b.Tier
				}
			}
			return SimulationTier{Tier: b.Tier.String(), Expected: b.Probability}
		}),
	}

	var wearSum float64
	var wearCount int
	for i := 0; i < opens; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := svc.Unlock(ctx, containerID)
		if err != nil {
			return nil, err
		}

		tier := tierOf[res.ItemID]
		if res.Special {
			tier = domain.TierSpecial
		}
		report.Tiers[index[tier]].Count++
		report.Items[res.ItemID]++

		if res.Attributes.StatTrak != nil {
			report.StatTrak++
		}
		if res.Attributes.Wear != nil {
			wearSum += *res.Attributes.Wear
			wearCount++
		}
	}

	for i := range report.Tiers {
		t := &report.Tiers[i]
		t.Observed = float64(t.Count) / float64(opens)
		report.MaxDeviation = math.Max(report.MaxDeviation, math.Abs(t.Observed-t.Expected))
	}
	if wearCount > 0 {
		report.MeanWear = wearSum / float64(wearCount)
	}
	return report, nil
}
