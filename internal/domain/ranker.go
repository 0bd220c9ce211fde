package domain

import (
	"fmt"
	"math"
	"sort"
)

// Smart-swap thresholds. A candidate dominates the stated intent when it
// saves more than 20% of the intent's water while staying economically or
// risk comparable.
const (
	swapWaterSavingsPct  = 20.0
	swapProfitRetention  = 0.8
	swapRiskMargin       = 20.0
	riskReductionNoteMin = 10.0
	yieldLossWarningPct  = 20.0
	profitTieBreakMargin = 10.0
)

// Volume conversion constants for the impact comparison.
const (
	litersPerMMAcre    = 4046.86   // 1 mm of water over 1 acre
	litersPerPersonDay = 500.0     // rural domestic supply norm
	litersPerFarmPond  = 1000000.0 // standard 20x20x2.5 m farm pond
)

// FilterCandidates selects catalog crops viable for the farm: matching
// agro-climatic zone and soil type. When an explicit override list of crop
// ids is supplied (comparison mode) filtering is skipped and exactly those
// crops are returned in catalog order.
func FilterCandidates(catalog []CropProfile, soilType, zone string, override []string) []CropProfile {
	if len(override) > 0 {
		wanted := make(map[string]bool, len(override))
		for _, id := range override {
			wanted[id] = true
		}
		out := make([]CropProfile, 0, len(override))
		for _, c := range catalog {
			if wanted[c.ID] {
				out = append(out, c)
			}
		}
		return out
	}

	out := make([]CropProfile, 0, len(catalog))
	for _, c := range catalog {
		if !c.SupportsZone(zone) {
			continue
		}
		if !c.SupportsSoil(soilType) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// WaterSavingsPercent is how much less water the candidate needs relative to
// the intent crop. Zero intent water short-circuits to 0.
func WaterSavingsPercent(candidate, intent CropProfile) float64 {
	if intent.WaterRequirementMM <= 0 {
		return 0
	}
	return (intent.WaterRequirementMM - candidate.WaterRequirementMM) / intent.WaterRequirementMM * 100
}

// DetectSwap evaluates the smart-swap rule for a candidate against the
// farmer's intent and returns the flag plus human-readable reasons in fixed
// priority order. It is never a swap when water savings are at or below the
// threshold, regardless of profit or risk.
func DetectSwap(candidate, intent Recommendation) (bool, []string) {
	if candidate.Crop.ID == intent.Crop.ID {
		return false, nil
	}

	savings := WaterSavingsPercent(candidate.Crop, intent.Crop)
	if savings <= swapWaterSavingsPct {
		return false, nil
	}

	profitComparable := candidate.Economics.ProfitIndex >= swapProfitRetention*intent.Economics.ProfitIndex
	riskBetter := candidate.Risk.Score < intent.Risk.Score-swapRiskMargin
	if !profitComparable && !riskBetter {
		return false, nil
	}

	return true, swapReasons(candidate, intent, savings)
}

// swapReasons builds the explanation list: water savings, profit, risk
// reduction, yield-loss warning, risk mitigations, rising price, in that
// order.
func swapReasons(candidate, intent Recommendation, savings float64) []string {
	reasons := []string{
		fmt.Sprintf("Needs %.0f%% less water than %s this season.", savings, intent.Crop.Name),
	}

	switch {
	case intent.Economics.ProfitIndex <= 0 && candidate.Economics.ProfitIndex > 0:
		reasons = append(reasons,
			fmt.Sprintf("Turns a loss into profit: %s is not economical at current water levels.", intent.Crop.Name))
	case intent.Economics.ProfitIndex > 0:
		retention := candidate.Economics.ProfitIndex / intent.Economics.ProfitIndex * 100
		reasons = append(reasons,
			fmt.Sprintf("Retains %.0f%% of %s's water-normalized profit.", retention, intent.Crop.Name))
	}

	if riskDrop := intent.Risk.Score - candidate.Risk.Score; riskDrop > riskReductionNoteMin {
		reasons = append(reasons,
			fmt.Sprintf("Cuts crop risk by %.0f points (%s vs %s).", riskDrop, candidate.Risk.Level, intent.Risk.Level))
	}

	if candidate.Yield.ReductionPercent > yieldLossWarningPct {
		reasons = append(reasons,
			fmt.Sprintf("Note: water stress still trims %s yield by %.0f%%.", candidate.Crop.Name, candidate.Yield.ReductionPercent))
	}

	if candidate.Risk.Level == RiskHigh || candidate.Risk.Level == RiskExtreme {
		n := len(candidate.Risk.Recommendations)
		if n > 2 {
			n = 2
		}
		reasons = append(reasons, candidate.Risk.Recommendations[:n]...)
	}

	if candidate.PriceTrend == TrendUp {
		reasons = append(reasons, fmt.Sprintf("%s prices are trending upward in nearby markets.", candidate.Crop.Name))
	}

	return reasons
}

// CompareImpact quantifies the seasonal effect of swapping from the intent
// crop to the candidate over the whole farm. Returns nil unless the
// candidate actually saves water.
func CompareImpact(candidate, intent Recommendation, acres float64) *ImpactComparison {
	deltaMM := intent.Crop.WaterRequirementMM - candidate.Crop.WaterRequirementMM
	if deltaMM <= 0 || acres <= 0 {
		return nil
	}

	liters := deltaMM * litersPerMMAcre * acres
	return &ImpactComparison{
		WaterSavedMM:      deltaMM,
		LitersSaved:       liters,
		DrinkingWaterDays: liters / litersPerPersonDay,
		PondEquivalents:   liters / litersPerFarmPond,
		ProfitIndexDelta:  candidate.Economics.ProfitIndex - intent.Economics.ProfitIndex,
		RiskScoreDelta:    candidate.Risk.Score - intent.Risk.Score,
	}
}

// RankOptions tunes the final ordering pass.
type RankOptions struct {
	// PromoteChampion forces the top result to carry a swap explanation
	// whenever it differs from the intent crop. UX policy, separable from
	// the core ordering.
	PromoteChampion bool
}

// Rank orders scored recommendations in place and returns them: smart swaps
// first, then profit index descending when the gap exceeds the tie margin,
// otherwise risk score ascending. When an intent is present, swap flags,
// reasons, and impact comparisons are computed before sorting, and the
// champion-promotion pass runs last.
func Rank(recs []Recommendation, intent *Recommendation, acres float64, opts RankOptions) []Recommendation {
	if intent != nil {
		for i := range recs {
			isSwap, reasons := DetectSwap(recs[i], *intent)
			recs[i].IsSmartSwap = isSwap
			if isSwap {
				recs[i].Reasons = reasons
				recs[i].Impact = CompareImpact(recs[i], *intent, acres)
			}
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].IsSmartSwap != recs[j].IsSmartSwap {
			return recs[i].IsSmartSwap
		}
		if math.Abs(recs[i].Economics.ProfitIndex-recs[j].Economics.ProfitIndex) > profitTieBreakMargin {
			return recs[i].Economics.ProfitIndex > recs[j].Economics.ProfitIndex
		}
		return recs[i].Risk.Score < recs[j].Risk.Score
	})

	if opts.PromoteChampion && intent != nil {
		promoteChampion(recs, intent, acres)
	}
	return recs
}

// promoteChampion guarantees the engine never silently recommends a crop
// other than the farmer's intent: if an unflagged candidate lands on top it
// gains the swap flag and a leading explanation.
func promoteChampion(recs []Recommendation, intent *Recommendation, acres float64) {
	if len(recs) == 0 {
		return
	}
	top := &recs[0]
	if top.Crop.ID == intent.Crop.ID || top.IsSmartSwap {
		return
	}
	top.IsSmartSwap = true
	top.Reasons = append([]string{
		fmt.Sprintf("Top recommendation for your farm: %s scores better than %s on profit and risk.", top.Crop.Name, intent.Crop.Name),
	}, top.Reasons...)
	if top.Impact == nil {
		top.Impact = CompareImpact(*top, *intent, acres)
	}
}
