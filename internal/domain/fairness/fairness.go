package fairness

import "sort"

// WarningThreshold is the demographic parity difference above which the
// report flags potential bias. A value closer to 0 means the selection
// rates are similar across groups.
const WarningThreshold = 0.1

// Record is one screening outcome attributed to a sensitive group.
type Record struct {
	Group    string
	Selected bool
}

type GroupRate struct {
	Group    string  `json:"group"`
	Total    int     `json:"total"`
	Selected int     `json:"selected"`
	Rate     float64 `json:"selection_rate"`
}

type Report struct {
	Rates            []GroupRate `json:"selection_rates"`
	ParityDifference float64     `json:"demographic_parity_difference"`
	BiasWarning      bool        `json:"bias_warning"`
}

// Analyze computes the per-group selection rate and the demographic
// parity difference (max rate minus min rate across groups).
func Analyze(records []Record) Report {
	type agg struct {
		total    int
		selected int
	}

	byGroup := map[string]*agg{}
	for _, r := range records {
		g := r.Group
		if g == "" {
			g = "Unknown"
		}
		a, ok := byGroup[g]
		if !ok {
			a = &agg{}
			byGroup[g] = a
		}
		a.total++
		if r.Selected {
			a.selected++
		}
	}

	rates := make([]GroupRate, 0, len(byGroup))
	for g, a := range byGroup {
		rate := 0.0
		if a.total > 0 {
			rate = float64(a.selected) / float64(a.total)
		}
		rates = append(rates, GroupRate{Group: g, Total: a.total, Selected: a.selected, Rate: rate})
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].Group < rates[j].Group })

	diff := parityDifference(rates)
	return Report{
		Rates:            rates,
		ParityDifference: diff,
		BiasWarning:      diff > WarningThreshold,
	}
}

func parityDifference(rates []GroupRate) float64 {
	if len(rates) < 2 {
		return 0
	}
	min := rates[0].Rate
	max := rates[0].Rate
	for _, r := range rates[1:] {
		if r.Rate < min {
			min = r.Rate
		}
		if r.Rate > max {
			max = r.Rate
		}
	}
	return max - min
}
