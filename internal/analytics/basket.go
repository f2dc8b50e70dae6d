package analytics

import (
	"sort"

	"github.com/evlampy/storeboard/internal/entity"
)

// DefaultMinSupport is the minimum pair co-occurrence count used when the
// caller does not specify one.
const DefaultMinSupport = 2

type pairKey struct {
	a, b int // a < b, so the key is stable regardless of input order
}

// AnalyzeBaskets performs pairwise market basket analysis over qualifying
// orders. Line items are deduplicated per order, so ordering the same product
// twice in one order counts once. minSupport <= 0 falls back to
// DefaultMinSupport except that a negative value is rejected as a caller bug.
func AnalyzeBaskets(orders []entity.Order, minSupport int) ([]entity.ProductPair, error) {
	if minSupport < 0 {
		return nil, ErrInvalidSupport
	}
	if minSupport == 0 {
		minSupport = DefaultMinSupport
	}

	occurrence := map[int]int{}
	co := map[pairKey]int{}
	names := map[int]string{}
	n := 0

	for i := range orders {
		o := &orders[i]
		unique := make(map[int]bool, len(o.LineItems))
		for _, li := range o.LineItems {
			if !unique[li.ProductID] {
				unique[li.ProductID] = true
				if li.Name != "" {
					names[li.ProductID] = li.Name
				}
			}
		}
		if len(unique) == 0 {
			continue
		}
		n++

		ids := make([]int, 0, len(unique))
		for id := range unique {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		for _, id := range ids {
			occurrence[id]++
		}
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				co[pairKey{a: ids[i], b: ids[j]}]++
			}
		}
	}

	var pairs []entity.ProductPair
	for key, freq := range co {
		if freq < minSupport {
			continue
		}
		occ1 := occurrence[key.a]
		occ2 := occurrence[key.b]
		if occ1 == 0 || occ2 == 0 || n == 0 {
			continue
		}
		confidence := SafeFloat(float64(freq) / float64(occ1) * 100)
		// lift = P(a and b) / (P(a) * P(b))
		lift := SafeFloat(float64(freq) * float64(n) / (float64(occ1) * float64(occ2)))
		pairs = append(pairs, entity.ProductPair{
			Product1ID:   key.a,
			Product2ID:   key.b,
			Product1Name: names[key.a],
			Product2Name: names[key.b],
			Frequency:    freq,
			Confidence:   confidence,
			Lift:         lift,
		})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Frequency != pairs[j].Frequency {
			return pairs[i].Frequency > pairs[j].Frequency
		}
		if pairs[i].Product1ID != pairs[j].Product1ID {
			return pairs[i].Product1ID < pairs[j].Product1ID
		}
		return pairs[i].Product2ID < pairs[j].Product2ID
	})

	return pairs, nil
}
