// README: Deterministic candidate ranking by selectable sort key.
package matching

import "sort"

// Rank orders candidates in place by the given key. Ties fall back to
// ascending distance, then candidate ID, so an identical pool always ranks
// identically. The sort is stable: candidates equal on every key keep their
// input order.
func Rank(candidates []RankedCandidate, key SortKey) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if less, decided := primaryLess(a, b, key); decided {
			return less
		}
		if a.DistanceMiles != b.DistanceMiles {
			return a.DistanceMiles < b.DistanceMiles
		}
		return a.ID < b.ID
	})
}

// primaryLess compares on the sort key alone; decided=false means the
// primary keys tie.
func primaryLess(a, b RankedCandidate, key SortKey) (less, decided bool) {
	switch key {
	case SortByRating:
		if a.Rating != b.Rating {
			return a.Rating > b.Rating, true
		}
	case SortByRate:
		if !a.HourlyRate.Equal(b.HourlyRate) {
			return a.HourlyRate.LessThan(b.HourlyRate), true
		}
	case SortByExperience:
		// Experience ranks by completed jobs: an integer that is always
		// present, unlike the free-text years field.
		if a.CompletedJobs != b.CompletedJobs {
			return a.CompletedJobs > b.CompletedJobs, true
		}
	default: // SortByDistance
		if a.DistanceMiles != b.DistanceMiles {
			return a.DistanceMiles < b.DistanceMiles, true
		}
	}
	return false, false
}
