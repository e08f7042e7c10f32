package validate

import "sort"

// Category classifies a finding. The set is closed; report rendering
// groups by it.
type Category string

const (
	CategoryInvalidLabel    Category = "Invalid label"
	CategoryIncorrectFormat Category = "Incorrect format"
	CategoryHeaderNotBold   Category = "Header not bold"
	CategoryBoldFormatting  Category = "Bold formatting"
	CategoryIncorrectFont   Category = "Incorrect font"
	CategoryIncorrectSize   Category = "Incorrect size"
)

// Finding is one reported style or content violation, tied to the 1-based
// paragraph position the user sees as a line number.
type Finding struct {
	Line     int
	Category Category
	Message  string
}

// Removal is one removed character with its occurrence count.
type Removal struct {
	Char  rune
	Count int
}

// CategoryCount is the number of findings recorded for one category.
type CategoryCount struct {
	Category Category
	Count    int
}

// Result collects everything one validation pass produced: findings in
// encounter order, the total number of removed characters and a
// per-character histogram.
type Result struct {
	Findings []Finding
	Removed  int

	counts map[rune]int
	order  []rune // first-seen order, used to break frequency ties
}

func newResult() *Result {
	return &Result{counts: make(map[rune]int)}
}

// merge folds one paragraph's outcome into the result.
func (r *Result) merge(pr paragraphResult) {
	r.Findings = append(r.Findings, pr.findings...)
	for _, c := range pr.removed {
		if _, seen := r.counts[c]; !seen {
			r.order = append(r.order, c)
		}
		r.counts[c]++
		r.Removed++
	}
}

// DistinctRemoved returns how many different characters were removed.
func (r *Result) DistinctRemoved() int {
	return len(r.counts)
}

// Removals returns the removed-character histogram sorted by frequency,
// most frequent first; ties keep first-seen order.
func (r *Result) Removals() []Removal {
	firstSeen := make(map[rune]int, len(r.order))
	for i, c := range r.order {
		firstSeen[c] = i
	}
	out := make([]Removal, 0, len(r.counts))
	for _, c := range r.order {
		out = append(out, Removal{Char: c, Count: r.counts[c]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return firstSeen[out[i].Char] < firstSeen[out[j].Char]
	})
	return out
}

// CountByCategory tallies findings per category in first-seen order.
func (r *Result) CountByCategory() []CategoryCount {
	idx := make(map[Category]int)
	var out []CategoryCount
	for _, f := range r.Findings {
		if i, ok := idx[f.Category]; ok {
			out[i].Count++
			continue
		}
		idx[f.Category] = len(out)
		out = append(out, CategoryCount{Category: f.Category, Count: 1})
	}
	return out
}
