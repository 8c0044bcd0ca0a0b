// Package achievements evaluates the fixed achievement catalogue against the
// latest aggregate totals. Unlock state is never persisted: every read
// recomputes all predicates, so clearing history locks achievements again.
package achievements

// Metrics is the aggregate snapshot the predicates run against.
// All values are cumulative totals over the full history.
type Metrics struct {
	Calories       int
	CyclingKm      float64
	WorkoutMinutes int
}

type Rule struct {
	Title    string
	Category string
	Unlocked func(Metrics) bool
}

// Catalogue is the fixed, ordered achievement rule set. Titles, categories
// and thresholds mirror the shipped mobile app, including the "in a Day"
// titles checking cumulative totals and the 10 km ride sitting in the
// calories category.
var Catalogue = []Rule{
	{
		Title:    "500 kcal in a Day",
		Category: "🔥 Calories Achievements",
		Unlocked: func(m Metrics) bool { return m.Calories >= 500 },
	},
	{
		Title:    "10 km Cycling",
		Category: "🔥 Calories Achievements",
		Unlocked: func(m Metrics) bool { return m.CyclingKm >= 10 },
	},
	{
		Title:    "15 km Ride",
		Category: "🚴 Cycling Achievements",
		Unlocked: func(m Metrics) bool { return m.CyclingKm >= 15 },
	},
	{
		Title:    "30 Min Workout",
		Category: "🏋️‍♂️ Workout Achievements",
		Unlocked: func(m Metrics) bool { return m.WorkoutMinutes >= 30 },
	},
	{
		Title:    "Active 3 Days",
		Category: "⭐ Combo Achievements",
		Unlocked: func(m Metrics) bool {
			return m.Calories > 0 && m.CyclingKm > 0 && m.WorkoutMinutes > 0
		},
	},
}

type Status struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Unlocked bool   `json:"unlocked"`
}

type Group struct {
	Category     string   `json:"category"`
	Achievements []Status `json:"achievements"`
}

// Evaluate runs every catalogue predicate against the given metrics,
// in catalogue order.
func Evaluate(m Metrics) []Status {
	statuses := make([]Status, 0, len(Catalogue))
	for _, rule := range Catalogue {
		statuses = append(statuses, Status{
			Title:    rule.Title,
			Category: rule.Category,
			Unlocked: rule.Unlocked(m),
		})
	}
	return statuses
}

// Grouped evaluates the catalogue and groups results by category. Group
// order is the order categories first appear in the catalogue, not sorted.
func Grouped(m Metrics) []Group {
	var groups []Group
	category2index := make(map[string]int)

	for _, status := range Evaluate(m) {
		i, ok := category2index[status.Category]
		if !ok {
			i = len(groups)
			category2index[status.Category] = i
			groups = append(groups, Group{Category: status.Category})
		}
		groups[i].Achievements = append(groups[i].Achievements, status)
	}

	return groups
}
