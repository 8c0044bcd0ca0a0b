package tracking

// Log is an ordered collection of entries for one activity kind.
// It is a plain in-memory structure, not safe for concurrent use;
// trackers serialize access to it.
type Log[E Entry] struct {
	entries []E
}

func (l *Log[E]) append(e E) {
	l.entries = append(l.entries, e)
}

func (l *Log[E]) prepend(e E) {
	l.entries = append([]E{e}, l.entries...)
}

// remove deletes the entry with the given id. Removing an absent
// id is a no-op, not an error.
func (l *Log[E]) remove(id string) bool {
	for i, e := range l.entries {
		if e.EntryID() == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Log[E]) clear() {
	l.entries = nil
}

func (l *Log[E]) replace(entries []E) {
	l.entries = entries
}

// all returns a copy of the current ordered entries.
func (l *Log[E]) all() []E {
	out := make([]E, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log[E]) len() int {
	return len(l.entries)
}

// CalorieLog appends every intake independently, same-day entries included.
type CalorieLog struct {
	Log[CalorieEntry]
}

func (l *CalorieLog) add(amount int, day Day) (CalorieEntry, error) {
	entry, err := newCalorieEntry(amount, day)
	if err != nil {
		return CalorieEntry{}, err
	}
	l.append(entry)
	return entry, nil
}

func (l *CalorieLog) total() int {
	var sum int
	for _, e := range l.entries {
		sum += e.Amount
	}
	return sum
}

// CyclingLog holds at most one entry per distinct day: adding distance on a
// day with an existing entry increments that entry in place. Entries keep
// the append order of first-seen days, in-place updates do not reorder.
type CyclingLog struct {
	Log[CyclingEntry]
}

func (l *CyclingLog) add(distance float64, day Day) (CyclingEntry, error) {
	if err := checkDistance(distance); err != nil {
		return CyclingEntry{}, err
	}

	for i, e := range l.entries {
		if e.Date == day {
			l.entries[i].Distance += distance
			return l.entries[i], nil
		}
	}

	entry, err := newCyclingEntry(distance, day)
	if err != nil {
		return CyclingEntry{}, err
	}
	l.append(entry)
	return entry, nil
}

func (l *CyclingLog) total() float64 {
	var sum float64
	for _, e := range l.entries {
		sum += e.Distance
	}
	return sum
}

func (l *CyclingLog) distanceOn(day Day) float64 {
	for _, e := range l.entries {
		if e.Date == day {
			return e.Distance
		}
	}
	return 0
}

// WorkoutLog keeps sessions newest-first, each stop independently recorded.
type WorkoutLog struct {
	Log[WorkoutEntry]
}

func (l *WorkoutLog) add(workoutType string, durationSeconds int, day Day) (WorkoutEntry, error) {
	entry, err := newWorkoutEntry(workoutType, durationSeconds, day)
	if err != nil {
		return WorkoutEntry{}, err
	}
	l.prepend(entry)
	return entry, nil
}

func (l *WorkoutLog) totalSeconds() int {
	var sum int
	for _, e := range l.entries {
		sum += e.DurationSeconds
	}
	return sum
}

func (l *WorkoutLog) totalCalories() float64 {
	var sum float64
	for _, e := range l.entries {
		sum += e.Calories
	}
	return sum
}
