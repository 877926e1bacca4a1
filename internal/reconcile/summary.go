package reconcile

const (
	monitoredPrefix = "[Set as monitored] "
	addedPrefix     = "[Added & monitored] "
)

// CollectionReport lists the actions taken for one collection.
type CollectionReport struct {
	Name  string
	Lines []string
}

// Summary is the outcome of one reconciliation pass. Only collections where
// at least one action succeeded appear in Collections. Skipped, Failed and
// AlreadyPresent are diagnostics for the console; notifications report
// successes only.
type Summary struct {
	Monitored      int
	Added          int
	Skipped        int
	Failed         int
	AlreadyPresent int
	Collections    []CollectionReport
}

// Changes returns the number of successful mutations.
func (s Summary) Changes() int {
	return s.Monitored + s.Added
}

// MonitoredLine formats the report line for a movie switched to monitored.
func MonitoredLine(title string, year int) string {
	return monitoredPrefix + label(title, year)
}

// AddedLine formats the report line for a newly added movie.
func AddedLine(title string, year int) string {
	return addedPrefix + label(title, year)
}
