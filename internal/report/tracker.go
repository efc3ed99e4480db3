// Package report renders deletion progress. It is the only consumer of the
// event stream and the only owner of per-project display state.
package report

import "github.com/lakshaymaurya-felt/nmsweep/internal/project"

// Summary counts outcomes once a stream has been consumed.
type Summary struct {
	Total  int
	Done   int
	Failed int
}

// Pending returns how many projects never reached a terminal state.
func (s Summary) Pending() int {
	return s.Total - s.Done - s.Failed
}

// tracker applies events to the initial project list.
type tracker struct {
	rows    []project.Project
	index   map[string]int
	summary Summary
}

func newTracker(projects []project.Project) *tracker {
	t := &tracker{
		rows:  make([]project.Project, len(projects)),
		index: make(map[string]int, len(projects)),
	}
	for i, p := range projects {
		p.Status = project.StatusWaiting
		t.rows[i] = p
		t.index[p.Path] = i
	}
	t.summary.Total = len(t.rows)
	return t
}

// apply records ev and returns the updated row. ok is false for unknown paths
// and for transitions that would move a project backwards.
func (t *tracker) apply(ev project.Event) (row project.Project, ok bool) {
	i, found := t.index[ev.Path]
	if !found {
		return project.Project{}, false
	}
	if !t.rows[i].Status.CanTransition(ev.Status) {
		return t.rows[i], false
	}

	t.rows[i].Status = ev.Status
	switch ev.Status {
	case project.StatusDone:
		t.summary.Done++
	case project.StatusFailed:
		t.summary.Failed++
	}
	return t.rows[i], true
}

// Discard drains events without rendering anything. Used in silent mode.
func Discard(projects []project.Project, events <-chan project.Event) Summary {
	t := newTracker(projects)
	for ev := range events {
		t.apply(ev)
	}
	return t.summary
}
