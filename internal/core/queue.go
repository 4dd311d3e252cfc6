package core

// Queue is the auto-play pointer into a bound track sequence (a playlist or
// a set of search results). While engaged, CurrentIndex always refers to a
// valid entry in Tracks.
type Queue struct {
	Tracks       []Track `json:"tracks"`
	CurrentIndex int     `json:"current_index"`
	engaged      bool
}

// Bind engages the queue over the given tracks starting at index start.
// Binding an empty sequence or an out-of-range start leaves the queue
// disengaged.
func (q *Queue) Bind(tracks []Track, start int) {
	if len(tracks) == 0 || start < 0 || start >= len(tracks) {
		q.Disengage()
		return
	}
	q.Tracks = tracks
	q.CurrentIndex = start
	q.engaged = true
}

// Disengage detaches the queue from its bound sequence.
func (q *Queue) Disengage() {
	q.Tracks = nil
	q.CurrentIndex = 0
	q.engaged = false
}

// Engaged reports whether auto-play is bound to a sequence.
func (q *Queue) Engaged() bool {
	return q != nil && q.engaged
}

// Current returns the track under the pointer, or nil if disengaged.
func (q *Queue) Current() *Track {
	if !q.Engaged() {
		return nil
	}
	return &q.Tracks[q.CurrentIndex]
}

// Advance moves the pointer to the next entry and returns it. Past the last
// entry the queue wraps to the start when loop is set, and disengages
// otherwise, returning nil.
func (q *Queue) Advance(loop bool) *Track {
	if !q.Engaged() {
		return nil
	}
	if q.CurrentIndex+1 < len(q.Tracks) {
		q.CurrentIndex++
		return &q.Tracks[q.CurrentIndex]
	}
	if loop {
		q.CurrentIndex = 0
		return &q.Tracks[0]
	}
	q.Disengage()
	return nil
}

// Retreat moves the pointer to the previous entry and returns it, clamping
// at the first entry.
func (q *Queue) Retreat() *Track {
	if !q.Engaged() {
		return nil
	}
	if q.CurrentIndex > 0 {
		q.CurrentIndex--
	}
	return &q.Tracks[q.CurrentIndex]
}

// Upcoming returns the tracks after the current position.
func (q *Queue) Upcoming() []Track {
	if !q.Engaged() || q.CurrentIndex >= len(q.Tracks)-1 {
		return nil
	}
	return q.Tracks[q.CurrentIndex+1:]
}

// Len returns the number of tracks in the bound sequence.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.Tracks)
}
