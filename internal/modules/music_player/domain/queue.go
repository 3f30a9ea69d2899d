package domain

import (
	"iter"
	"math/rand/v2"
	"time"
)

// Queue is the ordered list of tracks waiting behind the current one.
// Insertion order is playback order. The current track never lives here.
//
// Positions exposed to callers are 1-based, matching what users see in the
// queue listing.
type Queue struct {
	tracks []*Track
}

// NewQueue creates a new empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// IsEmpty returns true if no tracks are queued.
func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}

// Enqueue appends a track to the back of the queue.
func (q *Queue) Enqueue(track *Track) {
	q.tracks = append(q.tracks, track)
}

// EnqueueAll appends tracks in the given order.
func (q *Queue) EnqueueAll(tracks []*Track) {
	q.tracks = append(q.tracks, tracks...)
}

// TryDequeueFront removes and returns the first track.
func (q *Queue) TryDequeueFront() (*Track, bool) {
	if q.IsEmpty() {
		return nil, false
	}

	track := q.tracks[0]
	q.tracks[0] = nil
	q.tracks = q.tracks[1:]
	return track, true
}

// TryRemoveAt removes and returns the track at the 1-based position.
func (q *Queue) TryRemoveAt(position int) (*Track, bool) {
	if position < 1 || position > len(q.tracks) {
		return nil, false
	}

	index := position - 1
	track := q.tracks[index]
	q.tracks = append(q.tracks[:index], q.tracks[index+1:]...)
	return track, true
}

// Shuffle permutes the queue uniformly at random.
func (q *Queue) Shuffle() {
	if len(q.tracks) <= 1 {
		return
	}
	rand.Shuffle(len(q.tracks), func(i, j int) {
		q.tracks[i], q.tracks[j] = q.tracks[j], q.tracks[i]
	})
}

// Peek yields up to limit tracks from the front with their 1-based positions.
// A negative limit yields every track. The sequence is lazy and may be ranged
// over more than once; it does not mutate the queue.
func (q *Queue) Peek(limit int) iter.Seq2[int, *Track] {
	return func(yield func(int, *Track) bool) {
		for i, track := range q.tracks {
			if limit >= 0 && i >= limit {
				return
			}
			if !yield(i+1, track) {
				return
			}
		}
	}
}

// Clear drops every queued track.
func (q *Queue) Clear() {
	clear(q.tracks)
	q.tracks = q.tracks[:0]
}

// Duration sums the durations of queued tracks, skipping streams.
func (q *Queue) Duration() time.Duration {
	var total time.Duration
	for _, track := range q.tracks {
		if track != nil && !track.IsStream {
			total += track.Duration
		}
	}
	return total
}
