package store

import "time"

// MirrorState is the outcome of the last mirror of one institute
type MirrorState struct {
	InstituteID string
	Source      string
	Students    int
	Attendance  int
	Tests       int
	MirroredAt  time.Time
}
