// Package review tracks the review state of a course's material list
// (pendiente, en_revision, revisado) with a small state machine.
package review
