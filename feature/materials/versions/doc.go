// Package versions selects and rewrites entries of a course's material-list
// history. The pure helpers (Latest, ReplaceLatest, Append) never touch
// storage; Store applies them under a per-course lock.
package versions
