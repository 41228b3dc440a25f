// Package search finds material items across the latest list of every course
// and aggregates how many schools, courses, students and products they cover.
package search
