// Package publish makes a course's latest list available to the shop: it
// tags the course in the product catalog, exports the list to object storage
// and records both on the course, undoing earlier steps when a later one
// fails.
package publish
