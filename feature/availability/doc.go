// Package availability reconciles a course's latest supply list against the
// product catalogs and writes the prices, stock and availability it finds
// back into the history. Each run can be archived to object storage as a JSON
// report.
package availability
