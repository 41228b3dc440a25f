package reconcile

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subject is one thing to look up in the external catalogs.
type Subject struct {
	// Key identifies the subject to the caller (e.g. a material id).
	Key string `json:"key"`

	// Name is the raw display name; sources decide how to normalize it.
	Name string `json:"name"`

	// ISBN is optional; sources that support it prefer it over the name.
	ISBN string `json:"isbn,omitempty"`
}

// Match is a catalog product accepted for a subject.
type Match struct {
	// Source is the name of the source that produced the match.
	Source string `json:"source"`

	// ExternalID is the product id in the e-commerce catalog, when known.
	ExternalID *int `json:"external_id,omitempty"`

	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price,omitempty"`

	// Stock is the units on hand; nil is treated as zero.
	Stock *int `json:"stock,omitempty"`

	// Image is the first product image URL.
	Image string `json:"image,omitempty"`
}

// StockOrZero returns the stock with nil read as zero.
func (m *Match) StockOrZero() int {
	if m == nil || m.Stock == nil {
		return 0
	}
	return *m.Stock
}

// Status is the availability classification of a subject.
type Status string

const (
	// StatusAvailable means a match was found with stock > 0.
	StatusAvailable Status = "disponible"
	// StatusUnavailable means a match was found with stock <= 0.
	StatusUnavailable Status = "no_disponible"
	// StatusNotFound means no source produced a match (or a source failed).
	StatusNotFound Status = "no_encontrado"
)

// Classify maps a lookup outcome to a status.
func Classify(m *Match) Status {
	switch {
	case m == nil:
		return StatusNotFound
	case m.StockOrZero() > 0:
		return StatusAvailable
	default:
		return StatusUnavailable
	}
}

// Result is the outcome for one subject.
type Result struct {
	Subject Subject `json:"subject"`
	Status  Status  `json:"status"`

	// Match is nil when Status is StatusNotFound.
	Match *Match `json:"match,omitempty"`

	// Err is the swallowed lookup error that downgraded the subject, if any.
	Err error `json:"-"`
}

// Summary counts results per status.
type Summary struct {
	Available   int `json:"disponible"`
	Unavailable int `json:"no_disponible"`
	NotFound    int `json:"no_encontrado"`

	// LookupErrors counts subjects downgraded because a source failed.
	LookupErrors int `json:"lookup_errors"`
}

// Add counts one result.
func (s *Summary) Add(r Result) {
	switch r.Status {
	case StatusAvailable:
		s.Available++
	case StatusUnavailable:
		s.Unavailable++
	default:
		s.NotFound++
	}
	if r.Err != nil {
		s.LookupErrors++
	}
}

// Run is the output of a reconciliation pass.
type Run struct {
	// Results holds one entry per processed subject, in input order.
	Results []Result `json:"results"`

	Summary Summary `json:"summary"`

	// Partial is true when the budget ran out or the context was cancelled
	// before every subject was processed.
	Partial bool `json:"partial"`

	Elapsed time.Duration `json:"elapsed"`
}

// Spec defines the configuration for a reconciliation pass.
type Spec struct {
	// Sources are consulted in order; the first match wins.
	Sources []Source

	// ItemTimeout bounds each individual source call. Zero disables it.
	ItemTimeout time.Duration

	// Budget bounds the whole pass. Zero disables it.
	Budget time.Duration
}
