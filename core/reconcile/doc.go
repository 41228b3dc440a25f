// Package reconcile matches subjects (material lines) against an ordered list
// of external catalogs and classifies their availability.
//
// # Architecture
//
//  1. Source: one catalog (the e-commerce search API, the internal product
//     table). Sources are tried in order and the first match wins.
//
//  2. Engine: runs a pass sequentially, one external call at a time, with a
//     per-call timeout and an overall budget. A failing source downgrades only
//     its subject; a spent budget ends the pass with a partial result.
//
//  3. Cache: Cached wraps a source with a TTL cache and singleflight so
//     repeated names across courses hit the catalog once.
//
// # Usage Example
//
//	spec := cfg.Reconcile.Spec(
//	    reconcile.Cached(catalog.NewWooSource(woo, 10), 5*time.Minute),
//	    catalog.NewInternalSource(internal),
//	)
//	run := reconcile.NewEngine(spec, logger).ReconcileAll(ctx, subjects)
//	if run.Partial {
//	    // persist what was processed
//	}
package reconcile
