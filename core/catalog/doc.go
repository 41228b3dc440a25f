// Package catalog talks to the product catalogs used to price and stock
// material lines: the WooCommerce store (search and course tags) and the
// internal productos table used as a fallback.
//
// Both are exposed as reconcile.Source implementations.
package catalog
