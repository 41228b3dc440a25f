// Package storage wraps the MinIO client for the service's bucket.
//
// Two kinds of objects are kept: availability reports under
// reports/availability/<curso>/ and published list exports under
// exports/cursos/<curso>/. Both are JSON documents written with PutJSON and
// read back with GetJSON, which maps a missing key to errs.ErrNotFound.
// The bucket is optional unless storage.required is set; features that need
// it stay disabled otherwise.
//
// Tests use the testify mock in core/storage/mocks.
package storage
