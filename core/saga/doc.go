// Package saga runs multi-system side effects with explicit compensations.
//
// Each Step pairs an action with the named action that undoes it. When a step
// fails, the steps that already completed are compensated in reverse order.
// Compensations run on a context detached from the caller's cancellation, and
// their failures are collected in the returned *Error rather than hidden.
//
// # Usage
//
//	err := saga.New("publish", logger).
//	    Add(saga.Step{Name: "create_tag", Action: createTag, Compensate: deleteTag}).
//	    Add(saga.Step{Name: "upload_export", Action: upload, Compensate: removeExport}).
//	    Run(ctx)
package saga
