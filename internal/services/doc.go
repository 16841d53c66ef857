// Package services defines shared utilities consumed by the pipeline stages.
//
// Context helpers stamp the run ID and stage name for logging. The error
// markers plus the Wrap helper give every stage failure the same shape, and
// FailureReason turns them into the short reason recorded in run history.
package services
