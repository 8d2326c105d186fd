// Package workspace captures a bounded snapshot of the caller's workspace
// for plan generation.
//
// A Snapshot is rebuilt per request and never persisted. Gathering never
// fails: any sub-step error (unreadable file, unparseable manifest,
// enumeration failure) degrades the corresponding field to absent and is
// swallowed. The failure reason is diagnostic-only and logged at debug
// level, not surfaced to the caller.
package workspace
