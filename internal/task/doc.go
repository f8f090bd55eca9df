// Package task holds the task entity, the in-memory store and its file codec.
//
// The store file (tasks.json by default) is a single JSON document:
//
//	{
//	  "schema_version": 1,
//	  "tasks": {
//	    "1": {
//	      "id": 1,
//	      "description": "write report",
//	      "status": "New",
//	      "created_at": "2026-01-01T00:00:00Z",
//	      "updated_at": "2026-01-01T00:00:00Z"
//	    }
//	  }
//	}
//
// Keys of the tasks object are the decimal task ids and must agree with the
// embedded "id" field. Every document is checked against an embedded JSON
// Schema before it is accepted.
//
// # Status Values
//
//   - "New": created and not started
//   - "InProgress": being worked on
//   - "Done": complete
//
// # File Format
//
// When writing store files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - RFC 3339 timestamps with nanosecond precision
//   - A temporary file renamed over the destination
package task
