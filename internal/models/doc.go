// Package models defines the persistent entities behind the editor's history.
//
//   - [PlaylistFile] : a playlist file that has been opened, with its latest shape and open count
//   - [SaveRecord] : one save of a playlist, with entry counts before and after editing
//
// Both implement [Model], providing ID, timestamps, validation and soft delete support.
// The [Repository] interface defines standard CRUD operations for database access.
package models
