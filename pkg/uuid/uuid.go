// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the identifiers Storytime hands out: feedback entry
keys and narration clip handles.

Values are UUIDv7, so feedback rows sort by submission time in the primary key
index and handles in logs can be ordered without a timestamp.
*/
package uuid

import "github.com/google/uuid"

// New returns a fresh UUIDv7 string.
//
// It panics if the system entropy source fails, which leaves nothing to recover.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}
