// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package models

import "errors"

var ErrBallotNotFound = errors.New("ballot not found")

// Ballot records an accepted vote. One row per voter for the lifetime of the
// deployment; the blob-store guard entry is the authoritative one-shot flag.
type Ballot struct {
	ID       uint   `gorm:"primarykey"`
	Voter    []byte `gorm:"uniqueIndex;size:32;not null"`
	Proposer []byte `gorm:"index:idx_ballot_proposal,priority:1;size:32;not null"`
	Sequence uint64 `gorm:"index:idx_ballot_proposal,priority:2;not null"`
	Votes    uint64 `gorm:"not null"` // proposal tally after this ballot
}

// TableName returns the table name
func (Ballot) TableName() string {
	return "ballot"
}
