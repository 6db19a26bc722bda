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

var ErrProposalNotFound = errors.New("proposal not found")

// Proposal is the query index row for a registered proposal. The blob store
// holds the authoritative immutable record; this row exists for listing and
// lookup through the metadata store.
type Proposal struct {
	ID           uint   `gorm:"primarykey"`
	Proposer     []byte `gorm:"uniqueIndex:idx_proposal_proposer_seq,priority:1;size:32;not null"`
	Sequence     uint64 `gorm:"uniqueIndex:idx_proposal_proposer_seq,priority:2;not null"`
	Url          string `gorm:"size:256;not null"`
	MetadataHash []byte `gorm:"size:32;not null"`
	Name         string `gorm:"size:128;not null"`
	UnitName     string `gorm:"size:16;not null"`
	Reserve      []byte `gorm:"size:32;not null"`
	AddedAt      int64  `gorm:"index"` // unix millis at submission
}

// TableName returns the table name
func (Proposal) TableName() string {
	return "proposal"
}
