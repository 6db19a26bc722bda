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

package database

import (
	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/database/types"
)

// BallotExists reports whether the given voter identity has already cast
// a ballot
func (d *Database) BallotExists(txn *Txn, voter []byte) (bool, error) {
	if txn.Blob() == nil {
		return false, types.ErrBlobStoreUnavailable
	}
	return d.blob.Exists(txn.Blob(), types.BallotBlobKey(voter))
}

// SetBallotGuard marks the given voter identity as having voted. The stored
// value is the proposal key the vote went to
func (d *Database) SetBallotGuard(txn *Txn, voter, proposalKey []byte) error {
	if txn.Blob() == nil {
		return types.ErrBlobStoreUnavailable
	}
	return d.blob.Set(txn.Blob(), types.BallotBlobKey(voter), proposalKey)
}

// SetBallot records a cast ballot in the metadata query index
func (d *Database) SetBallot(txn *Txn, ballot *models.Ballot) error {
	return d.metadata.SetBallot(ballot, txn.Metadata())
}

// GetBallot returns the indexed ballot for the given voter identity, or nil
// when the voter has not voted
func (d *Database) GetBallot(
	txn *Txn,
	voter []byte,
) (*models.Ballot, error) {
	return d.metadata.GetBallot(voter, txn.Metadata())
}

// GetBallotCount returns the total number of ballots cast
func (d *Database) GetBallotCount(txn *Txn) (int64, error) {
	return d.metadata.GetBallotCount(txn.Metadata())
}
