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
	"errors"

	"github.com/blinklabs-io/agora/database/types"
)

// GetWinningVotes returns the current highest vote count across all
// proposals, or zero when no vote has been cast yet
func (d *Database) GetWinningVotes(txn *Txn) (uint64, error) {
	if txn.Blob() == nil {
		return 0, types.ErrBlobStoreUnavailable
	}
	val, err := d.blob.Get(txn.Blob(), []byte(types.WinningProposalVotesKey))
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return types.BytesToUint64(val), nil
}

// SetWinningVotes stores the current highest vote count
func (d *Database) SetWinningVotes(txn *Txn, votes uint64) error {
	if txn.Blob() == nil {
		return types.ErrBlobStoreUnavailable
	}
	return d.blob.Set(
		txn.Blob(),
		[]byte(types.WinningProposalVotesKey),
		types.Uint64ToBytes(votes),
	)
}

// GetWinningProposal returns the proposal key of the current winner, or nil
// when no proposal has received a vote yet
func (d *Database) GetWinningProposal(txn *Txn) ([]byte, error) {
	if txn.Blob() == nil {
		return nil, types.ErrBlobStoreUnavailable
	}
	val, err := d.blob.Get(txn.Blob(), []byte(types.WinningProposalKey))
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return val, nil
}

// SetWinningProposal stores the proposal key of the current winner
func (d *Database) SetWinningProposal(txn *Txn, key []byte) error {
	if txn.Blob() == nil {
		return types.ErrBlobStoreUnavailable
	}
	return d.blob.Set(txn.Blob(), []byte(types.WinningProposalKey), key)
}
