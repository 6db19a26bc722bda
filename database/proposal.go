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

// GetProposalBlob returns the encoded proposal record stored under the given
// proposal key, or types.ErrBlobKeyNotFound when no such proposal exists
func (d *Database) GetProposalBlob(txn *Txn, key []byte) ([]byte, error) {
	if txn.Blob() == nil {
		return nil, types.ErrBlobStoreUnavailable
	}
	return d.blob.Get(txn.Blob(), types.ProposalBlobKey(key))
}

// SetProposalBlob stores the encoded proposal record under the given
// proposal key
func (d *Database) SetProposalBlob(txn *Txn, key, value []byte) error {
	if txn.Blob() == nil {
		return types.ErrBlobStoreUnavailable
	}
	return d.blob.Set(txn.Blob(), types.ProposalBlobKey(key), value)
}

// ProposalBlobExists reports whether a proposal record exists for the given
// proposal key
func (d *Database) ProposalBlobExists(txn *Txn, key []byte) (bool, error) {
	if txn.Blob() == nil {
		return false, types.ErrBlobStoreUnavailable
	}
	return d.blob.Exists(txn.Blob(), types.ProposalBlobKey(key))
}

// CountProposalBlobs returns the number of proposal records in the blob
// store by iterating the proposal key prefix
func (d *Database) CountProposalBlobs(txn *Txn) (int64, error) {
	if txn.Blob() == nil {
		return 0, types.ErrBlobStoreUnavailable
	}
	prefix := []byte(types.ProposalBlobKeyPrefix)
	iter := d.blob.NewIterator(
		txn.Blob(),
		types.BlobIteratorOptions{Prefix: prefix},
	)
	defer iter.Close()
	var count int64
	for iter.Rewind(); iter.ValidForPrefix(prefix); iter.Next() {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

// SetProposal records a proposal in the metadata query index
func (d *Database) SetProposal(txn *Txn, proposal *models.Proposal) error {
	return d.metadata.SetProposal(proposal, txn.Metadata())
}

// GetProposal returns the indexed proposal for the given proposer identity
// and sequence number, or nil when not found
func (d *Database) GetProposal(
	txn *Txn,
	proposer []byte,
	sequence uint64,
) (*models.Proposal, error) {
	return d.metadata.GetProposal(proposer, sequence, txn.Metadata())
}

// GetProposals returns all indexed proposals in submission order
func (d *Database) GetProposals(txn *Txn) ([]*models.Proposal, error) {
	return d.metadata.GetProposals(txn.Metadata())
}
