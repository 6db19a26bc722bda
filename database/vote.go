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

// GetVoteCount returns the vote counter for the given proposal key. The
// second return value reports whether the counter has been initialized
func (d *Database) GetVoteCount(
	txn *Txn,
	key []byte,
) (uint64, bool, error) {
	if txn.Blob() == nil {
		return 0, false, types.ErrBlobStoreUnavailable
	}
	val, err := d.blob.Get(txn.Blob(), types.VoteBlobKey(key))
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return types.BytesToUint64(val), true, nil
}

// SetVoteCount stores the vote counter for the given proposal key
func (d *Database) SetVoteCount(txn *Txn, key []byte, count uint64) error {
	if txn.Blob() == nil {
		return types.ErrBlobStoreUnavailable
	}
	return d.blob.Set(
		txn.Blob(),
		types.VoteBlobKey(key),
		types.Uint64ToBytes(count),
	)
}
