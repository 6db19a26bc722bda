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

// GetReserveRequirement returns the cumulative storage reserve requirement,
// or zero when nothing has been stored yet
func (d *Database) GetReserveRequirement(txn *Txn) (uint64, error) {
	if txn.Blob() == nil {
		return 0, types.ErrBlobStoreUnavailable
	}
	val, err := d.blob.Get(txn.Blob(), []byte(types.ReserveRequirementKey))
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return types.BytesToUint64(val), nil
}

// SetReserveRequirement stores the cumulative storage reserve requirement
func (d *Database) SetReserveRequirement(txn *Txn, amount uint64) error {
	if txn.Blob() == nil {
		return types.ErrBlobStoreUnavailable
	}
	return d.blob.Set(
		txn.Blob(),
		[]byte(types.ReserveRequirementKey),
		types.Uint64ToBytes(amount),
	)
}
