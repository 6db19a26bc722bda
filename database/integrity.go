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
	"fmt"
)

// checkProposalIndex compares the number of proposal records in the blob
// store against the metadata query index. The blob store is authoritative
// and commits first, so the index can lag behind it after a crash
func (d *Database) checkProposalIndex() error {
	txn := d.Transaction(false)
	defer txn.Release()
	blobCount, err := d.CountProposalBlobs(txn)
	if err != nil {
		return fmt.Errorf("failed to count proposal records: %w", err)
	}
	proposals, err := d.GetProposals(txn)
	if err != nil {
		return fmt.Errorf("failed to read proposal index: %w", err)
	}
	if int64(len(proposals)) != blobCount {
		d.logger.Warn(
			"proposal index out of sync with blob store",
			"component", "database",
			"blob_count", blobCount,
			"index_count", len(proposals),
		)
	}
	return nil
}
