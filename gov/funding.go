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

package gov

const (
	// EntryFlatCost is the flat reserve cost for each stored entry
	EntryFlatCost = 2500

	// EntryByteCost is the per-byte reserve cost for each stored entry,
	// covering both key and value bytes
	EntryByteCost = 400
)

// FundingProof attests that the submitter has paid for the storage their
// submission will allocate. Beneficiary must be the system identity and
// Amount must cover the reserve requirement increase.
type FundingProof struct {
	Beneficiary Identity
	Amount      uint64
}

// entryReserveCost returns the reserve requirement increase for storing a
// single new entry with the given key and value
func entryReserveCost(key, value []byte) uint64 {
	return EntryFlatCost + EntryByteCost*uint64(len(key)+len(value))
}
