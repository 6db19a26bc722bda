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

package types

import (
	"encoding/binary"
	"slices"
)

const (
	ProposalBlobKeyPrefix = "p-"
	VoteBlobKeyPrefix     = "v-"
	BallotBlobKeyPrefix   = "b-"

	// Global singletons
	WinningProposalVotesKey = "winning_proposal_votes"
	WinningProposalKey      = "winning_proposal"
	ReserveRequirementKey   = "reserve_requirement"
)

func Uint64ToBytes(input uint64) []byte {
	ret := make([]byte, 8)
	binary.BigEndian.PutUint64(ret, input)
	return ret
}

func BytesToUint64(input []byte) uint64 {
	if len(input) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(input)
}

// ProposalBlobKey builds the blob key for a proposal record from an encoded
// proposal key (proposer identity plus sequence number)
func ProposalBlobKey(encodedKey []byte) []byte {
	return slices.Concat([]byte(ProposalBlobKeyPrefix), encodedKey)
}

// VoteBlobKey builds the blob key for a vote counter from an encoded
// proposal key
func VoteBlobKey(encodedKey []byte) []byte {
	return slices.Concat([]byte(VoteBlobKeyPrefix), encodedKey)
}

// BallotBlobKey builds the blob key for a voter's ballot guard entry
func BallotBlobKey(voter []byte) []byte {
	return slices.Concat([]byte(BallotBlobKeyPrefix), voter)
}
