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

import (
	"github.com/blinklabs-io/agora/event"
)

const (
	// ProposalSubmittedEventType is the event type for accepted proposals
	ProposalSubmittedEventType = event.EventType("gov.proposal_submitted")

	// VoteCastEventType is the event type for accepted votes
	VoteCastEventType = event.EventType("gov.vote_cast")

	// AssetMintedEventType is the event type for finalization mints
	AssetMintedEventType = event.EventType("gov.asset_minted")
)

// ProposalSubmittedEvent is published after a proposal has been committed
type ProposalSubmittedEvent struct {
	Key                ProposalKey
	Proposal           Proposal
	ReserveRequirement uint64
}

// VoteCastEvent is published after a vote has been committed. Leader is
// true when this vote put the proposal in (sole) first place
type VoteCastEvent struct {
	Voter  Identity
	Key    ProposalKey
	Votes  uint64
	Leader bool
}

// AssetMintedEvent is published after the winning proposal has been minted
type AssetMintedEvent struct {
	Key     ProposalKey
	AssetId uint64
}
