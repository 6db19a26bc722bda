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

package gov_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/database/types"
	"github.com/blinklabs-io/agora/event"
	"github.com/blinklabs-io/agora/gov"
	"github.com/blinklabs-io/agora/mint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSystemIdentity = gov.Identity{0xff, 0xee}

func testIdentity(fill byte) gov.Identity {
	var ret gov.Identity
	for i := range ret {
		ret[i] = fill
	}
	return ret
}

func testProposal(name string) gov.Proposal {
	p := gov.Proposal{
		Url:      "ipfs://" + name,
		Name:     name,
		UnitName: "GOV",
		Reserve:  testIdentity(0x99),
	}
	p.MetadataHash[0] = 0x01
	return p
}

// proposalCost returns the exact reserve increase for registering the given
// proposal, so tests can probe the funding boundary
func proposalCost(key gov.ProposalKey, p gov.Proposal) uint64 {
	entry := len(types.ProposalBlobKey(key.Encode())) + len(p.Encode())
	return gov.EntryFlatCost + gov.EntryByteCost*uint64(entry) //nolint:gosec
}

func exactFunding(key gov.ProposalKey, p gov.Proposal) gov.FundingProof {
	return gov.FundingProof{
		Beneficiary: testSystemIdentity,
		Amount:      proposalCost(key, p),
	}
}

func newTestState(t *testing.T) *gov.State {
	t.Helper()
	db, err := database.New(&database.Config{
		DataDir: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	state, err := gov.NewState(gov.StateConfig{
		Database:       db,
		SystemIdentity: testSystemIdentity,
		MintAuthority:  mint.NewLocalMinter(db, nil),
	})
	require.NoError(t, err)
	return state
}

func mustSubmit(
	t *testing.T,
	state *gov.State,
	key gov.ProposalKey,
	p gov.Proposal,
) {
	t.Helper()
	require.NoError(
		t,
		state.SubmitProposal(context.Background(), key, p, exactFunding(key, p)),
	)
}

func TestSubmitProposal(t *testing.T) {
	state := newTestState(t)
	key := gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 1}
	proposal := testProposal("first")
	mustSubmit(t, state, key, proposal)

	got, err := state.GetProposal(key)
	require.NoError(t, err)
	assert.Equal(t, proposal, got)

	// Duplicate key is rejected, even with different content
	err = state.SubmitProposal(
		context.Background(),
		key,
		testProposal("other"),
		exactFunding(key, testProposal("other")),
	)
	require.ErrorIs(t, err, gov.ErrDuplicateProposal)

	// Original content survives
	got, err = state.GetProposal(key)
	require.NoError(t, err)
	assert.Equal(t, proposal, got)
}

func TestSubmitProposalSameSequenceDifferentProposer(t *testing.T) {
	state := newTestState(t)
	key1 := gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 7}
	key2 := gov.ProposalKey{Proposer: testIdentity(0x02), Sequence: 7}
	mustSubmit(t, state, key1, testProposal("one"))
	mustSubmit(t, state, key2, testProposal("two"))
}

func TestSubmitProposalFunding(t *testing.T) {
	state := newTestState(t)
	key := gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 1}
	proposal := testProposal("funded")
	cost := proposalCost(key, proposal)

	// One unit below the requirement fails with no visible state change
	err := state.SubmitProposal(
		context.Background(),
		key,
		proposal,
		gov.FundingProof{
			Beneficiary: testSystemIdentity,
			Amount:      cost - 1,
		},
	)
	require.ErrorIs(t, err, gov.ErrInsufficientFunding)
	_, err = state.GetProposal(key)
	require.ErrorIs(t, err, gov.ErrNotFound)
	reserve, err := state.ReserveRequirement()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), reserve)

	// Over-funding is accepted
	err = state.SubmitProposal(
		context.Background(),
		key,
		proposal,
		gov.FundingProof{
			Beneficiary: testSystemIdentity,
			Amount:      cost + 1000,
		},
	)
	require.NoError(t, err)
	reserve, err = state.ReserveRequirement()
	require.NoError(t, err)
	assert.Equal(t, cost, reserve)
}

func TestSubmitProposalInvalidBeneficiary(t *testing.T) {
	state := newTestState(t)
	key := gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 1}
	proposal := testProposal("misdirected")
	err := state.SubmitProposal(
		context.Background(),
		key,
		proposal,
		gov.FundingProof{
			Beneficiary: testIdentity(0x66),
			Amount:      proposalCost(key, proposal),
		},
	)
	require.ErrorIs(t, err, gov.ErrInvalidBeneficiary)
}

func TestGetProposalNotFound(t *testing.T) {
	state := newTestState(t)
	_, err := state.GetProposal(
		gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 99},
	)
	require.ErrorIs(t, err, gov.ErrNotFound)
}

func TestCastVote(t *testing.T) {
	state := newTestState(t)
	key := gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 1}
	mustSubmit(t, state, key, testProposal("votable"))

	voter := testIdentity(0x10)
	votes, leader, err := state.CastVote(context.Background(), voter, key)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), votes)
	assert.True(t, leader)

	voted, err := state.HasVoted(voter)
	require.NoError(t, err)
	assert.True(t, voted)

	count, err := state.VoteCount(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestCastVoteTwice(t *testing.T) {
	state := newTestState(t)
	key1 := gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 1}
	key2 := gov.ProposalKey{Proposer: testIdentity(0x02), Sequence: 1}
	mustSubmit(t, state, key1, testProposal("one"))
	mustSubmit(t, state, key2, testProposal("two"))

	voter := testIdentity(0x10)
	_, _, err := state.CastVote(context.Background(), voter, key1)
	require.NoError(t, err)

	// Second vote is rejected regardless of target proposal
	_, _, err = state.CastVote(context.Background(), voter, key1)
	require.ErrorIs(t, err, gov.ErrAlreadyVoted)
	_, _, err = state.CastVote(context.Background(), voter, key2)
	require.ErrorIs(t, err, gov.ErrAlreadyVoted)

	// Tally unchanged by the rejected attempts
	count, err := state.VoteCount(key1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
	count, err = state.VoteCount(key2)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestCastVoteUnregisteredProposal(t *testing.T) {
	// Votes are accepted for keys that were never registered; the counter
	// is created lazily
	state := newTestState(t)
	key := gov.ProposalKey{Proposer: testIdentity(0x0f), Sequence: 42}
	votes, leader, err := state.CastVote(
		context.Background(),
		testIdentity(0x10),
		key,
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), votes)
	assert.True(t, leader)
}

func TestWinnerStrictlyGreater(t *testing.T) {
	state := newTestState(t)
	keyA := gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 1}
	keyB := gov.ProposalKey{Proposer: testIdentity(0x02), Sequence: 1}
	mustSubmit(t, state, keyA, testProposal("a"))
	mustSubmit(t, state, keyB, testProposal("b"))

	ctx := context.Background()

	// Two votes for A
	_, leader, err := state.CastVote(ctx, testIdentity(0x10), keyA)
	require.NoError(t, err)
	assert.True(t, leader)
	_, leader, err = state.CastVote(ctx, testIdentity(0x11), keyA)
	require.NoError(t, err)
	assert.True(t, leader)

	// One vote for B does not move the winner
	_, leader, err = state.CastVote(ctx, testIdentity(0x12), keyB)
	require.NoError(t, err)
	assert.False(t, leader)
	winner, err := state.WinningProposal()
	require.NoError(t, err)
	require.NotNil(t, winner)
	assert.Equal(t, keyA, *winner)

	// A tie does not move the winner either
	_, leader, err = state.CastVote(ctx, testIdentity(0x13), keyB)
	require.NoError(t, err)
	assert.False(t, leader)
	winner, err = state.WinningProposal()
	require.NoError(t, err)
	require.NotNil(t, winner)
	assert.Equal(t, keyA, *winner)
	winningVotes, err := state.WinningVotes()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), winningVotes)

	// Pulling strictly ahead does
	_, leader, err = state.CastVote(ctx, testIdentity(0x14), keyB)
	require.NoError(t, err)
	assert.True(t, leader)
	winner, err = state.WinningProposal()
	require.NoError(t, err)
	require.NotNil(t, winner)
	assert.Equal(t, keyB, *winner)
	winningVotes, err = state.WinningVotes()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), winningVotes)
}

func TestWinnerBeforeAnyVote(t *testing.T) {
	state := newTestState(t)
	winner, err := state.WinningProposal()
	require.NoError(t, err)
	assert.Nil(t, winner)
	votes, err := state.WinningVotes()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), votes)
}

func TestFinalizeNoWinner(t *testing.T) {
	state := newTestState(t)
	// No winner before any vote, even with a registered proposal
	key := gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 1}
	mustSubmit(t, state, key, testProposal("unvoted"))
	_, err := state.Finalize(context.Background())
	require.ErrorIs(t, err, gov.ErrNoWinner)
}

func TestFinalize(t *testing.T) {
	state := newTestState(t)
	key := gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 1}
	mustSubmit(t, state, key, testProposal("winner"))
	_, _, err := state.CastVote(context.Background(), testIdentity(0x10), key)
	require.NoError(t, err)

	assetId, err := state.Finalize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), assetId)

	// Finalize does not close voting; a repeat call mints again
	assetId, err = state.Finalize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), assetId)
}

type failingMinter struct{}

func (failingMinter) MintAsset(
	_ context.Context,
	_ mint.AssetParams,
) (uint64, error) {
	return 0, errors.New("authority unavailable")
}

func TestFinalizeMintFailure(t *testing.T) {
	db, err := database.New(&database.Config{
		DataDir: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	state, err := gov.NewState(gov.StateConfig{
		Database:       db,
		SystemIdentity: testSystemIdentity,
		MintAuthority:  failingMinter{},
	})
	require.NoError(t, err)

	key := gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 1}
	mustSubmit(t, state, key, testProposal("doomed"))
	_, _, err = state.CastVote(context.Background(), testIdentity(0x10), key)
	require.NoError(t, err)

	_, err = state.Finalize(context.Background())
	require.ErrorIs(t, err, gov.ErrMintingFailure)
}

func TestVoteReserveGrowth(t *testing.T) {
	state := newTestState(t)
	key := gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 1}
	proposal := testProposal("tracked")
	mustSubmit(t, state, key, proposal)
	base := proposalCost(key, proposal)

	reserve, err := state.ReserveRequirement()
	require.NoError(t, err)
	assert.Equal(t, base, reserve)

	voter := testIdentity(0x10)
	_, _, err = state.CastVote(context.Background(), voter, key)
	require.NoError(t, err)

	// First vote allocates the counter entry and the ballot guard entry
	counterCost := uint64(
		gov.EntryFlatCost + gov.EntryByteCost*(len(types.VoteBlobKey(key.Encode()))+8),
	)
	guardCost := uint64(
		gov.EntryFlatCost + gov.EntryByteCost*(len(types.BallotBlobKey(voter.Bytes()))+len(key.Encode())),
	)
	reserve, err = state.ReserveRequirement()
	require.NoError(t, err)
	assert.Equal(t, base+counterCost+guardCost, reserve)

	// Second vote only allocates a guard entry
	voter2 := testIdentity(0x11)
	_, _, err = state.CastVote(context.Background(), voter2, key)
	require.NoError(t, err)
	guardCost2 := uint64(
		gov.EntryFlatCost + gov.EntryByteCost*(len(types.BallotBlobKey(voter2.Bytes()))+len(key.Encode())),
	)
	reserve, err = state.ReserveRequirement()
	require.NoError(t, err)
	assert.Equal(t, base+counterCost+guardCost+guardCost2, reserve)
}

func TestStateEvents(t *testing.T) {
	db, err := database.New(&database.Config{
		DataDir: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	eventBus := event.NewEventBus(nil, nil)
	defer eventBus.Stop()
	state, err := gov.NewState(gov.StateConfig{
		Database:       db,
		EventBus:       eventBus,
		SystemIdentity: testSystemIdentity,
		MintAuthority:  mint.NewLocalMinter(db, nil),
	})
	require.NoError(t, err)

	_, proposalCh := eventBus.Subscribe(gov.ProposalSubmittedEventType)
	_, voteCh := eventBus.Subscribe(gov.VoteCastEventType)
	_, mintCh := eventBus.Subscribe(gov.AssetMintedEventType)

	key := gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 1}
	proposal := testProposal("observed")
	mustSubmit(t, state, key, proposal)

	evt := <-proposalCh
	submitted, ok := evt.Data.(gov.ProposalSubmittedEvent)
	require.True(t, ok)
	assert.Equal(t, key, submitted.Key)
	assert.Equal(t, proposal, submitted.Proposal)
	assert.Equal(t, proposalCost(key, proposal), submitted.ReserveRequirement)

	voter := testIdentity(0x10)
	_, _, err = state.CastVote(context.Background(), voter, key)
	require.NoError(t, err)
	evt = <-voteCh
	vote, ok := evt.Data.(gov.VoteCastEvent)
	require.True(t, ok)
	assert.Equal(t, voter, vote.Voter)
	assert.Equal(t, key, vote.Key)
	assert.Equal(t, uint64(1), vote.Votes)
	assert.True(t, vote.Leader)

	assetId, err := state.Finalize(context.Background())
	require.NoError(t, err)
	evt = <-mintCh
	minted, ok := evt.Data.(gov.AssetMintedEvent)
	require.True(t, ok)
	assert.Equal(t, key, minted.Key)
	assert.Equal(t, assetId, minted.AssetId)
}

func TestConcurrentVotesSameProposal(t *testing.T) {
	state := newTestState(t)
	key := gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 1}
	mustSubmit(t, state, key, testProposal("contended"))

	const numVoters = 16
	var wg sync.WaitGroup
	errs := make([]error, numVoters)
	for i := range numVoters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			voter := testIdentity(byte(0x20 + i))
			_, _, errs[i] = state.CastVote(context.Background(), voter, key)
		}()
	}
	wg.Wait()
	for i, err := range errs {
		require.NoError(t, err, "voter %d", i)
	}

	count, err := state.VoteCount(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(numVoters), count)
	winningVotes, err := state.WinningVotes()
	require.NoError(t, err)
	assert.Equal(t, uint64(numVoters), winningVotes)
	winner, err := state.WinningProposal()
	require.NoError(t, err)
	require.NotNil(t, winner)
	assert.Equal(t, key, *winner)
}

func TestConcurrentVotesDisjointProposals(t *testing.T) {
	state := newTestState(t)
	ctx := context.Background()
	// Votes for unrelated proposals share no transactional state, so this
	// level of concurrency must not produce spurious conflicts
	const numProposals = 4
	const votersPerProposal = 5
	keys := make([]gov.ProposalKey, numProposals)
	for i := range numProposals {
		keys[i] = gov.ProposalKey{
			Proposer: testIdentity(byte(i + 1)),
			Sequence: uint64(i), //nolint:gosec
		}
		mustSubmit(t, state, keys[i], testProposal("p"))
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error
	for i := range numProposals {
		for j := range votersPerProposal {
			wg.Add(1)
			go func() {
				defer wg.Done()
				voter := testIdentity(byte(0x40 + i*votersPerProposal + j))
				_, _, err := state.CastVote(ctx, voter, keys[i])
				if err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}()
		}
	}
	wg.Wait()
	require.Empty(t, errs)

	// Tally conservation: every accepted ballot is counted exactly once
	var total uint64
	for i := range numProposals {
		count, err := state.VoteCount(keys[i])
		require.NoError(t, err)
		assert.Equal(t, uint64(votersPerProposal), count)
		total += count
	}
	assert.Equal(t, uint64(numProposals*votersPerProposal), total)
}

func TestProposalsListing(t *testing.T) {
	state := newTestState(t)
	key1 := gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 1}
	key2 := gov.ProposalKey{Proposer: testIdentity(0x01), Sequence: 2}
	mustSubmit(t, state, key1, testProposal("first"))
	mustSubmit(t, state, key2, testProposal("second"))

	proposals, err := state.Proposals()
	require.NoError(t, err)
	require.Len(t, proposals, 2)
	assert.Equal(t, "first", proposals[0].Name)
	assert.Equal(t, uint64(1), proposals[0].Sequence)
	assert.Equal(t, "second", proposals[1].Name)
	assert.Equal(t, uint64(2), proposals[1].Sequence)
}
