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

package database_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.New(&database.Config{
		DataDir: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func testProposalKey(fill byte) []byte {
	key := bytes.Repeat([]byte{fill}, 32)
	return append(key, 0, 0, 0, 0, 0, 0, 0, 1)
}

func TestProposalBlobRoundTrip(t *testing.T) {
	db := newTestDatabase(t)
	key := testProposalKey(0x01)
	value := []byte("proposal record")

	txn := db.BlobTxn(true)
	err := txn.Do(func(txn *database.Txn) error {
		exists, err := db.ProposalBlobExists(txn, key)
		if err != nil {
			return err
		}
		assert.False(t, exists)
		return db.SetProposalBlob(txn, key, value)
	})
	require.NoError(t, err)

	txn = db.BlobTxn(false)
	defer txn.Release()
	exists, err := db.ProposalBlobExists(txn, key)
	require.NoError(t, err)
	assert.True(t, exists)
	got, err := db.GetProposalBlob(txn, key)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestVoteCountLazyInit(t *testing.T) {
	db := newTestDatabase(t)
	key := testProposalKey(0x01)

	txn := db.BlobTxn(false)
	count, initialized, err := db.GetVoteCount(txn, key)
	txn.Release()
	require.NoError(t, err)
	assert.False(t, initialized)
	assert.Equal(t, uint64(0), count)

	txn = db.BlobTxn(true)
	err = txn.Do(func(txn *database.Txn) error {
		return db.SetVoteCount(txn, key, 3)
	})
	require.NoError(t, err)

	txn = db.BlobTxn(false)
	defer txn.Release()
	count, initialized, err = db.GetVoteCount(txn, key)
	require.NoError(t, err)
	assert.True(t, initialized)
	assert.Equal(t, uint64(3), count)
}

func TestBallotGuard(t *testing.T) {
	db := newTestDatabase(t)
	voter := bytes.Repeat([]byte{0x10}, 32)
	key := testProposalKey(0x01)

	txn := db.BlobTxn(false)
	exists, err := db.BallotExists(txn, voter)
	txn.Release()
	require.NoError(t, err)
	assert.False(t, exists)

	txn = db.BlobTxn(true)
	err = txn.Do(func(txn *database.Txn) error {
		return db.SetBallotGuard(txn, voter, key)
	})
	require.NoError(t, err)

	txn = db.BlobTxn(false)
	defer txn.Release()
	exists, err = db.BallotExists(txn, voter)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWinnerSingletons(t *testing.T) {
	db := newTestDatabase(t)

	txn := db.BlobTxn(false)
	votes, err := db.GetWinningVotes(txn)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), votes)
	winner, err := db.GetWinningProposal(txn)
	require.NoError(t, err)
	assert.Nil(t, winner)
	txn.Release()

	key := testProposalKey(0x01)
	txn = db.BlobTxn(true)
	err = txn.Do(func(txn *database.Txn) error {
		if err := db.SetWinningVotes(txn, 5); err != nil {
			return err
		}
		return db.SetWinningProposal(txn, key)
	})
	require.NoError(t, err)

	txn = db.BlobTxn(false)
	defer txn.Release()
	votes, err = db.GetWinningVotes(txn)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), votes)
	winner, err = db.GetWinningProposal(txn)
	require.NoError(t, err)
	assert.Equal(t, key, winner)
}

func TestReserveRequirement(t *testing.T) {
	db := newTestDatabase(t)

	txn := db.BlobTxn(false)
	reserve, err := db.GetReserveRequirement(txn)
	txn.Release()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), reserve)

	txn = db.BlobTxn(true)
	err = txn.Do(func(txn *database.Txn) error {
		return db.SetReserveRequirement(txn, 12900)
	})
	require.NoError(t, err)

	txn = db.BlobTxn(false)
	defer txn.Release()
	reserve, err = db.GetReserveRequirement(txn)
	require.NoError(t, err)
	assert.Equal(t, uint64(12900), reserve)
}

func TestTxnRollbackOnError(t *testing.T) {
	db := newTestDatabase(t)
	key := testProposalKey(0x01)
	testErr := errors.New("deliberate failure")

	txn := db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if err := db.SetProposalBlob(txn, key, []byte("doomed")); err != nil {
			return err
		}
		if err := db.SetProposal(txn, &models.Proposal{
			Proposer: key[:32],
			Sequence: 1,
			Url:      "ipfs://doomed",
			Name:     "Doomed",
			UnitName: "DOOM",
		}); err != nil {
			return err
		}
		return testErr
	})
	require.ErrorIs(t, err, testErr)

	// Neither store should have the writes
	txn = db.Transaction(false)
	defer txn.Release()
	exists, err := db.ProposalBlobExists(txn, key)
	require.NoError(t, err)
	assert.False(t, exists)
	proposals, err := db.GetProposals(txn)
	require.NoError(t, err)
	assert.Empty(t, proposals)
}

func TestProposalIndex(t *testing.T) {
	db := newTestDatabase(t)
	proposer := bytes.Repeat([]byte{0x01}, 32)

	txn := db.MetadataTxn(true)
	err := txn.Do(func(txn *database.Txn) error {
		for seq := uint64(1); seq <= 3; seq++ {
			if err := db.SetProposal(txn, &models.Proposal{
				Proposer: proposer,
				Sequence: seq,
				Url:      "ipfs://test",
				Name:     "Test",
				UnitName: "TST",
			}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	txn = db.MetadataTxn(false)
	defer txn.Release()
	proposal, err := db.GetProposal(txn, proposer, 2)
	require.NoError(t, err)
	require.NotNil(t, proposal)
	assert.Equal(t, uint64(2), proposal.Sequence)

	proposals, err := db.GetProposals(txn)
	require.NoError(t, err)
	assert.Len(t, proposals, 3)
}

func TestBallotIndex(t *testing.T) {
	db := newTestDatabase(t)
	voter := bytes.Repeat([]byte{0x10}, 32)
	proposer := bytes.Repeat([]byte{0x01}, 32)

	txn := db.MetadataTxn(true)
	err := txn.Do(func(txn *database.Txn) error {
		return db.SetBallot(txn, &models.Ballot{
			Voter:    voter,
			Proposer: proposer,
			Sequence: 1,
			Votes:    1,
		})
	})
	require.NoError(t, err)

	txn = db.MetadataTxn(false)
	defer txn.Release()
	ballot, err := db.GetBallot(txn, voter)
	require.NoError(t, err)
	require.NotNil(t, ballot)
	assert.Equal(t, proposer, ballot.Proposer)
	assert.Equal(t, uint64(1), ballot.Votes)
	count, err := db.GetBallotCount(txn)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dataDir := t.TempDir()
	key := testProposalKey(0x01)
	value := []byte("durable proposal")

	db, err := database.New(&database.Config{
		DataDir: dataDir,
	})
	require.NoError(t, err)
	txn := db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		if err := db.SetProposalBlob(txn, key, value); err != nil {
			return err
		}
		return db.SetProposal(txn, &models.Proposal{
			Proposer: key[:32],
			Sequence: 1,
			Url:      "ipfs://durable",
			Name:     "Durable",
			UnitName: "DUR",
		})
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopen also verifies commit timestamp consistency between stores
	db, err = database.New(&database.Config{
		DataDir: dataDir,
	})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()
	txn = db.Transaction(false)
	defer txn.Release()
	got, err := db.GetProposalBlob(txn, key)
	require.NoError(t, err)
	assert.Equal(t, value, got)
	proposal, err := db.GetProposal(txn, key[:32], 1)
	require.NoError(t, err)
	require.NotNil(t, proposal)
	assert.Equal(t, "Durable", proposal.Name)
}

func TestMintedAssetIds(t *testing.T) {
	db := newTestDatabase(t)

	for i := 1; i <= 2; i++ {
		asset := &models.MintedAsset{
			Name:         "Winner",
			UnitName:     "WIN",
			Url:          "ipfs://winner",
			MetadataHash: bytes.Repeat([]byte{0x01}, 32),
			Reserve:      bytes.Repeat([]byte{0x99}, 32),
			Total:        1,
		}
		txn := db.MetadataTxn(true)
		err := txn.Do(func(txn *database.Txn) error {
			return db.AddMintedAsset(txn, asset)
		})
		require.NoError(t, err)
		assert.Equal(t, uint(i), asset.ID) //nolint:gosec
	}

	txn := db.MetadataTxn(false)
	defer txn.Release()
	assets, err := db.GetMintedAssets(txn)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, uint(1), assets[0].ID)
	assert.Equal(t, uint(2), assets[1].ID)
}

// TestInterleavedDisjointTxns interleaves two read-write transactions whose
// read and write sets each touch only their own proposal's entries. Neither
// commit may observe a conflict from the other.
func TestInterleavedDisjointTxns(t *testing.T) {
	db := newTestDatabase(t)
	keyA := testProposalKey(0x01)
	keyB := testProposalKey(0x02)
	voterA := bytes.Repeat([]byte{0xa1}, 32)
	voterB := bytes.Repeat([]byte{0xb2}, 32)

	txnA := db.BlobTxn(true)
	txnB := db.BlobTxn(true)

	// Each transaction performs a vote's storage footprint for its own
	// proposal: guard check, count read, count write, guard write
	exists, err := db.BallotExists(txnA, voterA)
	require.NoError(t, err)
	require.False(t, exists)
	count, _, err := db.GetVoteCount(txnA, keyA)
	require.NoError(t, err)
	require.NoError(t, db.SetVoteCount(txnA, keyA, count+1))
	require.NoError(t, db.SetBallotGuard(txnA, voterA, keyA))

	exists, err = db.BallotExists(txnB, voterB)
	require.NoError(t, err)
	require.False(t, exists)
	count, _, err = db.GetVoteCount(txnB, keyB)
	require.NoError(t, err)
	require.NoError(t, db.SetVoteCount(txnB, keyB, count+1))
	require.NoError(t, db.SetBallotGuard(txnB, voterB, keyB))

	require.NoError(t, txnA.Commit())
	require.NoError(t, txnB.Commit())

	txn := db.BlobTxn(false)
	defer txn.Release()
	for _, key := range [][]byte{keyA, keyB} {
		count, initialized, err := db.GetVoteCount(txn, key)
		require.NoError(t, err)
		assert.True(t, initialized)
		assert.Equal(t, uint64(1), count)
	}
}

func TestCountProposalBlobs(t *testing.T) {
	db := newTestDatabase(t)

	txn := db.BlobTxn(false)
	count, err := db.CountProposalBlobs(txn)
	txn.Release()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	txn = db.BlobTxn(true)
	err = txn.Do(func(txn *database.Txn) error {
		for i := byte(1); i <= 3; i++ {
			err := db.SetProposalBlob(txn, testProposalKey(i), []byte("record"))
			if err != nil {
				return err
			}
		}
		// Entries under other prefixes are not counted
		return db.SetVoteCount(txn, testProposalKey(0x01), 1)
	})
	require.NoError(t, err)

	txn = db.BlobTxn(false)
	defer txn.Release()
	count, err = db.CountProposalBlobs(txn)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
