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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/database/types"
	"github.com/blinklabs-io/agora/event"
	"github.com/blinklabs-io/agora/mint"
	"github.com/prometheus/client_golang/prometheus"
)

// Transaction conflict retries back off linearly up to the cap. Retries are
// bounded by the caller's context rather than an attempt count, so an
// operation never fails from contention alone
const (
	txnRetryBackoff    = time.Millisecond
	maxTxnRetryBackoff = 50 * time.Millisecond
)

type StateConfig struct {
	Logger         *slog.Logger
	Database       *database.Database
	EventBus       *event.EventBus
	PromRegistry   prometheus.Registerer
	SystemIdentity Identity
	MintAuthority  mint.Authority
}

// State is the governance state machine. All mutating operations are
// atomic: they run inside a read-write database transaction and retry on
// optimistic conflict. Votes against unrelated proposals proceed in
// parallel; votes against the same proposal serialize through conflicts.
type State struct {
	logger         *slog.Logger
	db             *database.Database
	eventBus       *event.EventBus
	metrics        *stateMetrics
	systemIdentity Identity
	minter         mint.Authority
}

func NewState(cfg StateConfig) (*State, error) {
	if cfg.Database == nil {
		return nil, errors.New("no database provided")
	}
	if cfg.MintAuthority == nil {
		return nil, errors.New("no mint authority provided")
	}
	s := &State{
		logger:         cfg.Logger,
		db:             cfg.Database,
		eventBus:       cfg.EventBus,
		systemIdentity: cfg.SystemIdentity,
		minter:         cfg.MintAuthority,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.PromRegistry != nil {
		s.initMetrics(cfg.PromRegistry)
		// Restore the winner gauge from persisted state
		if votes, err := s.WinningVotes(); err == nil {
			s.metrics.winningVotes.Set(float64(votes))
		}
	}
	return s, nil
}

// runTxn executes fn in a read-write transaction, retrying on optimistic
// conflict until it commits or the context ends
func (s *State) runTxn(ctx context.Context, fn func(*database.Txn) error) error {
	return s.retryTxn(ctx, func() *database.Txn {
		return s.db.Transaction(true)
	}, fn)
}

func (s *State) retryTxn(
	ctx context.Context,
	newTxn func() *database.Txn,
	fn func(*database.Txn) error,
) error {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := newTxn().Do(fn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, types.ErrTxnConflict) {
			return err
		}
		if s.metrics != nil {
			s.metrics.txnConflicts.Inc()
		}
		s.logger.Debug(
			"transaction conflict, retrying",
			"component", "gov",
			"attempt", attempt,
		)
		delay := min(
			time.Duration(attempt)*txnRetryBackoff,
			maxTxnRetryBackoff,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// applyReserveDelta records storage growth in the reserve requirement
// singleton. It runs in its own transaction so that operations touching
// unrelated records never collide on the shared counter
func (s *State) applyReserveDelta(
	ctx context.Context,
	delta uint64,
) (uint64, error) {
	var newReserve uint64
	if delta == 0 {
		return 0, nil
	}
	err := s.retryTxn(ctx, func() *database.Txn {
		return s.db.BlobTxn(true)
	}, func(txn *database.Txn) error {
		reserve, err := s.db.GetReserveRequirement(txn)
		if err != nil {
			return err
		}
		newReserve = reserve + delta
		return s.db.SetReserveRequirement(txn, newReserve)
	})
	if err != nil {
		return 0, err
	}
	return newReserve, nil
}

// SubmitProposal registers a new proposal under the given key. The funding
// proof must name the system identity as beneficiary and cover the storage
// reserve increase for the new record. On failure nothing is written
func (s *State) SubmitProposal(
	ctx context.Context,
	key ProposalKey,
	proposal Proposal,
	funding FundingProof,
) error {
	if funding.Beneficiary != s.systemIdentity {
		return ErrInvalidBeneficiary
	}
	encodedKey := key.Encode()
	value := proposal.Encode()
	// The funding check needs only the marginal reserve increase, which is a
	// function of the new entry alone
	cost := entryReserveCost(types.ProposalBlobKey(encodedKey), value)
	if funding.Amount < cost {
		return ErrInsufficientFunding
	}
	err := s.runTxn(ctx, func(txn *database.Txn) error {
		exists, err := s.db.ProposalBlobExists(txn, encodedKey)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateProposal
		}
		if err := s.db.SetProposalBlob(txn, encodedKey, value); err != nil {
			return err
		}
		return s.db.SetProposal(
			txn,
			&models.Proposal{
				Proposer:     key.Proposer.Bytes(),
				Sequence:     key.Sequence,
				Url:          proposal.Url,
				MetadataHash: proposal.MetadataHash[:],
				Name:         proposal.Name,
				UnitName:     proposal.UnitName,
				Reserve:      proposal.Reserve.Bytes(),
				AddedAt:      time.Now().UnixMilli(),
			},
		)
	})
	if err != nil {
		return err
	}
	newReserve, err := s.applyReserveDelta(ctx, cost)
	if err != nil {
		// The proposal is already durable; losing the accounting write only
		// under-counts the tracked requirement
		s.logger.Error(
			"failed to record reserve growth",
			"component", "gov",
			"error", err,
		)
	}
	if s.metrics != nil {
		s.metrics.proposalsTotal.Inc()
	}
	s.logger.Info(
		"accepted proposal",
		"component", "gov",
		"proposer", key.Proposer.String(),
		"sequence", key.Sequence,
		"name", proposal.Name,
	)
	if s.eventBus != nil {
		s.eventBus.Publish(
			ProposalSubmittedEventType,
			event.NewEvent(
				ProposalSubmittedEventType,
				ProposalSubmittedEvent{
					Key:                key,
					Proposal:           proposal,
					ReserveRequirement: newReserve,
				},
			),
		)
	}
	return nil
}

// CastVote records a vote by the given account for the given proposal key.
// Each account votes at most once for the lifetime of the deployment. The
// vote counter is created lazily on first vote; the winner pointer moves
// only on a strictly greater count, so ties keep the earlier leader.
// Returns the proposal's tally after this vote and whether it took the lead
func (s *State) CastVote(
	ctx context.Context,
	voter Identity,
	key ProposalKey,
) (uint64, bool, error) {
	encodedKey := key.Encode()
	var votes uint64
	var leader bool
	var reserveDelta uint64
	err := s.runTxn(ctx, func(txn *database.Txn) error {
		votes = 0
		leader = false
		reserveDelta = 0
		voted, err := s.db.BallotExists(txn, voter.Bytes())
		if err != nil {
			return err
		}
		if voted {
			return ErrAlreadyVoted
		}
		count, counterExists, err := s.db.GetVoteCount(txn, encodedKey)
		if err != nil {
			return err
		}
		count++
		if err := s.db.SetVoteCount(txn, encodedKey, count); err != nil {
			return err
		}
		// Measure storage growth for the reserve requirement. Vote-path
		// storage is not funded by the voter, but the requirement itself
		// stays accurate. The shared counter is written after commit so
		// that votes for unrelated proposals do not conflict on it
		if !counterExists {
			reserveDelta += entryReserveCost(
				types.VoteBlobKey(encodedKey),
				types.Uint64ToBytes(count),
			)
		}
		reserveDelta += entryReserveCost(
			types.BallotBlobKey(voter.Bytes()),
			encodedKey,
		)
		winning, err := s.db.GetWinningVotes(txn)
		if err != nil {
			return err
		}
		if count > winning {
			if err := s.db.SetWinningVotes(txn, count); err != nil {
				return err
			}
			if err := s.db.SetWinningProposal(txn, encodedKey); err != nil {
				return err
			}
			leader = true
		}
		if err := s.db.SetBallot(
			txn,
			&models.Ballot{
				Voter:    voter.Bytes(),
				Proposer: key.Proposer.Bytes(),
				Sequence: key.Sequence,
				Votes:    count,
			},
		); err != nil {
			return err
		}
		// Guard entry goes in last
		if err := s.db.SetBallotGuard(txn, voter.Bytes(), encodedKey); err != nil {
			return err
		}
		votes = count
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	if _, err := s.applyReserveDelta(ctx, reserveDelta); err != nil {
		// The ballot is already durable; losing the accounting write only
		// under-counts the tracked requirement
		s.logger.Error(
			"failed to record reserve growth",
			"component", "gov",
			"error", err,
		)
	}
	if s.metrics != nil {
		s.metrics.votesTotal.Inc()
		if leader {
			s.metrics.winningVotes.Set(float64(votes))
		}
	}
	s.logger.Info(
		"accepted vote",
		"component", "gov",
		"voter", voter.String(),
		"proposer", key.Proposer.String(),
		"sequence", key.Sequence,
		"votes", votes,
		"leader", leader,
	)
	if s.eventBus != nil {
		s.eventBus.Publish(
			VoteCastEventType,
			event.NewEvent(
				VoteCastEventType,
				VoteCastEvent{
					Voter:  voter,
					Key:    key,
					Votes:  votes,
					Leader: leader,
				},
			),
		)
	}
	return votes, leader, nil
}

// Finalize mints the current winning proposal through the minting authority
// and returns the assigned asset identifier. The winner pointer is read-only
// here: finalizing does not close voting, and a later winner change followed
// by another call mints the new winner
func (s *State) Finalize(ctx context.Context) (uint64, error) {
	var winnerKey ProposalKey
	var proposal Proposal
	txn := s.db.BlobTxn(false)
	err := txn.Do(func(txn *database.Txn) error {
		winnerBytes, err := s.db.GetWinningProposal(txn)
		if err != nil {
			return err
		}
		if len(winnerBytes) == 0 {
			return ErrNoWinner
		}
		winnerKey, err = DecodeProposalKey(winnerBytes)
		if err != nil {
			return err
		}
		blobVal, err := s.db.GetProposalBlob(txn, winnerBytes)
		if err != nil {
			if errors.Is(err, types.ErrBlobKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		proposal, err = DecodeProposal(blobVal)
		return err
	})
	if err != nil {
		return 0, err
	}
	assetId, err := s.minter.MintAsset(
		ctx,
		mint.AssetParams{
			Name:         proposal.Name,
			UnitName:     proposal.UnitName,
			Url:          proposal.Url,
			MetadataHash: proposal.MetadataHash[:],
			Reserve:      proposal.Reserve.Bytes(),
			Total:        1,
		},
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMintingFailure, err)
	}
	if s.metrics != nil {
		s.metrics.mintsTotal.Inc()
	}
	s.logger.Info(
		"minted winning proposal",
		"component", "gov",
		"proposer", winnerKey.Proposer.String(),
		"sequence", winnerKey.Sequence,
		"asset_id", assetId,
	)
	if s.eventBus != nil {
		s.eventBus.Publish(
			AssetMintedEventType,
			event.NewEvent(
				AssetMintedEventType,
				AssetMintedEvent{
					Key:     winnerKey,
					AssetId: assetId,
				},
			),
		)
	}
	return assetId, nil
}

// GetProposal returns the registered proposal for the given key
func (s *State) GetProposal(key ProposalKey) (Proposal, error) {
	var ret Proposal
	txn := s.db.BlobTxn(false)
	defer txn.Release()
	blobVal, err := s.db.GetProposalBlob(txn, key.Encode())
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return ret, ErrNotFound
		}
		return ret, err
	}
	return DecodeProposal(blobVal)
}

// Proposals returns all registered proposals in submission order from the
// query index
func (s *State) Proposals() ([]*models.Proposal, error) {
	txn := s.db.MetadataTxn(false)
	defer txn.Release()
	return s.db.GetProposals(txn)
}

// VoteCount returns the current tally for the given proposal key. The
// count is zero for proposals that have not received a vote, whether or
// not they exist
func (s *State) VoteCount(key ProposalKey) (uint64, error) {
	txn := s.db.BlobTxn(false)
	defer txn.Release()
	count, _, err := s.db.GetVoteCount(txn, key.Encode())
	return count, err
}

// HasVoted reports whether the given account has cast its vote
func (s *State) HasVoted(voter Identity) (bool, error) {
	txn := s.db.BlobTxn(false)
	defer txn.Release()
	return s.db.BallotExists(txn, voter.Bytes())
}

// WinningProposal returns the key of the current winner, or nil when no
// vote has been cast yet
func (s *State) WinningProposal() (*ProposalKey, error) {
	txn := s.db.BlobTxn(false)
	defer txn.Release()
	winnerBytes, err := s.db.GetWinningProposal(txn)
	if err != nil {
		return nil, err
	}
	if len(winnerBytes) == 0 {
		return nil, nil
	}
	key, err := DecodeProposalKey(winnerBytes)
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// WinningVotes returns the vote count held by the current winner
func (s *State) WinningVotes() (uint64, error) {
	txn := s.db.BlobTxn(false)
	defer txn.Release()
	return s.db.GetWinningVotes(txn)
}

// ReserveRequirement returns the cumulative storage reserve requirement
func (s *State) ReserveRequirement() (uint64, error) {
	txn := s.db.BlobTxn(false)
	defer txn.Release()
	return s.db.GetReserveRequirement(txn)
}

// SystemIdentity returns the identity that funding payments must name
func (s *State) SystemIdentity() Identity {
	return s.systemIdentity
}
