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

package api

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/blinklabs-io/agora/gov"
	"github.com/blinklabs-io/agora/internal/version"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(
	w http.ResponseWriter,
	status int,
	v any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response
func writeError(
	w http.ResponseWriter,
	status int,
	message string,
) {
	writeJSON(w, status, ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	})
}

// writeGovError maps governance sentinel errors onto HTTP status codes
func (a *Api) writeGovError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gov.ErrDuplicateProposal):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, gov.ErrAlreadyVoted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, gov.ErrInsufficientFunding):
		writeError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, gov.ErrInvalidBeneficiary):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, gov.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gov.ErrNoWinner):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gov.ErrMintingFailure):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		a.logger.Error("request failed", "error", err)
		writeError(
			w,
			http.StatusInternalServerError,
			"internal server error",
		)
	}
}

// handleRoot handles GET / and returns API metadata
func (a *Api) handleRoot(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, RootResponse{
		Name:    "agora",
		Version: version.GetVersionString(),
	})
}

// handleHealth handles GET /health
func (a *Api) handleHealth(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, HealthResponse{
		IsHealthy: true,
	})
}

// handleSubmitProposal handles POST /api/v0/proposals
func (a *Api) handleSubmitProposal(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req SubmitProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	proposer, err := gov.NewIdentityFromHex(req.Proposer)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid proposer identity")
		return
	}
	reserve, err := gov.NewIdentityFromHex(req.Reserve)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reserve identity")
		return
	}
	beneficiary, err := gov.NewIdentityFromHex(req.Funding.Beneficiary)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid funding beneficiary")
		return
	}
	metadataHash, err := hex.DecodeString(req.MetadataHash)
	if err != nil || len(metadataHash) != gov.MetadataHashSize {
		writeError(w, http.StatusBadRequest, "invalid metadata hash")
		return
	}
	key := gov.ProposalKey{
		Proposer: proposer,
		Sequence: req.Sequence,
	}
	proposal := gov.Proposal{
		Url:      req.Url,
		Name:     req.Name,
		UnitName: req.UnitName,
		Reserve:  reserve,
	}
	copy(proposal.MetadataHash[:], metadataHash)
	err = a.state.SubmitProposal(
		r.Context(),
		key,
		proposal,
		gov.FundingProof{
			Beneficiary: beneficiary,
			Amount:      req.Funding.Amount,
		},
	)
	if err != nil {
		a.writeGovError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, SubmitProposalResponse{
		Proposer: key.Proposer.String(),
		Sequence: key.Sequence,
	})
}

// handleListProposals handles GET /api/v0/proposals
func (a *Api) handleListProposals(
	w http.ResponseWriter,
	_ *http.Request,
) {
	proposals, err := a.state.Proposals()
	if err != nil {
		a.writeGovError(w, err)
		return
	}
	ret := make([]ProposalResponse, 0, len(proposals))
	for _, p := range proposals {
		proposer, err := gov.NewIdentityFromBytes(p.Proposer)
		if err != nil {
			a.writeGovError(w, err)
			return
		}
		votes, err := a.state.VoteCount(
			gov.ProposalKey{
				Proposer: proposer,
				Sequence: p.Sequence,
			},
		)
		if err != nil {
			a.writeGovError(w, err)
			return
		}
		ret = append(ret, ProposalResponse{
			Proposer:     proposer.String(),
			Sequence:     p.Sequence,
			Url:          p.Url,
			MetadataHash: hex.EncodeToString(p.MetadataHash),
			Name:         p.Name,
			UnitName:     p.UnitName,
			Reserve:      hex.EncodeToString(p.Reserve),
			Votes:        votes,
		})
	}
	writeJSON(w, http.StatusOK, ret)
}

// handleGetProposal handles GET /api/v0/proposals/{proposer}/{sequence}
func (a *Api) handleGetProposal(
	w http.ResponseWriter,
	r *http.Request,
) {
	proposer, err := gov.NewIdentityFromHex(r.PathValue("proposer"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid proposer identity")
		return
	}
	sequence, err := strconv.ParseUint(r.PathValue("sequence"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sequence number")
		return
	}
	key := gov.ProposalKey{
		Proposer: proposer,
		Sequence: sequence,
	}
	proposal, err := a.state.GetProposal(key)
	if err != nil {
		a.writeGovError(w, err)
		return
	}
	votes, err := a.state.VoteCount(key)
	if err != nil {
		a.writeGovError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProposalResponse{
		Proposer:     key.Proposer.String(),
		Sequence:     key.Sequence,
		Url:          proposal.Url,
		MetadataHash: hex.EncodeToString(proposal.MetadataHash[:]),
		Name:         proposal.Name,
		UnitName:     proposal.UnitName,
		Reserve:      proposal.Reserve.String(),
		Votes:        votes,
	})
}

// handleCastVote handles POST /api/v0/votes
func (a *Api) handleCastVote(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	voter, err := gov.NewIdentityFromHex(req.Voter)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid voter identity")
		return
	}
	proposer, err := gov.NewIdentityFromHex(req.Proposer)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid proposer identity")
		return
	}
	votes, leader, err := a.state.CastVote(
		r.Context(),
		voter,
		gov.ProposalKey{
			Proposer: proposer,
			Sequence: req.Sequence,
		},
	)
	if err != nil {
		a.writeGovError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CastVoteResponse{
		Votes:  votes,
		Leader: leader,
	})
}

// handleWinner handles GET /api/v0/winner
func (a *Api) handleWinner(
	w http.ResponseWriter,
	_ *http.Request,
) {
	key, err := a.state.WinningProposal()
	if err != nil {
		a.writeGovError(w, err)
		return
	}
	if key == nil {
		a.writeGovError(w, gov.ErrNoWinner)
		return
	}
	votes, err := a.state.WinningVotes()
	if err != nil {
		a.writeGovError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, WinnerResponse{
		Proposer: key.Proposer.String(),
		Sequence: key.Sequence,
		Votes:    votes,
	})
}

// handleFinalize handles POST /api/v0/finalize
func (a *Api) handleFinalize(
	w http.ResponseWriter,
	r *http.Request,
) {
	assetId, err := a.state.Finalize(r.Context())
	if err != nil {
		a.writeGovError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, FinalizeResponse{
		AssetId: assetId,
	})
}
