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

// Identities and hashes are hex-encoded strings on the wire

type RootResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type HealthResponse struct {
	IsHealthy bool `json:"is_healthy"`
}

type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

type FundingRequest struct {
	Beneficiary string `json:"beneficiary"`
	Amount      uint64 `json:"amount"`
}

type SubmitProposalRequest struct {
	Proposer     string         `json:"proposer"`
	Sequence     uint64         `json:"sequence"`
	Url          string         `json:"url"`
	MetadataHash string         `json:"metadata_hash"`
	Name         string         `json:"name"`
	UnitName     string         `json:"unit_name"`
	Reserve      string         `json:"reserve"`
	Funding      FundingRequest `json:"funding"`
}

type ProposalResponse struct {
	Proposer     string `json:"proposer"`
	Sequence     uint64 `json:"sequence"`
	Url          string `json:"url"`
	MetadataHash string `json:"metadata_hash"`
	Name         string `json:"name"`
	UnitName     string `json:"unit_name"`
	Reserve      string `json:"reserve"`
	Votes        uint64 `json:"votes"`
}

type SubmitProposalResponse struct {
	Proposer string `json:"proposer"`
	Sequence uint64 `json:"sequence"`
}

type CastVoteRequest struct {
	Voter    string `json:"voter"`
	Proposer string `json:"proposer"`
	Sequence uint64 `json:"sequence"`
}

type CastVoteResponse struct {
	Votes  uint64 `json:"votes"`
	Leader bool   `json:"leader"`
}

type WinnerResponse struct {
	Proposer string `json:"proposer"`
	Sequence uint64 `json:"sequence"`
	Votes    uint64 `json:"votes"`
}

type FinalizeResponse struct {
	AssetId uint64 `json:"asset_id"`
}
