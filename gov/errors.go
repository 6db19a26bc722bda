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

import "errors"

var (
	// ErrDuplicateProposal is returned when submitting a proposal under a
	// key that is already registered
	ErrDuplicateProposal = errors.New("proposal already exists")

	// ErrInsufficientFunding is returned when the supplied funding does not
	// cover the storage reserve increase for the submission
	ErrInsufficientFunding = errors.New("insufficient funding for storage reserve")

	// ErrInvalidBeneficiary is returned when the funding payment does not
	// name the system identity as its beneficiary
	ErrInvalidBeneficiary = errors.New("funding beneficiary is not the system identity")

	// ErrNotFound is returned when looking up a proposal that does not exist
	ErrNotFound = errors.New("proposal not found")

	// ErrAlreadyVoted is returned when an account attempts to vote a
	// second time
	ErrAlreadyVoted = errors.New("account has already voted")

	// ErrNoWinner is returned by finalization when no proposal has received
	// a vote yet
	ErrNoWinner = errors.New("no winning proposal")

	// ErrMintingFailure wraps errors from the minting authority
	ErrMintingFailure = errors.New("minting failed")
)
