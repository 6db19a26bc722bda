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
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
)

const (
	// IdentitySize is the size of an account identity in bytes
	IdentitySize = 32

	// ProposalKeySize is the size of an encoded proposal key in bytes
	ProposalKeySize = IdentitySize + 8

	// MetadataHashSize is the size of a proposal metadata hash in bytes
	MetadataHashSize = 32
)

// Identity is an opaque account identifier
type Identity [IdentitySize]byte

var ErrInvalidIdentitySize = errors.New("invalid identity size")

// NewIdentityFromBytes converts a byte slice into an Identity
func NewIdentityFromBytes(data []byte) (Identity, error) {
	var ret Identity
	if len(data) != IdentitySize {
		return ret, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidIdentitySize,
			IdentitySize,
			len(data),
		)
	}
	copy(ret[:], data)
	return ret, nil
}

// NewIdentityFromHex converts a hex string into an Identity
func NewIdentityFromHex(s string) (Identity, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return Identity{}, err
	}
	return NewIdentityFromBytes(data)
}

func (i Identity) Bytes() []byte {
	return i[:]
}

func (i Identity) String() string {
	return hex.EncodeToString(i[:])
}

// ProposalKey identifies a proposal by its proposer and a caller-supplied
// sequence number. Uniqueness holds only for the pair; sequence numbers are
// not globally unique
type ProposalKey struct {
	Proposer Identity
	Sequence uint64
}

var ErrInvalidProposalKeySize = errors.New("invalid proposal key size")

// Encode returns the binary form of the key: proposer identity followed by
// the big-endian sequence number
func (k ProposalKey) Encode() []byte {
	seq := make([]byte, 8)
	binary.BigEndian.PutUint64(seq, k.Sequence)
	return slices.Concat(k.Proposer[:], seq)
}

func (k ProposalKey) String() string {
	return hex.EncodeToString(k.Encode())
}

// DecodeProposalKey parses the binary form of a proposal key
func DecodeProposalKey(data []byte) (ProposalKey, error) {
	var ret ProposalKey
	if len(data) != ProposalKeySize {
		return ret, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidProposalKeySize,
			ProposalKeySize,
			len(data),
		)
	}
	copy(ret.Proposer[:], data[:IdentitySize])
	ret.Sequence = binary.BigEndian.Uint64(data[IdentitySize:])
	return ret, nil
}

// Proposal holds the creation parameters for the asset the proposal would
// mint if it wins. Proposals are immutable once registered
type Proposal struct {
	Url          string
	MetadataHash [MetadataHashSize]byte
	Name         string
	UnitName     string
	Reserve      Identity
}

var ErrInvalidProposalEncoding = errors.New("invalid proposal encoding")

// Encode returns the binary form of the proposal: length-prefixed strings
// with the fixed-size hash and reserve identity in between
func (p Proposal) Encode() []byte {
	buf := make([]byte, 0, 2+len(p.Url)+MetadataHashSize+2+len(p.Name)+2+len(p.UnitName)+IdentitySize)
	buf = appendLenPrefixed(buf, p.Url)
	buf = append(buf, p.MetadataHash[:]...)
	buf = appendLenPrefixed(buf, p.Name)
	buf = appendLenPrefixed(buf, p.UnitName)
	buf = append(buf, p.Reserve[:]...)
	return buf
}

// DecodeProposal parses the binary form of a proposal
func DecodeProposal(data []byte) (Proposal, error) {
	var ret Proposal
	url, rest, err := readLenPrefixed(data)
	if err != nil {
		return ret, err
	}
	ret.Url = url
	if len(rest) < MetadataHashSize {
		return ret, ErrInvalidProposalEncoding
	}
	copy(ret.MetadataHash[:], rest[:MetadataHashSize])
	rest = rest[MetadataHashSize:]
	name, rest, err := readLenPrefixed(rest)
	if err != nil {
		return ret, err
	}
	ret.Name = name
	unitName, rest, err := readLenPrefixed(rest)
	if err != nil {
		return ret, err
	}
	ret.UnitName = unitName
	if len(rest) != IdentitySize {
		return ret, ErrInvalidProposalEncoding
	}
	copy(ret.Reserve[:], rest)
	return ret, nil
}

func appendLenPrefixed(buf []byte, s string) []byte {
	tmp := make([]byte, 2)
	// Caller-provided strings are bounded well below uint16 range by the
	// API layer, but clamp to be safe
	l := min(len(s), 0xffff)
	binary.BigEndian.PutUint16(tmp, uint16(l)) //nolint:gosec
	buf = append(buf, tmp...)
	buf = append(buf, s[:l]...)
	return buf
}

func readLenPrefixed(data []byte) (string, []byte, error) {
	if len(data) < 2 {
		return "", nil, ErrInvalidProposalEncoding
	}
	l := int(binary.BigEndian.Uint16(data))
	data = data[2:]
	if len(data) < l {
		return "", nil, ErrInvalidProposalEncoding
	}
	return string(data[:l]), data[l:], nil
}
