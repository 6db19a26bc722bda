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

package sqlite

import (
	"errors"

	"github.com/blinklabs-io/agora/database/models"
	"gorm.io/gorm"
)

// GetProposal returns the proposal index row for the given proposer and
// sequence number, or nil when absent
func (d *MetadataStoreSqlite) GetProposal(
	proposer []byte,
	sequence uint64,
	txn *gorm.DB,
) (*models.Proposal, error) {
	if txn == nil {
		txn = d.db
	}
	var tmpProposal models.Proposal
	result := txn.
		Where("proposer = ? AND sequence = ?", proposer, sequence).
		First(&tmpProposal)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &tmpProposal, nil
}

// GetProposals returns all registered proposals in submission order
func (d *MetadataStoreSqlite) GetProposals(
	txn *gorm.DB,
) ([]*models.Proposal, error) {
	if txn == nil {
		txn = d.db
	}
	var tmpProposals []*models.Proposal
	result := txn.Order("id").Find(&tmpProposals)
	if result.Error != nil {
		return nil, result.Error
	}
	return tmpProposals, nil
}

// SetProposal creates a proposal index row
func (d *MetadataStoreSqlite) SetProposal(
	proposal *models.Proposal,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.db
	}
	if result := txn.Create(proposal); result.Error != nil {
		return result.Error
	}
	return nil
}
