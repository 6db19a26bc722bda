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

// GetBallot returns the ballot index row for the given voter, or nil when
// the voter has not voted
func (d *MetadataStoreSqlite) GetBallot(
	voter []byte,
	txn *gorm.DB,
) (*models.Ballot, error) {
	if txn == nil {
		txn = d.db
	}
	var tmpBallot models.Ballot
	result := txn.Where("voter = ?", voter).First(&tmpBallot)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &tmpBallot, nil
}

// GetBallotCount returns the number of distinct voters that have voted
func (d *MetadataStoreSqlite) GetBallotCount(
	txn *gorm.DB,
) (int64, error) {
	if txn == nil {
		txn = d.db
	}
	var count int64
	result := txn.Model(&models.Ballot{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// SetBallot creates a ballot index row
func (d *MetadataStoreSqlite) SetBallot(
	ballot *models.Ballot,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.db
	}
	if result := txn.Create(ballot); result.Error != nil {
		return result.Error
	}
	return nil
}
