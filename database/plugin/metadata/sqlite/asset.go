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
	"github.com/blinklabs-io/agora/database/models"
	"gorm.io/gorm"
)

// AddMintedAsset records a newly issued asset. The row ID is assigned by
// the database and becomes the asset identifier
func (d *MetadataStoreSqlite) AddMintedAsset(
	asset *models.MintedAsset,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.db
	}
	if result := txn.Create(asset); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetMintedAssets returns all issued assets in mint order
func (d *MetadataStoreSqlite) GetMintedAssets(
	txn *gorm.DB,
) ([]*models.MintedAsset, error) {
	if txn == nil {
		txn = d.db
	}
	var tmpAssets []*models.MintedAsset
	result := txn.Order("id").Find(&tmpAssets)
	if result.Error != nil {
		return nil, result.Error
	}
	return tmpAssets, nil
}
