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

package database

import (
	"github.com/blinklabs-io/agora/database/models"
)

// AddMintedAsset records a newly issued asset. The asset ID is assigned by
// the metadata store on insert
func (d *Database) AddMintedAsset(
	txn *Txn,
	asset *models.MintedAsset,
) error {
	return d.metadata.AddMintedAsset(asset, txn.Metadata())
}

// GetMintedAssets returns all issued assets in mint order
func (d *Database) GetMintedAssets(txn *Txn) ([]*models.MintedAsset, error) {
	return d.metadata.GetMintedAssets(txn.Metadata())
}
