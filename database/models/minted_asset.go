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

package models

import "errors"

var ErrMintedAssetNotFound = errors.New("minted asset not found")

// MintedAsset records an asset issued by the local minting authority. The
// row ID doubles as the assigned asset identifier.
type MintedAsset struct {
	ID           uint   `gorm:"primarykey"`
	Name         string `gorm:"size:128;not null"`
	UnitName     string `gorm:"size:16;not null"`
	Url          string `gorm:"size:256;not null"`
	MetadataHash []byte `gorm:"size:32;not null"`
	Reserve      []byte `gorm:"size:32;not null"`
	Total        uint64 `gorm:"not null"`
}

// TableName returns the table name
func (MintedAsset) TableName() string {
	return "minted_asset"
}
