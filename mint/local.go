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

package mint

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/database/models"
)

// LocalMinter issues assets against the local database. Asset identifiers
// are assigned sequentially by the metadata store on insert. This is the
// stand-in authority for deployments without an external asset issuer.
type LocalMinter struct {
	logger *slog.Logger
	db     *database.Database
}

func NewLocalMinter(db *database.Database, logger *slog.Logger) *LocalMinter {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &LocalMinter{
		logger: logger,
		db:     db,
	}
}

func (m *LocalMinter) MintAsset(
	ctx context.Context,
	params AssetParams,
) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	asset := &models.MintedAsset{
		Name:         params.Name,
		UnitName:     params.UnitName,
		Url:          params.Url,
		MetadataHash: params.MetadataHash,
		Reserve:      params.Reserve,
		Total:        params.Total,
	}
	txn := m.db.MetadataTxn(true)
	err := txn.Do(func(txn *database.Txn) error {
		return m.db.AddMintedAsset(txn, asset)
	})
	if err != nil {
		return 0, fmt.Errorf("record minted asset: %w", err)
	}
	m.logger.Info(
		"minted asset",
		"component", "mint",
		"asset_id", asset.ID,
		"name", params.Name,
		"unit_name", params.UnitName,
		"total", params.Total,
	)
	return uint64(asset.ID), nil
}
