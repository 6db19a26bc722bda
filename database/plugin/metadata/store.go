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

package metadata

import (
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/database/plugin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// MetadataStore is the interface for the relational query index kept
// alongside the blob store. The blob store remains authoritative for all
// governance state; everything here exists to serve list and lookup traffic
type MetadataStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(*gorm.DB, int64) error
	Transaction() *gorm.DB

	// Proposal index
	GetProposal(
		[]byte, // proposer
		uint64, // sequence
		*gorm.DB,
	) (*models.Proposal, error)
	GetProposals(*gorm.DB) ([]*models.Proposal, error)
	SetProposal(*models.Proposal, *gorm.DB) error

	// Ballot index
	GetBallot(
		[]byte, // voter
		*gorm.DB,
	) (*models.Ballot, error)
	GetBallotCount(*gorm.DB) (int64, error)
	SetBallot(*models.Ballot, *gorm.DB) error

	// Minted assets
	AddMintedAsset(*models.MintedAsset, *gorm.DB) error
	GetMintedAssets(*gorm.DB) ([]*models.MintedAsset, error)
}

// New returns the started metadata plugin selected by name
func New(
	pluginName string,
	dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (MetadataStore, error) {
	p, err := plugin.StartPlugin(
		plugin.PluginTypeMetadata,
		pluginName,
		plugin.Args{
			DataDir:      dataDir,
			Logger:       logger,
			PromRegistry: promRegistry,
		},
	)
	if err != nil {
		return nil, err
	}
	metadataStore, ok := p.(MetadataStore)
	if !ok {
		return nil, fmt.Errorf(
			"plugin '%s' does not implement MetadataStore interface",
			pluginName,
		)
	}
	return metadataStore, nil
}
