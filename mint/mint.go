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
)

// AssetParams describes the asset to be created. Parameters are taken
// verbatim from the winning proposal; Total is the issuance count.
type AssetParams struct {
	Name         string
	UnitName     string
	Url          string
	MetadataHash []byte
	Reserve      []byte
	Total        uint64
}

// Authority is the capability boundary for asset creation. Implementations
// issue the asset described by params and return its assigned identifier.
type Authority interface {
	MintAsset(ctx context.Context, params AssetParams) (uint64, error)
}
