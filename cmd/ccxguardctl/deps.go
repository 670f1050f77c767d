// Copyright 2025 ccxguard contributors
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

package main

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ccxlabs/ccxguard"
	"github.com/ccxlabs/ccxguard/internal/config"
	"github.com/ccxlabs/ccxguard/storage"
)

// openStorage connects the Storage backend cfg.Storage names. The returned
// closer must be called once the caller is done (a no-op for the memory
// backend).
func openStorage(ctx context.Context, cfg *config.Config) (ccxguard.Storage, func(), error) {
	switch cfg.Storage.Backend {
	case "", "memory":
		return storage.NewMemory(), func() {}, nil
	case "mongo":
		mcfg := cfg.Storage.Mongo
		connectCtx, cancel := context.WithTimeout(ctx, mcfg.ConnectTimeout)
		defer cancel()
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mcfg.URI))
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to mongo: %w", err)
		}
		db := client.Database(mcfg.Database)
		closer := func() { _ = client.Disconnect(context.Background()) }
		return storage.NewMongo(db, mcfg.Collection), closer, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// newChecker builds the Checker variant cfg.Checker names.
func newChecker(cfg *config.Config) (ccxguard.Checker, error) {
	switch cfg.Checker {
	case "", "regex":
		return ccxguard.NewRegexCheckerWithDelimiters(cfg.Regex.StartTag, cfg.Regex.EndTag, cfg.Regex.CacheSize)
	case "exact":
		return ccxguard.NewStringExactChecker(), nil
	case "fuzzy":
		return ccxguard.NewStringFuzzyChecker(), nil
	case "rules":
		return ccxguard.NewRulesChecker(), nil
	default:
		return nil, fmt.Errorf("unknown checker %q", cfg.Checker)
	}
}
