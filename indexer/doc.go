// Copyright 2025 Poiesic Systems
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

// Package indexer builds persisted catalog snapshots.
//
// A build fits a TF-IDF vocabulary over the catalog, vectorizes every item on
// a worker pool and writes items, rows and vocabulary to a snapshot
// repository in batches. Writes are retried with exponential backoff and
// progress can be reported to any writer.
package indexer
