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

// Package search provides lexical course ranking.
//
// The Engine ranks a fixed catalog against a free-text query in stages:
//   - Normalize the query into lower-case ASCII words
//   - Vectorize it in the corpus vocabulary and score every row by cosine similarity
//   - Keep rows matching every active filter (difficulty, topic, minimum rating)
//   - Stable sort by similarity, then rating, then the specialized flag
//   - Truncate to the requested number of results
//
// The catalog, vocabulary and index live in an immutable Corpus that is
// built once and shared by all callers without locking.
package search
