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

// Package vectorspace implements the sparse lexical vector space used for
// course retrieval.
//
// A Vocabulary maps terms to columns and carries inverse document frequency
// weights fitted offline by a Fitter. A Vectorizer projects normalized text
// into that space as an L2-normalized TF-IDF SparseVector. An Index holds one
// row per catalog item in a compressed sparse row Matrix and scores a query
// vector against every row with cosine similarity.
//
// All types are immutable once constructed and safe for concurrent reads.
package vectorspace
