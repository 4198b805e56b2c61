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

package search

import "errors"

var (
	// ErrCorpusRequired is returned when an engine is built without a corpus.
	ErrCorpusRequired = errors.New("corpus required")

	// ErrCatalogRequired is returned when a corpus is built without a catalog store.
	ErrCatalogRequired = errors.New("catalog store required")

	// ErrVocabularyRequired is returned when a corpus is built without a vocabulary.
	ErrVocabularyRequired = errors.New("vocabulary required")

	// ErrMatrixRequired is returned when a corpus is built without an index matrix.
	ErrMatrixRequired = errors.New("index matrix required")

	// ErrDimensionMismatch is returned when the matrix and vocabulary disagree on column count.
	ErrDimensionMismatch = errors.New("index columns do not match vocabulary size")
)
