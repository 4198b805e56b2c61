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

package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/storage"
)

// Key prefixes. No prefix is a prefix of another.
const (
	itemPrefix        = "snpitm:"
	rowPrefix         = "snprow:"
	vocabularyKey     = "snpvoc"
	snapshotInfoKey   = "snpinf"
	historyPrefix     = "hisrec:"
	historyDatePrefix = "hisdat:"
	historyIDSeq      = "hisseq"
	feedbackTallyKey  = "fbktly"
)

// makePositionKey generates a key for a catalog position.
// Format: prefix + BigEndian position, so key order equals position order.
func makePositionKey(prefix string, pos int) []byte {
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(pos))
	return buf
}

// parsePositionKey extracts the position from a key made by makePositionKey.
func parsePositionKey(prefix string, key []byte) (int, error) {
	if len(key) != len(prefix)+8 {
		return 0, fmt.Errorf("%w: malformed key %q", storage.ErrCorruptSnapshot, key)
	}
	return int(binary.BigEndian.Uint64(key[len(prefix):])), nil
}

// makeHistoryKey generates a key for a history entry by ID.
func makeHistoryKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s%d", historyPrefix, id))
}

// makeHistoryDateKey generates a composite key for the date index.
// Format: prefix + timestamp + id
func makeHistoryDateKey(timestamp time.Time, id core.ID) []byte {
	buf := make([]byte, len(historyDatePrefix)+16) // 8 bytes for timestamp + 8 bytes for ID
	offset := copy(buf, historyDatePrefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialHistoryDateKey generates a partial key for date range queries.
// Format: prefix + timestamp
func makePartialHistoryDateKey(timestamp time.Time) []byte {
	buf := make([]byte, len(historyDatePrefix)+8)
	offset := copy(buf, historyDatePrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
