package literal

import "encoding/json"

// DataVersion is the on-disk LiteralIndexData format version: "vocabulary
// aware".
const DataVersion = "1.1.0"

type entryDoc struct {
	ChunkID        string      `json:"chunkId"`
	FilePath       string      `json:"filepath"`
	OriginalCasing string      `json:"originalCasing"`
	Type           LiteralType `json:"type"`
	MatchType      MatchType   `json:"matchType"`
	Vocabulary     []string    `json:"vocabulary"`
}

// Data is the persisted shape of a literal index (LiteralIndexData).
type Data struct {
	Version string              `json:"version"`
	Entries map[string][]entryDoc `json:"entries"`
}

// Serialize produces the persisted LiteralIndexData JSON for idx.
func (idx *Index) Serialize() ([]byte, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	data := Data{Version: DataVersion, Entries: make(map[string][]entryDoc, len(idx.byValue))}
	for value, entries := range idx.byValue {
		docs := make([]entryDoc, 0, len(entries))
		for _, e := range entries {
			docs = append(docs, entryDoc{
				ChunkID:        e.ChunkID,
				FilePath:       e.FilePath,
				OriginalCasing: e.OriginalCasing,
				Type:           e.Type,
				MatchType:      e.MatchType,
				Vocabulary:     e.Vocabulary,
			})
		}
		data.Entries[value] = docs
	}
	return json.Marshal(data)
}

// Deserialize rebuilds an Index from Serialize's output. Readers
// encountering a different version still attempt to load unless required
// fields are absent.
func Deserialize(raw []byte) (*Index, error) {
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	idx := New()
	for value, docs := range data.Entries {
		for _, d := range docs {
			if d.ChunkID == "" || d.OriginalCasing == "" {
				continue
			}
			entry := &Entry{
				ChunkID:        d.ChunkID,
				FilePath:       d.FilePath,
				OriginalCasing: d.OriginalCasing,
				Type:           d.Type,
				MatchType:      d.MatchType,
				Vocabulary:     d.Vocabulary,
			}
			idx.byValue[value] = append(idx.byValue[value], entry)
			idx.entryIndex[entryKey{chunkID: d.ChunkID, value: value}] = len(idx.byValue[value]) - 1
			idx.reindexWordsLocked(entry)
		}
	}
	return idx, nil
}
