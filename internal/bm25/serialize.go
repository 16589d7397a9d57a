package bm25

import "encoding/json"

// postingDoc is the serialized shape of one posting.
type postingDoc struct {
	DocID string `json:"docId"`
	TF    int    `json:"tf"`
}

// snapshot is the stable JSON shape for a BM25 index: term frequencies and
// document lengths, from which avgDocLength is always recomputed on load,
// never trusted from the file.
type snapshot struct {
	Config    Config                  `json:"config"`
	Postings  map[string][]postingDoc `json:"postings"`
	DocLength map[string]int          `json:"docLength"`
}

// Serialize produces the stable JSON representation of the index.
func (idx *Index) Serialize() ([]byte, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	snap := snapshot{
		Config:    idx.cfg,
		Postings:  make(map[string][]postingDoc, len(idx.postings)),
		DocLength: make(map[string]int, len(idx.docLength)),
	}

	for term, list := range idx.postings {
		docs := make([]postingDoc, 0, len(list))
		for _, p := range list {
			docs = append(docs, postingDoc{DocID: p.docID, TF: p.tf})
		}
		snap.Postings[term] = docs
	}
	for docID, length := range idx.docLength {
		snap.DocLength[docID] = length
	}

	return json.Marshal(snap)
}

// Deserialize rebuilds an Index from Serialize's output. avgDocLength and
// N are always recomputed from the stored per-document lengths rather than
// trusted from the file.
func Deserialize(data []byte) (*Index, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}

	idx := New(snap.Config)
	idx.docLength = make(map[string]int, len(snap.DocLength))
	idx.postings = make(map[string][]posting, len(snap.Postings))

	total := 0
	for docID, length := range snap.DocLength {
		idx.docLength[docID] = length
		total += length
	}
	idx.totalTerms = total

	for term, docs := range snap.Postings {
		list := make([]posting, 0, len(docs))
		for _, d := range docs {
			list = append(list, posting{docID: d.DocID, tf: d.TF})
		}
		idx.postings[term] = list
	}

	return idx, nil
}
