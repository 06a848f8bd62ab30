package backend

import "encoding/json"

// Envelope adalah bungkus standar semua response backend, baik sukses
// maupun gagal: { status, message, data }.
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Meta    json.RawMessage `json:"meta,omitempty"`
}

// ListMeta adalah meta pagination yang dikirim backend untuk endpoint list.
type ListMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// DecodeMeta membaca meta pagination. ok=false kalau backend tidak mengirim meta.
func (e *Envelope) DecodeMeta() (ListMeta, bool) {
	var m ListMeta
	if len(e.Meta) == 0 || string(e.Meta) == "null" {
		return m, false
	}
	if err := json.Unmarshal(e.Meta, &m); err != nil {
		return m, false
	}
	return m, true
}
