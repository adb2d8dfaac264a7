package qr

// Artifact is one finished file, owned by its producer until handed to a save port
type Artifact struct {
	FileName    string
	ContentType string
	Bytes       []byte
}

// Row is one batch input line
type Row struct {
	Identifier string `json:"identifier"`
	Payload    string `json:"payload"`
}
