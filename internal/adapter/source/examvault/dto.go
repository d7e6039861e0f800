package examvault

// FilesResponse is the payload of GET /files
type FilesResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Files   []FileDTO `json:"files"`
}

// FileDTO is a single listed file as the server encodes it
type FileDTO struct {
	ID        string `json:"_id,omitempty"`
	URL       string `json:"url"`
	Subject   string `json:"subject"`
	Branch    string `json:"branch"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt,omitempty"`
}
