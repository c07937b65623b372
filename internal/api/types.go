package api

// SearchRequest is the body for POST /search.
type SearchRequest struct {
	Query           string `json:"query"`
	Limit           int    `json:"limit"`
	DocumentSlug    string `json:"document_slug,omitempty"`
	IncludeChunks   bool   `json:"include_chunks"`
	IncludeElements bool   `json:"include_elements"`
	ElementType     string `json:"element_type,omitempty"`
}

// ChatRequest is the body for POST /chat.
type ChatRequest struct {
	Question     string `json:"question"`
	Limit        int    `json:"limit"`
	DocumentSlug string `json:"document_slug,omitempty"`
}

// SearchResult is one raw retrieval record as returned by the server.
// Exactly which optional fields are populated depends on source_type;
// the result package normalizes this into a kind-checked model.
type SearchResult struct {
	ID            int64   `json:"id"`
	ScorePct      float64 `json:"score_pct"`
	Content       string  `json:"content"`
	SourceType    string  `json:"source_type"` // "chunk" or "element"
	DocumentSlug  string  `json:"document_slug"`
	DocumentTitle string  `json:"document_title"`
	PageNumber    int     `json:"page_number"`
	ElementType   string  `json:"element_type,omitempty"`
	ElementLabel  string  `json:"element_label,omitempty"`
	CropPath      string  `json:"crop_path,omitempty"`
	RenderedPath  string  `json:"rendered_path,omitempty"` // equations: LaTeX-rendered image
	ImageWidth    *int    `json:"image_width,omitempty"`
	ImageHeight   *int    `json:"image_height,omitempty"`
	ChunkIndex    *int    `json:"chunk_index,omitempty"`
}

// SearchResponse is the reply to POST /search.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}

// ChatResponse is the reply to POST /chat.
type ChatResponse struct {
	Answer    string         `json:"answer"`
	Sources   []SearchResult `json:"sources"`
	QueryUsed string         `json:"query_used"`
}

// HealthResponse is the reply to GET /health.
type HealthResponse struct {
	Status          string `json:"status"`
	EmbeddingServer bool   `json:"embedding_server"`
	LLMServer       bool   `json:"llm_server"`
	Database        bool   `json:"database"`
	Version         string `json:"version"`
}

// DocumentListItem is one document summary in a GET /documents page.
type DocumentListItem struct {
	Slug       string   `json:"slug"`
	Title      string   `json:"title"`
	SourceFile string   `json:"source_file,omitempty"`
	TotalPages int      `json:"total_pages"`
	Summary    string   `json:"summary,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	License    string   `json:"license,omitempty"`
}

// DocumentListResponse is the reply to GET /documents.
type DocumentListResponse struct {
	Documents      []DocumentListItem `json:"documents"`
	Page           int                `json:"page"`
	PageSize       int                `json:"page_size"`
	TotalPages     int                `json:"total_pages"`
	TotalDocuments int                `json:"total_documents"`
}

// DocumentDetailResponse is the reply to GET /documents/{slug}.
type DocumentDetailResponse struct {
	Slug           string         `json:"slug"`
	Title          string         `json:"title"`
	SourceFile     string         `json:"source_file,omitempty"`
	TotalPages     int            `json:"total_pages"`
	Summary        string         `json:"summary,omitempty"`
	Keywords       []string       `json:"keywords,omitempty"`
	License        string         `json:"license,omitempty"`
	ExtractionDate string         `json:"extraction_date,omitempty"`
	ElementCounts  map[string]int `json:"element_counts"`
}

// PageResponse is the reply to GET /page/{slug}/{n}.
type PageResponse struct {
	DocumentSlug  string   `json:"document_slug"`
	DocumentTitle string   `json:"document_title"`
	PageNumber    int      `json:"page_number"`
	TotalPages    int      `json:"total_pages"`
	ImageBase64   string   `json:"image_base64"`
	ImageWidth    int      `json:"image_width"`
	ImageHeight   int      `json:"image_height"`
	MimeType      string   `json:"mime_type"`
	HasAnnotated  bool     `json:"has_annotated"`
	Summary       string   `json:"summary,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
}
