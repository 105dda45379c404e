package response_models

type DreamResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Narrative string   `json:"narrative"`
	Mood      string   `json:"mood,omitempty"`
	Lucid     bool     `json:"lucid"`
	Recurring bool     `json:"recurring"`
	SleptAt   *int64   `json:"slept_at,omitempty"`
	WokeAt    *int64   `json:"woke_at,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt int64    `json:"created_at"`

	Interpretations []InterpretationResponse `json:"interpretations,omitempty"`
}

type DreamListResponse struct {
	Dreams   []DreamResponse `json:"dreams"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Total    int64           `json:"total"`
}

type InterpretationResponse struct {
	ID        string   `json:"id"`
	DreamID   string   `json:"dream_id"`
	Provider  string   `json:"provider"`
	Summary   string   `json:"summary"`
	Symbols   []Symbol `json:"symbols,omitempty"`
	Emotions  []string `json:"emotions,omitempty"`
	Guidance  string   `json:"guidance,omitempty"`
	CreatedAt int64    `json:"created_at"`
}

// Symbol is one symbolic element the model identified in the narrative.
type Symbol struct {
	Name    string `json:"name"`
	Meaning string `json:"meaning"`
}

type TranscriptionResponse struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

type SymbolSearchResult struct {
	Name       string   `json:"name"`
	Meaning    string   `json:"meaning"`
	Categories []string `json:"categories,omitempty"`
	Similarity float64  `json:"similarity"`
}
