package request_models

type CreateDreamRequest struct {
	Title     string   `json:"title" binding:"required,max=200"`
	Narrative string   `json:"narrative" binding:"required"`
	Mood      string   `json:"mood" binding:"omitempty,max=32"`
	Lucid     bool     `json:"lucid"`
	Recurring bool     `json:"recurring"`
	SleptAt   *int64   `json:"slept_at"`
	WokeAt    *int64   `json:"woke_at"`
	Tags      []string `json:"tags" binding:"max=20,dive,max=40"`
}

type UpdateDreamRequest struct {
	Title     *string  `json:"title" binding:"omitempty,max=200"`
	Narrative *string  `json:"narrative"`
	Mood      *string  `json:"mood" binding:"omitempty,max=32"`
	Lucid     *bool    `json:"lucid"`
	Recurring *bool    `json:"recurring"`
	SleptAt   *int64   `json:"slept_at"`
	WokeAt    *int64   `json:"woke_at"`
	Tags      []string `json:"tags" binding:"max=20,dive,max=40"`
}

type ListDreamsRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Mood     string `form:"mood"`
	Tag      string `form:"tag"`
}
