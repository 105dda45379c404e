package request_models

type CreateInterpretationRequest struct {
	// Optional focus question the user wants the interpretation to address.
	Question string `json:"question" binding:"omitempty,max=300"`
}

type TranscriptionRequest struct {
	// Language hint for whisper, e.g. "en". Empty lets the model detect.
	Language string `form:"language" binding:"omitempty,max=8"`
}
