package response_models

// DreamExport is the full JSON backup of one account's journal.
type DreamExport struct {
	ExportedAt int64           `json:"exported_at"`
	Account    AccountResponse `json:"account"`
	Dreams     []DreamResponse `json:"dreams"`
}
