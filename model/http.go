package model

type ExportRequestBody struct {
	Name          string   `json:"name"`
	Lines         []string `json:"lines"`
	BaseFrequency float64  `json:"base_frequency"`
	BaseMidiNote  *int     `json:"base_midi_note"`
	Newline       string   `json:"newline"`
	Base64        bool     `json:"base64"`
}

type FormatInfo struct {
	Key         string `json:"key"`
	Extension   string `json:"extension"`
	MimeType    string `json:"mime_type"`
	Description string `json:"description"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
