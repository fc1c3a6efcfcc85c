package model

type InvertRequestBody struct {
	Chord string `json:"chord"`
}

type InvertResponse struct {
	Chord    string `json:"chord"`
	Inverted string `json:"inverted"`
}
