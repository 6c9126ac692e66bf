package model

type ConvertRequestBody struct {
	Gabc    string `json:"gabc"`
	Snippet int    `json:"snippet"`
}

type ConvertResponse struct {
	Id       string `json:"id"`
	Lilypond string `json:"lilypond"`
	NumNotes int    `json:"num_notes"`
	MidiPath string `json:"midi_path"`
}

type TextResponse struct {
	Text string `json:"text"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
