package model

// LineRequestBody drives the line algebra endpoints. Stack and mod read Line
// and Other; power reads Line and Power.
type LineRequestBody struct {
	Line  string  `json:"line"`
	Other string  `json:"other"`
	Power float64 `json:"power"`
}

type LineResponse struct {
	Result  string  `json:"result"`
	Type    string  `json:"type"`
	Cents   float64 `json:"cents"`
	Decimal float64 `json:"decimal"`
}
