package chat

import (
	"bytes"
	"encoding/json"
)

// ChartPayload is the typed view of a bar or pie chart as served by the
// analytics endpoints. Conversation messages keep the raw payload and decode
// this view only for display.
type ChartPayload struct {
	Type  string    `json:"type"`
	Title string    `json:"title"`
	Data  ChartData `json:"data"`
}

// ChartData holds the series labels and datasets of a chart.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// ChartDataset is a single series. BackgroundColor may be a string or a list
// of strings depending on the chart kind, so it is kept undecoded.
type ChartDataset struct {
	Label           string          `json:"label,omitempty"`
	Data            []float64       `json:"data"`
	BackgroundColor json.RawMessage `json:"backgroundColor,omitempty"`
}

// DecodeChart reads a raw chart payload into its typed view. It returns nil
// for an empty or null payload and an error when the payload has another shape.
func DecodeChart(raw json.RawMessage) (*ChartPayload, error) {
	if IsEmptyChart(raw) {
		return nil, nil
	}
	var chart ChartPayload
	if err := json.Unmarshal(raw, &chart); err != nil {
		return nil, err
	}
	return &chart, nil
}

// IsEmptyChart reports whether raw carries no chart.
func IsEmptyChart(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
