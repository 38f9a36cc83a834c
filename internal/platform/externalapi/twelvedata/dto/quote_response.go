// Package dto defines data transfer objects for the Twelve Data API responses.
package dto

// QuoteResponse represents the JSON response from the Twelve Data quote endpoint.
// Error responses share the same shape with status "error" and a numeric code.
type QuoteResponse struct {
	Status  string `json:"status,omitempty"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`

	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Close  string `json:"close"`
}
