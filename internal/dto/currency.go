package dto

import (
	"time"

	"github.com/orgfin/org_finance_app/internal/core/domain"
)

// CreateCurrencyRequest defines the structure for creating a new currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,len=3,uppercase"`
	Symbol       string `json:"symbol" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Precision    int    `json:"precision" binding:"min=0,max=18"`
}

// CurrencyResponse defines the structure for API responses containing currency details.
type CurrencyResponse struct {
	CurrencyCode string    `json:"currencyCode"`
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	Precision    int       `json:"precision"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: c.CurrencyCode,
		Symbol:       c.Symbol,
		Name:         c.Name,
		Precision:    c.Precision,
		CreatedAt:    c.CreatedAt,
	}
}

// ToCurrencyResponses converts a slice of domain currencies to DTOs.
func ToCurrencyResponses(currencies []domain.Currency) []CurrencyResponse {
	responses := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		responses[i] = ToCurrencyResponse(&currencies[i])
	}
	return responses
}
