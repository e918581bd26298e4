package models

import "github.com/shopspring/decimal"

// WindowReport is the raw dashboard aggregate over one lookback window
type WindowReport struct {
	GoldTaken              decimal.Decimal `json:"goldTaken"`
	GoldGiven              decimal.Decimal `json:"goldGiven"`
	TotalGoldTransaction   decimal.Decimal `json:"totalGoldTransaction"`
	AmountTaken            decimal.Decimal `json:"amountTaken"`
	AmountGiven            decimal.Decimal `json:"amountGiven"`
	TotalAmountTransaction decimal.Decimal `json:"totalAmountTransaction"`
}

// WindowSample is one labelled bar group of a dashboard chart
type WindowSample struct {
	Label string          `json:"label"`
	Taken decimal.Decimal `json:"taken"`
	Given decimal.Decimal `json:"given"`
	Total decimal.Decimal `json:"total"`
}

// GoldSample splits the gold-denominated figures out of the report
func (r *WindowReport) GoldSample(label string) WindowSample {
	return WindowSample{
		Label: label,
		Taken: r.GoldTaken,
		Given: r.GoldGiven,
		Total: r.TotalGoldTransaction,
	}
}

// AmountSample splits the currency-denominated figures out of the report
func (r *WindowReport) AmountSample(label string) WindowSample {
	return WindowSample{
		Label: label,
		Taken: r.AmountTaken,
		Given: r.AmountGiven,
		Total: r.TotalAmountTransaction,
	}
}
