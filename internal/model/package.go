package model

// SubscriptionType is the billing cadence of a streaming package.
type SubscriptionType string

const (
	// SubscriptionMonthly is billed per month.
	SubscriptionMonthly SubscriptionType = "monthly"
	// SubscriptionYearly is billed per year.
	SubscriptionYearly SubscriptionType = "yearly"
)

// IsYearly reports whether the cadence is yearly. Unknown values count as monthly.
func (s SubscriptionType) IsYearly() bool {
	return s == SubscriptionYearly
}

// Package is one streaming offer selected by the service.
type Package struct {
	Name             string           `json:"name" yaml:"name" toml:"name"`
	SubscriptionType SubscriptionType `json:"subscriptionType" yaml:"subscription_type" toml:"subscription_type"`
	GamesCovered     []Game           `json:"gamesCovered" yaml:"games_covered" toml:"games_covered"`
	ActiveMonths     []string         `json:"activeMonths" yaml:"active_months" toml:"active_months"`
	CostInEuro       float64          `json:"costInEuro" yaml:"cost_in_euro" toml:"cost_in_euro"`
}
