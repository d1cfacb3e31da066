package models

type ChainStatus string

const (
	ChainStatusActive    ChainStatus = "active"
	ChainStatusInactive  ChainStatus = "inactive"
	ChainStatusCongested ChainStatus = "congested"
)

type Chain struct {
	ID          string      `yaml:"id" json:"id" bson:"id"`
	Name        string      `yaml:"name" json:"name" bson:"name"`
	Status      ChainStatus `yaml:"status" json:"status" bson:"status"`
	NativeToken string      `yaml:"native_token" json:"native_token" bson:"native_token"`
	TokenSymbol string      `yaml:"token_symbol" json:"token_symbol" bson:"token_symbol"`
}

func (c Chain) IsActive() bool {
	return c.Status != ChainStatusInactive
}

func ValidChainStatus(status ChainStatus) bool {
	switch status {
	case ChainStatusActive, ChainStatusInactive, ChainStatusCongested:
		return true
	}
	return false
}

type Token struct {
	Symbol   string  `yaml:"symbol" json:"symbol" bson:"symbol"`
	Name     string  `yaml:"name" json:"name" bson:"name"`
	Balance  string  `yaml:"balance" json:"balance" bson:"balance"`
	USDValue float64 `yaml:"usd_value" json:"usd_value" bson:"usd_value"`
	Chain    string  `yaml:"chain" json:"chain" bson:"chain"`
}

// GasEstimate is the fixture fee shown for bridges leaving a chain.
type GasEstimate struct {
	Chain string `yaml:"chain" json:"chain"`
	Fee   string `yaml:"fee" json:"fee"`
}
