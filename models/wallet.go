package models

type ProviderType string

const (
	ProviderNone     ProviderType = ""
	ProviderPhantom  ProviderType = "phantom"
	ProviderMetaMask ProviderType = "metamask"
)

func ValidProvider(provider ProviderType) bool {
	return provider == ProviderPhantom || provider == ProviderMetaMask
}

// WalletAccount is what a successful handshake reveals about the user's wallet.
type WalletAccount struct {
	Address string
	Balance string
}

// WalletSession is the connection state of the user's wallet.
// Address, Balance and Provider are only set while Connected.
type WalletSession struct {
	Connected bool         `json:"connected"`
	Address   string       `json:"address"`
	Balance   string       `json:"balance"`
	Provider  ProviderType `json:"provider"`
}

func DefaultWalletSession() WalletSession {
	return WalletSession{
		Connected: false,
		Address:   "",
		Balance:   "0",
		Provider:  ProviderNone,
	}
}
