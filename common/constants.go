package common

const (
	DefaultBIP39Passphrase = ""
	DefaultETHHDPath       = "m/44'/60'/0'/0/0"
	ZeroAddress            = "0x0000000000000000000000000000000000000000"

	// AmountPattern is the accepted shape of user-entered amounts.
	AmountPattern = `^\d*\.?\d*$`
)
