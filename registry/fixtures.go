package registry

import (
	"github.com/dan13ram/omnichain-portal/models"
)

func DefaultFixture() Fixture {
	return Fixture{
		Chains: []models.Chain{
			{ID: "ethereum", Name: "Ethereum", Status: models.ChainStatusActive, NativeToken: "Ether", TokenSymbol: "ETH"},
			{ID: "solana", Name: "Solana", Status: models.ChainStatusActive, NativeToken: "Solana", TokenSymbol: "SOL"},
			{ID: "polygon", Name: "Polygon", Status: models.ChainStatusActive, NativeToken: "Matic", TokenSymbol: "MATIC"},
			{ID: "avalanche", Name: "Avalanche", Status: models.ChainStatusCongested, NativeToken: "Avalanche", TokenSymbol: "AVAX"},
			{ID: "arbitrum", Name: "Arbitrum", Status: models.ChainStatusActive, NativeToken: "Ether", TokenSymbol: "ETH"},
			{ID: "bnb", Name: "BNB Chain", Status: models.ChainStatusInactive, NativeToken: "BNB", TokenSymbol: "BNB"},
		},
		Tokens: []models.Token{
			{Symbol: "ETH", Name: "Ethereum", Balance: "0.56", USDValue: 1876.32, Chain: "ethereum"},
			{Symbol: "USDC", Name: "USD Coin", Balance: "1250.00", USDValue: 1250.00, Chain: "ethereum"},
			{Symbol: "SOL", Name: "Solana", Balance: "12.45", USDValue: 1743.00, Chain: "solana"},
			{Symbol: "USDC", Name: "USD Coin", Balance: "420.50", USDValue: 420.50, Chain: "solana"},
			{Symbol: "MATIC", Name: "Polygon", Balance: "340.00", USDValue: 238.00, Chain: "polygon"},
			{Symbol: "AVAX", Name: "Avalanche", Balance: "8.20", USDValue: 287.00, Chain: "avalanche"},
			{Symbol: "ETH", Name: "Ethereum", Balance: "0.12", USDValue: 402.07, Chain: "arbitrum"},
			{Symbol: "BNB", Name: "BNB", Balance: "1.10", USDValue: 651.20, Chain: "bnb"},
		},
		GasEstimates: []models.GasEstimate{
			{Chain: "ethereum", Fee: "0.0042 ETH"},
			{Chain: "solana", Fee: "0.000005 SOL"},
			{Chain: "polygon", Fee: "0.01 MATIC"},
			{Chain: "avalanche", Fee: "0.025 AVAX"},
			{Chain: "arbitrum", Fee: "0.0003 ETH"},
			{Chain: "bnb", Fee: "0.0005 BNB"},
		},
		Transactions: []HistoryEntry{
			{Id: "tx-1001", Kind: models.TransactionKindBridge, Status: models.TransactionStatusCompleted, FromChain: "ethereum", ToChain: "solana", Token: "USDC", Amount: "250", Fee: "0.0042 ETH", Hash: "0x7d2a91c4e3b8f05a6c1d9e2f4b7a8c3d5e6f1a2b3c4d5e6f7a8b9c0d1e2f3a4b", Timestamp: 1718035200000},
			{Id: "tx-1002", Kind: models.TransactionKindReceive, Status: models.TransactionStatusCompleted, FromChain: "solana", Token: "SOL", Amount: "2.5", Hash: "4sGjMW1sUnHzSxGspuhpqLDx6wiyjNtZAMdL4VZHirAn", Timestamp: 1718121600000},
			{Id: "tx-1003", Kind: models.TransactionKindSend, Status: models.TransactionStatusCompleted, FromChain: "ethereum", Token: "ETH", Amount: "0.1", Fee: "0.0042 ETH", Hash: "0x1b4e7f9a2c5d8e0f3a6b9c2d5e8f1a4b7c0d3e6f9a2b5c8d1e4f7a0b3c6d9e2f", Timestamp: 1718208000000},
			{Id: "tx-1004", Kind: models.TransactionKindBridge, Status: models.TransactionStatusFailed, FromChain: "polygon", ToChain: "avalanche", Token: "MATIC", Amount: "120", Fee: "0.01 MATIC", Timestamp: 1718294400000},
			{Id: "tx-1005", Kind: models.TransactionKindBridge, Status: models.TransactionStatusCompleted, FromChain: "solana", ToChain: "arbitrum", Token: "USDC", Amount: "75.5", Fee: "0.000005 SOL", Hash: "5KtPn1LGuxhFiwjxErkxTb7XxtLVYUBe6Cn33ej7ATNz", Timestamp: 1718380800000},
		},
		NFTs: []models.NFT{
			{Id: "nft-1", Name: "Bored Ape #3021", Image: "https://images.example.com/nft/bored-ape-3021.png", Collection: "Bored Ape Yacht Club", Chain: "ethereum"},
			{Id: "nft-2", Name: "DeGod #1245", Image: "https://images.example.com/nft/degod-1245.png", Collection: "DeGods", Chain: "solana"},
			{Id: "nft-3", Name: "Azuki #784", Image: "https://images.example.com/nft/azuki-784.png", Collection: "Azuki", Chain: "ethereum"},
			{Id: "nft-4", Name: "Okay Bear #4412", Image: "https://images.example.com/nft/okay-bear-4412.png", Collection: "Okay Bears", Chain: "solana"},
		},
	}
}

// Default returns the built-in catalog. It panics only if the fixture above is malformed.
func Default() *Registry {
	r, err := New(DefaultFixture())
	if err != nil {
		panic(err)
	}
	return r
}
