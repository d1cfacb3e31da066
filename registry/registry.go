package registry

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dan13ram/omnichain-portal/models"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Fixture is the on-disk shape of the chain/token catalog.
type Fixture struct {
	Chains       []models.Chain       `yaml:"chains"`
	Tokens       []models.Token       `yaml:"tokens"`
	GasEstimates []models.GasEstimate `yaml:"gas_estimates"`
	Transactions []HistoryEntry       `yaml:"transactions"`
	NFTs         []models.NFT         `yaml:"nfts"`
}

// Registry is read-only reference data, safe for concurrent use.
type Registry struct {
	chains       []models.Chain
	tokens       []models.Token
	chainIndex   map[string]int
	tokenIndex   map[string]int
	gasEstimates map[string]string
	history      []HistoryEntry
	nfts         []models.NFT
}

func tokenKey(symbol string, chainID string) string {
	return strings.ToUpper(symbol) + "@" + chainID
}

func New(fixture Fixture) (*Registry, error) {
	r := &Registry{
		chains:       make([]models.Chain, 0, len(fixture.Chains)),
		tokens:       make([]models.Token, 0, len(fixture.Tokens)),
		chainIndex:   make(map[string]int),
		tokenIndex:   make(map[string]int),
		gasEstimates: make(map[string]string),
	}

	for _, chain := range fixture.Chains {
		if chain.ID == "" {
			return nil, fmt.Errorf("chain with empty id")
		}
		if _, exists := r.chainIndex[chain.ID]; exists {
			return nil, fmt.Errorf("duplicate chain '%s'", chain.ID)
		}
		if !models.ValidChainStatus(chain.Status) {
			return nil, fmt.Errorf("chain '%s' has unknown status '%s'", chain.ID, chain.Status)
		}
		r.chainIndex[chain.ID] = len(r.chains)
		r.chains = append(r.chains, chain)
	}

	for _, token := range fixture.Tokens {
		if token.Symbol == "" {
			return nil, fmt.Errorf("token with empty symbol on chain '%s'", token.Chain)
		}
		if _, exists := r.chainIndex[token.Chain]; !exists {
			return nil, fmt.Errorf("token '%s' references unknown chain '%s'", token.Symbol, token.Chain)
		}
		if token.Balance != "" {
			if _, err := decimal.NewFromString(token.Balance); err != nil {
				return nil, fmt.Errorf("token '%s' has invalid balance: %w", token.Symbol, err)
			}
		}
		key := tokenKey(token.Symbol, token.Chain)
		if _, exists := r.tokenIndex[key]; exists {
			return nil, fmt.Errorf("duplicate token '%s'", key)
		}
		r.tokenIndex[key] = len(r.tokens)
		r.tokens = append(r.tokens, token)
	}

	for _, estimate := range fixture.GasEstimates {
		if _, exists := r.chainIndex[estimate.Chain]; !exists {
			return nil, fmt.Errorf("gas estimate references unknown chain '%s'", estimate.Chain)
		}
		r.gasEstimates[estimate.Chain] = estimate.Fee
	}

	historyIds := make(map[string]bool)
	for _, h := range fixture.Transactions {
		if err := r.validateHistoryEntry(h); err != nil {
			return nil, err
		}
		if historyIds[h.Id] {
			return nil, fmt.Errorf("duplicate history entry '%s'", h.Id)
		}
		historyIds[h.Id] = true
		r.history = append(r.history, h)
	}

	nftIds := make(map[string]bool)
	for _, nft := range fixture.NFTs {
		if nft.Id == "" {
			return nil, fmt.Errorf("nft with empty id")
		}
		if nftIds[nft.Id] {
			return nil, fmt.Errorf("duplicate nft '%s'", nft.Id)
		}
		if _, exists := r.chainIndex[nft.Chain]; !exists {
			return nil, fmt.Errorf("nft '%s' references unknown chain '%s'", nft.Id, nft.Chain)
		}
		nftIds[nft.Id] = true
		r.nfts = append(r.nfts, nft)
	}

	log.Debugf("[REGISTRY] Loaded %d chains, %d tokens, %d history entries, %d nfts", len(r.chains), len(r.tokens), len(r.history), len(r.nfts))

	return r, nil
}

// Load reads a YAML fixture from disk.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry fixture: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to unmarshal registry fixture: %w", err)
	}

	return New(fixture)
}

func (r *Registry) Chain(id string) (models.Chain, bool) {
	i, ok := r.chainIndex[id]
	if !ok {
		return models.Chain{}, false
	}
	return r.chains[i], true
}

func (r *Registry) Chains() []models.Chain {
	chains := make([]models.Chain, len(r.chains))
	copy(chains, r.chains)
	return chains
}

func (r *Registry) Token(symbol string, chainID string) (models.Token, bool) {
	i, ok := r.tokenIndex[tokenKey(symbol, chainID)]
	if !ok {
		return models.Token{}, false
	}
	return r.tokens[i], true
}

func (r *Registry) Tokens() []models.Token {
	tokens := make([]models.Token, len(r.tokens))
	copy(tokens, r.tokens)
	return tokens
}

func (r *Registry) TokensForChain(chainID string) []models.Token {
	tokens := make([]models.Token, 0)
	for _, token := range r.tokens {
		if token.Chain == chainID {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// SearchTokens matches query case-insensitively against symbol or name.
// An empty chainID searches every chain.
func (r *Registry) SearchTokens(chainID string, query string) []models.Token {
	query = strings.ToLower(strings.TrimSpace(query))
	tokens := make([]models.Token, 0)
	for _, token := range r.tokens {
		if chainID != "" && token.Chain != chainID {
			continue
		}
		if strings.Contains(strings.ToLower(token.Symbol), query) ||
			strings.Contains(strings.ToLower(token.Name), query) {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func (r *Registry) GasEstimate(chainID string) (string, bool) {
	fee, ok := r.gasEstimates[chainID]
	return fee, ok
}

// PortfolioValue sums the USD value of every token in the catalog.
func (r *Registry) PortfolioValue() decimal.Decimal {
	total := decimal.Zero
	for _, token := range r.tokens {
		total = total.Add(decimal.NewFromFloat(token.USDValue))
	}
	return total.Round(2)
}

// NativeBalance is the balance of the chain's native token, formatted as "12.45 SOL".
func (r *Registry) NativeBalance(chainID string) string {
	chain, ok := r.Chain(chainID)
	if !ok {
		return "0"
	}
	token, ok := r.Token(chain.TokenSymbol, chainID)
	if !ok || token.Balance == "" {
		return "0 " + chain.TokenSymbol
	}
	return token.Balance + " " + token.Symbol
}

var providerChains = map[models.ProviderType]string{
	models.ProviderPhantom:  "solana",
	models.ProviderMetaMask: "ethereum",
}

// DefaultChainFor is the source chain preselected after a provider connects.
func (r *Registry) DefaultChainFor(provider models.ProviderType) (models.Chain, bool) {
	id, ok := providerChains[provider]
	if !ok {
		return models.Chain{}, false
	}
	return r.Chain(id)
}

// ChainIDs returns the sorted chain ids, used for help text and errors.
func (r *Registry) ChainIDs() []string {
	ids := make([]string, 0, len(r.chains))
	for _, chain := range r.chains {
		ids = append(ids, chain.ID)
	}
	sort.Strings(ids)
	return ids
}
