package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var nftChain string

var nftsCmd = &cobra.Command{
	Use:   "nfts",
	Short: "List the NFTs held by the wallet",
	Long: `List NFT collectibles, optionally on one chain.

Examples:
  portal nfts
  portal nfts --chain solana`,
	Run: runNFTs,
}

func init() {
	rootCmd.AddCommand(nftsCmd)

	nftsCmd.Flags().StringVar(&nftChain, "chain", "", "Only NFTs on this chain id")
}

func runNFTs(cmd *cobra.Command, args []string) {
	reg, err := loadRegistry()
	exitOnError(err)

	if nftChain != "" {
		if _, ok := reg.Chain(nftChain); !ok {
			exitOnError(fmt.Errorf("unknown chain %q", nftChain))
		}
	}

	nfts := reg.NFTs(nftChain)

	if jsonOutput {
		printJSON(nfts)
		return
	}

	if len(nfts) == 0 {
		fmt.Println("\nNo NFTs found.")
		return
	}

	fmt.Println()
	divider(72)
	color.Green("  NFTS")
	divider(72)
	for _, nft := range nfts {
		fmt.Printf("  %-22s %-24s %s\n",
			color.YellowString(nft.Name),
			nft.Collection,
			color.CyanString(nft.Chain))
		fmt.Printf("  %s\n", color.HiBlackString(nft.Image))
	}
	divider(72)
	fmt.Printf("\nTotal: %d NFTs\n\n", len(nfts))
}
