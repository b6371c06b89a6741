package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/malbeclabs/nftstake/smartcontract/sdk/go/staking"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <wallet>", os.Args[0])
	}
	owner, err := staking.ParseAddress(os.Args[1])
	if err != nil {
		log.Fatalf("error while parsing wallet: %v", err)
	}

	fmt.Println("Fetching data from the staking program...")

	programID := solana.MustPublicKeyFromBase58(staking.DefaultProgramID)
	rpcClient := rpc.New(rpc.LocalNet_RPC)
	client := staking.New(slog.Default(), rpcClient, nil, programID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	config, err := client.GetConfig(ctx)
	if err != nil {
		log.Fatalf("error while loading config: %v", err)
	}
	fmt.Printf("Config:\n%+v\n\n", *config)

	stakes, err := client.GetStakeAccountsByOwner(ctx, owner)
	if err != nil {
		log.Fatalf("error while loading stakes: %v", err)
	}
	fmt.Print("Stakes:\n")
	for _, stake := range stakes {
		fmt.Printf("%s staked at %s\n", stake.Mint, stake.StakedAtTime().Format(time.RFC3339))
	}
}
