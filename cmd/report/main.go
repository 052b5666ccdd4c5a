package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/trustmesh/trustscore-contract/rpc/trustscore"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contractHash := flag.String("contract", "", "TrustScore contract hash (LE hex)")
	account := flag.String("account", "", "Account to report on (Neo address or LE hex hash)")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractHash == "":
		log.Fatal("missing contract hash")
	case *account == "":
		log.Fatal("missing account")
	}

	hash, err := util.Uint160DecodeStringLE(*contractHash)
	if err != nil {
		log.Fatal(fmt.Errorf("invalid contract hash: %w", err))
	}

	acc, err := parseAccount(*account)
	if err != nil {
		log.Fatal(fmt.Errorf("invalid account: %w", err))
	}

	b, err := newRemoteBlockchain(*neoRPCEndpoint)
	if err != nil {
		log.Fatal(fmt.Errorf("init remote blockchain: %w", err))
	}

	defer b.close()

	err = report(b, trustscore.NewReader(b.invoker, hash), acc)
	if err != nil {
		log.Fatal(err)
	}
}

func parseAccount(s string) (util.Uint160, error) {
	h, err := address.StringToUint160(s)
	if err == nil {
		return h, nil
	}

	return util.Uint160DecodeStringLE(s)
}

func report(b *remoteBlockchain, reader *trustscore.ContractReader, acc util.Uint160) error {
	rep, err := reader.GetReputation(acc)
	if err != nil {
		return fmt.Errorf("get reputation: %w", err)
	}

	fmt.Printf("Account:      %s\n", address.Uint160ToString(rep.Account))
	fmt.Printf("Score:        %s (%s)\n", rep.Score, trustscore.StatusString(rep.Status))
	fmt.Printf("Interactions: %s\n", rep.TotalInteractions)
	fmt.Printf("Last updated: block #%s\n", rep.LastUpdated)

	// the account may double as a verifier
	v, err := reader.GetVerifierInfo(acc)
	if err == nil {
		fmt.Printf("Verifier:     active=%t weight=%s verifications=%s stake=%s\n",
			v.Active, v.CredibilityWeight, v.TotalVerifications, v.StakeAmount)
	}

	disputes, err := b.listDisputes(reader, acc)
	if err != nil {
		return fmt.Errorf("list disputes: %w", err)
	}

	fmt.Printf("Disputes:     %d\n", len(disputes))
	for i := range disputes {
		fmt.Printf("  [%s] %q (raised at block #%s)\n",
			disputes[i].Status, disputes[i].Reason, disputes[i].CreatedAt)
	}

	return nil
}
