package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/trustmesh/trustscore-contract/rpc/trustscore"
)

// remoteBlockchain provides read-only access to the TrustScore contract
// deployed on a remote Neo chain.
type remoteBlockchain struct {
	rpc     *rpcclient.Client
	invoker *invoker.Invoker
}

// newRemoteBlockchain dials Neo RPC server and returns remoteBlockchain based
// on the opened connection. Connection and all requests are done within 15s
// timeout.
func newRemoteBlockchain(blockChainRPCEndpoint string) (*remoteBlockchain, error) {
	c, err := rpcclient.New(context.Background(), blockChainRPCEndpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = c.Init()
	if err != nil {
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	return &remoteBlockchain{
		rpc:     c,
		invoker: invoker.New(c, nil),
	}, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

// listDisputes drains the dispute iterator for the given account. Servers
// without session support are handled via in-script iterator expansion.
func (x *remoteBlockchain) listDisputes(reader *trustscore.ContractReader, acc util.Uint160) ([]trustscore.Dispute, error) {
	const pageSize = 100

	sessionID, iter, err := reader.ListDisputes(acc)
	if err != nil {
		items, err := reader.ListDisputesExpanded(acc, pageSize)
		if err != nil {
			return nil, err
		}

		return decodeDisputes(items)
	}

	defer func() {
		_ = x.invoker.TerminateSession(sessionID)
	}()

	var disputes []trustscore.Dispute

	for {
		items, err := x.invoker.TraverseIterator(sessionID, &iter, pageSize)
		if err != nil {
			return nil, fmt.Errorf("traverse iterator: %w", err)
		}

		if len(items) == 0 {
			return disputes, nil
		}

		page, err := decodeDisputes(items)
		if err != nil {
			return nil, err
		}

		disputes = append(disputes, page...)
	}
}

func decodeDisputes(items []stackitem.Item) ([]trustscore.Dispute, error) {
	disputes := make([]trustscore.Dispute, len(items))

	for i := range items {
		err := disputes[i].FromStackItem(items[i])
		if err != nil {
			return nil, fmt.Errorf("decode dispute: %w", err)
		}
	}

	return disputes, nil
}
