package trustscore

import (
	"math/big"

	"github.com/trustmesh/trustscore-contract/weights"
)

// StatusString converts the numeric status band returned by the contract
// into its human-readable label.
func StatusString(status *big.Int) string {
	return weights.Status(status.Int64()).String()
}
