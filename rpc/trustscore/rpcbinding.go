// Package trustscore contains RPC wrappers for TrustScore contract.
package trustscore

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// AccountReputation is a contract-specific trustscorecontract.AccountReputation type used by its methods.
type AccountReputation struct {
	Account           util.Uint160
	Score             *big.Int
	TotalInteractions *big.Int
	LastUpdated       *big.Int
	Status            *big.Int
}

// Verifier is a contract-specific trustscorecontract.Verifier type used by its methods.
type Verifier struct {
	Account            util.Uint160
	Active             bool
	CredibilityWeight  *big.Int
	TotalVerifications *big.Int
	StakeAmount        *big.Int
}

// Submission is a contract-specific trustscorecontract.Submission type used by its methods.
type Submission struct {
	Account    util.Uint160
	Verifier   util.Uint160
	Score      *big.Int
	Confidence *big.Int
	Timestamp  *big.Int
	Category   string
}

// Dispute is a contract-specific trustscorecontract.Dispute type used by its methods.
type Dispute struct {
	Account    util.Uint160
	Reason     string
	Status     string
	CreatedAt  *big.Int
	ResolvedAt *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Config invokes `config` method of contract.
func (c *ContractReader) Config(key []byte) (any, error) {
	return func(item stackitem.Item, err error) (any, error) {
		if err != nil {
			return nil, err
		}
		return item.Value(), error(nil)
	}(unwrap.Item(c.invoker.Call(c.hash, "config", key)))
}

// GetReputation invokes `getReputation` method of contract.
func (c *ContractReader) GetReputation(account util.Uint160) (*AccountReputation, error) {
	return itemToAccountReputation(unwrap.Item(c.invoker.Call(c.hash, "getReputation", account)))
}

// GetSubmission invokes `getSubmission` method of contract.
func (c *ContractReader) GetSubmission(id *big.Int) (*Submission, error) {
	return itemToSubmission(unwrap.Item(c.invoker.Call(c.hash, "getSubmission", id)))
}

// GetVerifierInfo invokes `getVerifierInfo` method of contract.
func (c *ContractReader) GetVerifierInfo(verifier util.Uint160) (*Verifier, error) {
	return itemToVerifier(unwrap.Item(c.invoker.Call(c.hash, "getVerifierInfo", verifier)))
}

// ListConfig invokes `listConfig` method of contract.
func (c *ContractReader) ListConfig() ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.Call(c.hash, "listConfig"))
}

// ListDisputes invokes `listDisputes` method of contract.
func (c *ContractReader) ListDisputes(account util.Uint160) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "listDisputes", account))
}

// ListDisputesExpanded is similar to ListDisputes (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) ListDisputesExpanded(account util.Uint160, _numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "listDisputes", _numOfIteratorItems, account))
}

// TotalUsers invokes `totalUsers` method of contract.
func (c *ContractReader) TotalUsers() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalUsers"))
}

// TotalVerifiers invokes `totalVerifiers` method of contract.
func (c *ContractReader) TotalVerifiers() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalVerifiers"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// DeactivateVerifier creates a transaction invoking `deactivateVerifier` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) DeactivateVerifier(verifier util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "deactivateVerifier", verifier)
}

// DeactivateVerifierTransaction creates a transaction invoking `deactivateVerifier` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) DeactivateVerifierTransaction(verifier util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "deactivateVerifier", verifier)
}

// DeactivateVerifierUnsigned creates a transaction invoking `deactivateVerifier` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) DeactivateVerifierUnsigned(verifier util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "deactivateVerifier", nil, verifier)
}

// InitializeAccount creates a transaction invoking `initializeAccount` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) InitializeAccount(account util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "initializeAccount", account)
}

// InitializeAccountTransaction creates a transaction invoking `initializeAccount` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) InitializeAccountTransaction(account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "initializeAccount", account)
}

// InitializeAccountUnsigned creates a transaction invoking `initializeAccount` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) InitializeAccountUnsigned(account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "initializeAccount", nil, account)
}

// RaiseDispute creates a transaction invoking `raiseDispute` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RaiseDispute(account util.Uint160, reason string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "raiseDispute", account, reason)
}

// RaiseDisputeTransaction creates a transaction invoking `raiseDispute` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RaiseDisputeTransaction(account util.Uint160, reason string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "raiseDispute", account, reason)
}

// RaiseDisputeUnsigned creates a transaction invoking `raiseDispute` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RaiseDisputeUnsigned(account util.Uint160, reason string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "raiseDispute", nil, account, reason)
}

// ReactivateVerifier creates a transaction invoking `reactivateVerifier` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ReactivateVerifier(verifier util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "reactivateVerifier", verifier)
}

// ReactivateVerifierTransaction creates a transaction invoking `reactivateVerifier` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ReactivateVerifierTransaction(verifier util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "reactivateVerifier", verifier)
}

// ReactivateVerifierUnsigned creates a transaction invoking `reactivateVerifier` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ReactivateVerifierUnsigned(verifier util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "reactivateVerifier", nil, verifier)
}

// RecomputeReputation creates a transaction invoking `recomputeReputation` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RecomputeReputation(user util.Uint160, ids []any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "recomputeReputation", user, ids)
}

// RecomputeReputationTransaction creates a transaction invoking `recomputeReputation` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RecomputeReputationTransaction(user util.Uint160, ids []any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "recomputeReputation", user, ids)
}

// RecomputeReputationUnsigned creates a transaction invoking `recomputeReputation` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RecomputeReputationUnsigned(user util.Uint160, ids []any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "recomputeReputation", nil, user, ids)
}

// RegisterVerifier creates a transaction invoking `registerVerifier` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RegisterVerifier(verifier util.Uint160, weight *big.Int, stake *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "registerVerifier", verifier, weight, stake)
}

// RegisterVerifierTransaction creates a transaction invoking `registerVerifier` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RegisterVerifierTransaction(verifier util.Uint160, weight *big.Int, stake *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "registerVerifier", verifier, weight, stake)
}

// RegisterVerifierUnsigned creates a transaction invoking `registerVerifier` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RegisterVerifierUnsigned(verifier util.Uint160, weight *big.Int, stake *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "registerVerifier", nil, verifier, weight, stake)
}

// SetConfig creates a transaction invoking `setConfig` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetConfig(key []byte, val []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setConfig", key, val)
}

// SetConfigTransaction creates a transaction invoking `setConfig` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetConfigTransaction(key []byte, val []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setConfig", key, val)
}

// SetConfigUnsigned creates a transaction invoking `setConfig` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetConfigUnsigned(key []byte, val []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setConfig", nil, key, val)
}

// SubmitScore creates a transaction invoking `submitScore` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SubmitScore(verifier util.Uint160, user util.Uint160, score *big.Int, confidence *big.Int, category string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "submitScore", verifier, user, score, confidence, category)
}

// SubmitScoreTransaction creates a transaction invoking `submitScore` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SubmitScoreTransaction(verifier util.Uint160, user util.Uint160, score *big.Int, confidence *big.Int, category string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "submitScore", verifier, user, score, confidence, category)
}

// SubmitScoreUnsigned creates a transaction invoking `submitScore` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SubmitScoreUnsigned(verifier util.Uint160, user util.Uint160, score *big.Int, confidence *big.Int, category string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "submitScore", nil, verifier, user, score, confidence, category)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToAccountReputation converts stack item into *AccountReputation.
func itemToAccountReputation(item stackitem.Item, err error) (*AccountReputation, error) {
	if err != nil {
		return nil, err
	}
	var res = new(AccountReputation)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of AccountReputation from the given
// [stackitem.Item] or returns an error if it's not possible to do to properly.
func (res *AccountReputation) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Account, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Account: %w", err)
	}

	index++
	res.Score, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Score: %w", err)
	}

	index++
	res.TotalInteractions, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalInteractions: %w", err)
	}

	index++
	res.LastUpdated, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field LastUpdated: %w", err)
	}

	index++
	res.Status, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}

	return nil
}

// itemToVerifier converts stack item into *Verifier.
func itemToVerifier(item stackitem.Item, err error) (*Verifier, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Verifier)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Verifier from the given
// [stackitem.Item] or returns an error if it's not possible to do to properly.
func (res *Verifier) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Account, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Account: %w", err)
	}

	index++
	res.Active, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Active: %w", err)
	}

	index++
	res.CredibilityWeight, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CredibilityWeight: %w", err)
	}

	index++
	res.TotalVerifications, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalVerifications: %w", err)
	}

	index++
	res.StakeAmount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field StakeAmount: %w", err)
	}

	return nil
}

// itemToSubmission converts stack item into *Submission.
func itemToSubmission(item stackitem.Item, err error) (*Submission, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Submission)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Submission from the given
// [stackitem.Item] or returns an error if it's not possible to do to properly.
func (res *Submission) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 6 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Account, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Account: %w", err)
	}

	index++
	res.Verifier, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Verifier: %w", err)
	}

	index++
	res.Score, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Score: %w", err)
	}

	index++
	res.Confidence, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Confidence: %w", err)
	}

	index++
	res.Timestamp, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Timestamp: %w", err)
	}

	index++
	res.Category, err = itemToString(arr[index])
	if err != nil {
		return fmt.Errorf("field Category: %w", err)
	}

	return nil
}

// itemToDispute converts stack item into *Dispute.
func itemToDispute(item stackitem.Item, err error) (*Dispute, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Dispute)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Dispute from the given
// [stackitem.Item] or returns an error if it's not possible to do to properly.
func (res *Dispute) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Account, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Account: %w", err)
	}

	index++
	res.Reason, err = itemToString(arr[index])
	if err != nil {
		return fmt.Errorf("field Reason: %w", err)
	}

	index++
	res.Status, err = itemToString(arr[index])
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}

	index++
	res.CreatedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreatedAt: %w", err)
	}

	index++
	res.ResolvedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ResolvedAt: %w", err)
	}

	return nil
}

func itemToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}

func itemToString(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
