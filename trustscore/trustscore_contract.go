/*
Contract storage model.

Current conventions:
 <account>: 20-byte script hash of a participant
 <id>: little-endian integer sequence number

# Summary
Key-value storage format:
 - 'a<account>' -> std.Serialize(AccountReputation)
   Live reputation record of the account
 - 'v<account>' -> std.Serialize(Verifier)
   Registry record of the verifier, kept after deactivation
 - 's<id>' -> std.Serialize(Submission)
   Immutable attestation, keyed by the global sequence number
 - 'd<account><id>' -> std.Serialize(Dispute)
   Append-only dispute record of the account
 - 'cu' -> int
   Number of initialized accounts
 - 'cv' -> int
   Number of registered verifiers
 - 'cs' -> int
   Global submission sequence counter
 - 'cd' -> int
   Global dispute sequence counter
 - 'config<key>' -> arbitrary value
   Contract configuration, e.g. the minimal verifier stake
 - 'owner' -> 20-byte script hash of the contract owner

# Scoring
Attestations are written by SubmitScore and folded into account records
by RecomputeReputation only. Submission and dispute sequence numbers are
drawn from single global counters, so they are unique system-wide.
*/
package trustscorecontract

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/ledger"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/trustmesh/trustscore-contract/common"
	"github.com/trustmesh/trustscore-contract/weights"
)

type (
	// AccountReputation is the live trust record of a single account.
	// Score always stays in [0,100], Status is derived from it via the
	// weights threshold table. LastUpdated is the block height of the
	// last RecomputeReputation commit (or of initialization).
	AccountReputation struct {
		Account           interop.Hash160
		Score             int
		TotalInteractions int
		LastUpdated       int
		Status            int
	}

	// Verifier describes a staked scorer authorized to submit
	// attestations. Deactivation flips Active and keeps the record.
	Verifier struct {
		Account            interop.Hash160
		Active             bool
		CredibilityWeight  int
		TotalVerifications int
		StakeAmount        int
	}

	// Submission is a single immutable attestation of an account score
	// by a verifier.
	Submission struct {
		Account    interop.Hash160
		Verifier   interop.Hash160
		Score      int
		Confidence int
		Timestamp  int
		Category   string
	}

	// Dispute is an append-only complaint of an account about its
	// score. ResolvedAt is zero while the dispute is open.
	Dispute struct {
		Account    interop.Hash160
		Reason     string
		Status     string
		CreatedAt  int
		ResolvedAt int
	}

	// record is a single config entry returned by ListConfig.
	record struct {
		key []byte
		val []byte
	}
)

const (
	accountPrefix    = 'a'
	verifierPrefix   = 'v'
	submissionPrefix = 's'
	disputePrefix    = 'd'

	totalUsersKey        = "cu"
	totalVerifiersKey    = "cv"
	submissionCounterKey = "cs"
	disputeCounterKey    = "cd"

	// MinStakeConfigKey is the config key of the minimal stake required
	// at verifier registration.
	MinStakeConfigKey = "MinVerifierStake"

	maxBatchSize      = 10
	maxCategoryLength = 30
	maxReasonLength   = 200

	// initialScore is assigned to newly initialized accounts.
	initialScore = 50

	disputeStatusOpen = "open"
)

var (
	// ErrInvalidScore is thrown when a score or confidence value is
	// outside [0,100].
	ErrInvalidScore = "invalid score"
	// ErrInvalidWeight is thrown when a credibility weight is outside
	// [1,100].
	ErrInvalidWeight = "invalid credibility weight"
	// ErrUnknownAccount is thrown when the target account has no
	// reputation record.
	ErrUnknownAccount = "account is not initialized"
	// ErrAlreadyRegistered is thrown on repeated verifier registration.
	ErrAlreadyRegistered = "verifier is already registered"
	// ErrNotVerifier is thrown when the acting account is not in the
	// verifier registry.
	ErrNotVerifier = "not a verifier"
	// ErrInactiveVerifier is thrown when the acting verifier has been
	// deactivated.
	ErrInactiveVerifier = "verifier is deactivated"
	// ErrInsufficientStake is thrown when the declared stake is below
	// the configured minimum.
	ErrInsufficientStake = "stake is below the required minimum"
	// ErrBatchTooLarge is thrown when a recompute batch exceeds the
	// maximal size.
	ErrBatchTooLarge = "too many submission ids"
	// ErrCategoryTooLong is thrown on an oversized submission category.
	ErrCategoryTooLong = "category is too long"
	// ErrReasonTooLong is thrown on an oversized dispute reason.
	ErrReasonTooLong = "dispute reason is too long"
	// ErrSubmissionNotFound is thrown by Submission getter on an
	// unallocated sequence number.
	ErrSubmissionNotFound = "submission not found"

	configPrefix = []byte("config")
)

// nolint:deadcode,unused
func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner    interop.Hash160
		minStake int
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}
	if args.minStake < 0 {
		panic("negative minimal stake")
	}

	storage.Put(ctx, common.OwnerKey, args.owner)
	setConfig(ctx, []byte(MinStakeConfigKey), args.minStake)

	runtime.Log("trustscore contract initialized")
}

// Update method updates contract source code and manifest. It can be
// invoked only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("trustscore contract updated")
}

// InitializeAccount creates a reputation record for the account with the
// starting score. It can be invoked only by the account itself. The
// method is idempotent: it returns true when the record was created and
// false when the account had been initialized before, in which case the
// stored record is left untouched.
func InitializeAccount(account interop.Hash160) bool {
	ctx := storage.GetContext()

	if len(account) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	common.CheckWitness(account)

	key := accountKey(account)
	if storage.Get(ctx, key) != nil {
		return false
	}

	rep := AccountReputation{
		Account:           account,
		Score:             initialScore,
		TotalInteractions: 0,
		LastUpdated:       ledger.CurrentIndex(),
		Status:            int(weights.Classify(initialScore)),
	}
	common.SetSerialized(ctx, key, rep)

	storage.Put(ctx, totalUsersKey, common.GetInt(ctx, totalUsersKey)+1)
	runtime.Log("account reputation initialized")

	return true
}

// RegisterVerifier adds the account to the verifier registry with the
// given credibility weight and stake. It can be invoked only by the
// contract owner. The stake must not be below the MinVerifierStake
// config value.
func RegisterVerifier(verifier interop.Hash160, weight int, stake int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	if len(verifier) != interop.Hash160Len {
		panic("incorrect length of verifier script hash")
	}
	if !weights.ValidWeight(weight) {
		panic(ErrInvalidWeight)
	}
	if stake < minStake(ctx) {
		panic(ErrInsufficientStake)
	}

	key := verifierKey(verifier)
	if storage.Get(ctx, key) != nil {
		panic(ErrAlreadyRegistered)
	}

	v := Verifier{
		Account:            verifier,
		Active:             true,
		CredibilityWeight:  weight,
		TotalVerifications: 0,
		StakeAmount:        stake,
	}
	common.SetSerialized(ctx, key, v)

	storage.Put(ctx, totalVerifiersKey, common.GetInt(ctx, totalVerifiersKey)+1)

	runtime.Log("verifier registered")
	runtime.Notify("VerifierRegistered", verifier, weight)
}

// DeactivateVerifier marks the verifier inactive keeping its registry
// record. It can be invoked only by the contract owner. Submissions
// already made by the verifier stay resolvable.
func DeactivateVerifier(verifier interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	v := getVerifier(ctx, verifier)
	if v.Active {
		v.Active = false
		common.SetSerialized(ctx, verifierKey(verifier), v)
	}

	runtime.Log("verifier deactivated")
}

// ReactivateVerifier flips a previously deactivated verifier back to the
// active state. It can be invoked only by the contract owner.
func ReactivateVerifier(verifier interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	v := getVerifier(ctx, verifier)
	if !v.Active {
		v.Active = true
		common.SetSerialized(ctx, verifierKey(verifier), v)
	}

	runtime.Log("verifier reactivated")
}

// SubmitScore appends an immutable attestation of the user score. It can
// be invoked only by a registered active verifier witnessing the call.
// The live account score is not touched, the attestation only becomes
// available for RecomputeReputation batches. The method returns the
// allocated global sequence number.
func SubmitScore(verifier interop.Hash160, user interop.Hash160, score int, confidence int, category string) int {
	ctx := storage.GetContext()

	common.CheckWitness(verifier)

	v := getVerifier(ctx, verifier)
	if !v.Active {
		panic(ErrInactiveVerifier)
	}
	if storage.Get(ctx, accountKey(user)) == nil {
		panic(ErrUnknownAccount)
	}
	if !weights.ValidScore(score) || !weights.ValidScore(confidence) {
		panic(ErrInvalidScore)
	}
	if len(category) > maxCategoryLength {
		panic(ErrCategoryTooLong)
	}

	id := common.NextID(ctx, submissionCounterKey)
	sub := Submission{
		Account:    user,
		Verifier:   verifier,
		Score:      score,
		Confidence: confidence,
		Timestamp:  ledger.CurrentIndex(),
		Category:   category,
	}
	common.SetSerialized(ctx, submissionKey(id), sub)

	v.TotalVerifications = v.TotalVerifications + 1 // neo-go#953
	common.SetSerialized(ctx, verifierKey(verifier), v)

	runtime.Notify("ScoreSubmitted", user, verifier, id)

	return id
}

// RecomputeReputation folds a batch of previously committed attestations
// into the user reputation. The method is permissionless: it operates
// only on immutable submissions, so it cannot be used to forge data.
//
// The stored score is first decayed by the number of full inactivity
// periods since LastUpdated. Every resolvable id of the batch
// contributes its weighted score, ids that do not resolve to a
// submission of this user and a registered verifier are skipped.
// Deactivated verifiers still resolve with their current credibility
// weight. The weighted average of the batch is blended with the decayed
// prior score, classified and committed together with the new
// LastUpdated height. TotalInteractions grows by the number of
// attestations actually resolved, so re-submitting an id in a later
// batch counts it again — deduplication of batches is the caller's
// responsibility.
//
// A batch resolving to zero usable submissions still succeeds leaving
// exactly the decayed score. The method returns the committed record.
func RecomputeReputation(user interop.Hash160, ids []int) AccountReputation {
	ctx := storage.GetContext()

	if len(ids) > maxBatchSize {
		panic(ErrBatchTooLarge)
	}

	rawRep := storage.Get(ctx, accountKey(user))
	if rawRep == nil {
		panic(ErrUnknownAccount)
	}
	rep := std.Deserialize(rawRep.([]byte)).(AccountReputation)

	height := ledger.CurrentIndex()
	decayed := weights.Decay(rep.Score, weights.Periods(height-rep.LastUpdated))

	var (
		scoreSum  int
		weightSum int
		resolved  int
	)

	for i := range ids {
		data := storage.Get(ctx, submissionKey(ids[i]))
		if data == nil {
			continue
		}
		sub := std.Deserialize(data.([]byte)).(Submission)
		if !common.BytesEqual(sub.Account, user) {
			continue
		}

		rawV := storage.Get(ctx, verifierKey(sub.Verifier))
		if rawV == nil {
			continue
		}
		v := std.Deserialize(rawV.([]byte)).(Verifier)

		contribution := weights.Contribution(sub.Score, v.CredibilityWeight, sub.Confidence)
		scoreSum = scoreSum + contribution*v.CredibilityWeight
		weightSum = weightSum + v.CredibilityWeight
		resolved = resolved + 1
	}

	if weightSum > 0 {
		rep.Score = weights.Blend(scoreSum/weightSum, decayed)
	} else {
		// nothing resolved, the decayed score stands alone
		rep.Score = decayed
	}
	rep.LastUpdated = height
	rep.TotalInteractions = rep.TotalInteractions + resolved
	rep.Status = int(weights.Classify(rep.Score))

	common.SetSerialized(ctx, accountKey(user), rep)

	runtime.Notify("ReputationUpdated", user, rep.Score, rep.Status)

	return rep
}

// RaiseDispute appends a dispute record for the account. It can be
// invoked only by an initialized account witnessing the call. The
// method returns the allocated global dispute id. Dispute resolution is
// not implemented by the contract, records stay open.
func RaiseDispute(account interop.Hash160, reason string) int {
	ctx := storage.GetContext()

	common.CheckWitness(account)

	if storage.Get(ctx, accountKey(account)) == nil {
		panic(ErrUnknownAccount)
	}
	if len(reason) > maxReasonLength {
		panic(ErrReasonTooLong)
	}

	id := common.NextID(ctx, disputeCounterKey)
	d := Dispute{
		Account:    account,
		Reason:     reason,
		Status:     disputeStatusOpen,
		CreatedAt:  ledger.CurrentIndex(),
		ResolvedAt: 0,
	}
	common.SetSerialized(ctx, disputeKey(account, id), d)

	runtime.Notify("DisputeRaised", account, id)

	return id
}

// GetReputation returns the live reputation record of the account.
func GetReputation(account interop.Hash160) AccountReputation {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, accountKey(account))
	if data == nil {
		panic(ErrUnknownAccount)
	}

	return std.Deserialize(data.([]byte)).(AccountReputation)
}

// GetVerifierInfo returns the registry record of the verifier, active
// or deactivated.
func GetVerifierInfo(verifier interop.Hash160) Verifier {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, verifierKey(verifier))
	if data == nil {
		panic(ErrNotVerifier)
	}

	return std.Deserialize(data.([]byte)).(Verifier)
}

// GetSubmission returns the attestation stored by the given global
// sequence number.
func GetSubmission(id int) Submission {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, submissionKey(id))
	if data == nil {
		panic(ErrSubmissionNotFound)
	}

	return std.Deserialize(data.([]byte)).(Submission)
}

// ListDisputes returns an iterator over all dispute records of the
// account in the order they were raised.
func ListDisputes(account interop.Hash160) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	key := append([]byte{disputePrefix}, account...)

	return storage.Find(ctx, key, storage.ValuesOnly|storage.DeserializeValues)
}

// TotalUsers returns the number of initialized accounts.
func TotalUsers() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, totalUsersKey)
}

// TotalVerifiers returns the number of registered verifiers including
// deactivated ones.
func TotalVerifiers() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, totalVerifiersKey)
}

// Config returns the configuration value of the specified key.
func Config(key []byte) interface{} {
	ctx := storage.GetReadOnlyContext()
	return getConfig(ctx, key)
}

// SetConfig updates the configuration value of the specified key. It
// can be invoked only by the contract owner.
func SetConfig(key, val []byte) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(ctx)

	setConfig(ctx, key, val)

	runtime.Log("setConfig: configuration has been updated")
}

// ListConfig returns the whole contract configuration.
func ListConfig() []record {
	ctx := storage.GetReadOnlyContext()

	var config []record

	it := storage.Find(ctx, configPrefix, storage.None)
	for iterator.Next(it) {
		pair := iterator.Value(it).([]interface{})
		key := pair[0].([]byte)
		val := pair[1].([]byte)
		r := record{key: key[len(configPrefix):], val: val}

		config = append(config, r)
	}

	return config
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func accountKey(account interop.Hash160) []byte {
	return append([]byte{accountPrefix}, account...)
}

func verifierKey(verifier interop.Hash160) []byte {
	return append([]byte{verifierPrefix}, verifier...)
}

func submissionKey(id int) []byte {
	return append([]byte{submissionPrefix}, convert.ToBytes(id)...)
}

func disputeKey(account interop.Hash160, id int) []byte {
	key := append([]byte{disputePrefix}, account...)
	return append(key, convert.ToBytes(id)...)
}

func getVerifier(ctx storage.Context, verifier interop.Hash160) Verifier {
	data := storage.Get(ctx, verifierKey(verifier))
	if data == nil {
		panic(ErrNotVerifier)
	}

	return std.Deserialize(data.([]byte)).(Verifier)
}

func minStake(ctx storage.Context) int {
	data := getConfig(ctx, []byte(MinStakeConfigKey))
	if data == nil {
		return 0
	}

	return data.(int)
}

func getConfig(ctx storage.Context, key interface{}) interface{} {
	postfix := key.([]byte)
	storageKey := append(configPrefix, postfix...)

	return storage.Get(ctx, storageKey)
}

func setConfig(ctx storage.Context, key, val interface{}) {
	postfix := key.([]byte)
	storageKey := append(configPrefix, postfix...)

	storage.Put(ctx, storageKey, val)
}
