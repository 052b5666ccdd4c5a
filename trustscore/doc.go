/*
Package trustscorecontract contains implementation of TrustScore contract.

The contract maintains a trust score in [0,100] for every initialized
account. Scores are derived from attestations submitted by staked
verifiers registered by the contract owner. Every attestation carries a
declared confidence and is weighted by the credibility of the verifier
that produced it. Submitted attestations are immutable and do not touch
the live score, anyone may later fold a batch of them into an account
reputation with RecomputeReputation, which also fades the stored score
towards zero for accounts that stayed inactive for long (time is
measured in blocks of the underlying chain).

Accounts may raise disputes over their score. Dispute records are
append-only, the resolution workflow is not part of this contract.

# Contract notifications

VerifierRegistered notification. Produced when the contract owner
registers a new verifier:

	VerifierRegistered
	  - name: verifier
	    type: Hash160
	  - name: weight
	    type: Integer

ScoreSubmitted notification. Produced when an active verifier submits
an attestation:

	ScoreSubmitted
	  - name: account
	    type: Hash160
	  - name: verifier
	    type: Hash160
	  - name: id
	    type: Integer

ReputationUpdated notification. Produced when an account reputation is
recomputed:

	ReputationUpdated
	  - name: account
	    type: Hash160
	  - name: score
	    type: Integer
	  - name: status
	    type: Integer

DisputeRaised notification. Produced when an initialized account raises
a dispute:

	DisputeRaised
	  - name: account
	    type: Hash160
	  - name: id
	    type: Integer
*/
package trustscorecontract
