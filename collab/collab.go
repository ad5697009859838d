// Package collab declares the external collaborator boundary of spec.md
// §6: the interfaces round.Driver and dag.Store are written against but do
// not implement themselves. Grounded on the teacher's core/interfaces
// package (shared.go, acceptor.go) — plain interface declarations, no
// concrete wiring — generalized from chain/database lookups to this
// module's crypto/transport/storage/clock/handle boundary.
//
// No implementation ships in this package. A node binary wires concrete
// adapters (libp2p transport, a KV store, a monotonic clock source) behind
// these interfaces; test doubles for them live alongside the packages that
// consume them.
package collab

import (
	"context"

	"github.com/dmrl789/IPPAN-sub004/ids"
)

// Crypto is the cryptographic boundary consensus calls into: content
// hashing, signature verification, and a legacy SHA-256 slot for
// interoperating with non-Blake3 signing schemes still in use by some
// validator clients (spec.md §6).
type Crypto interface {
	Blake3(data []byte) [32]byte
	VerifySignature(pubkey, msg, sig []byte) bool
	HashSHA256(data []byte) [32]byte
}

// Transport publishes and subscribes to the two wire messages consensus
// exchanges out of band: proposed blocks and validator telemetry samples.
// Consensus itself never dials a peer; it only reacts to what arrives here.
type Transport interface {
	PublishBlock(ctx context.Context, payload []byte) error
	SubscribeBlocks(ctx context.Context) (<-chan []byte, error)
	PublishTelemetry(ctx context.Context, nodeID ids.ID, payload []byte) error
	SubscribeTelemetry(ctx context.Context) (<-chan []byte, error)
}

// Storage persists the state a restarted node must recover: finalized
// rounds, the bond/reputation ledger, and the emission schedule's running
// supply. Reads are snapshots — Storage never hands back a reference a
// caller could mutate out from under the Driver.
type Storage interface {
	PersistRound(ctx context.Context, round uint64, data []byte) error
	PersistLedgerState(ctx context.Context, data []byte) error
	PersistEmissionState(ctx context.Context, data []byte) error
	SnapshotRound(ctx context.Context, round uint64) ([]byte, error)
	SnapshotLedgerState(ctx context.Context) ([]byte, error)
	SnapshotEmissionState(ctx context.Context) ([]byte, error)
}

// Clock is the monotonic microsecond source each process samples to form
// its local hashtimer.Sample before submitting it into a round's Form phase.
// Consensus never reads wall-clock time directly; every timestamp that
// feeds HashTimer ordering passes through here first.
type Clock interface {
	NowUs() int64
}

// HandleRegistry resolves the opaque handles spec.md's confidential and
// AI-call transaction kinds reference. It is the seam a node binary would
// wire expiry/ownership checks on a handle through; this module's own
// `dag`/`round` packages don't reference handles yet, so nothing calls
// through this interface today — the handle's content and storage
// lifecycle stay this interface's concern, not consensus's, whenever it
// is wired.
type HandleRegistry interface {
	Resolve(ctx context.Context, handle [32]byte) (owner ids.ID, expiresAtRound uint64, err error)
	Expired(handle [32]byte, currentRound uint64) bool
}
