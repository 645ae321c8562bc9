package cryptonote

import (
	"sync/atomic"

	"pasta.dev/core/crypto"
)

// Hash256, Hash64 are the two fixed-width hash sizes used on the wire.
type Hash256 = crypto.PublicKey // both are bare [32]byte; alias keeps intent visible at call sites
type Hash64 [8]byte

// NullHash is the all-zero Hash256 sentinel.
var NullHash Hash256

// AccountKeys holds everything needed to detect (and, unless watch-only,
// spend) outputs belonging to one account. MultisigShares is empty outside
// multisig use.
type AccountKeys struct {
	ViewSecret     crypto.SecretKey
	SpendSecret    crypto.SecretKey // crypto.NullSecretKey => watch-only
	SpendPublic    crypto.PublicKey
	ViewPublic     crypto.PublicKey
	MultisigShares []crypto.SecretKey
}

// WatchOnly reports whether ack has no spend secret.
func (ack AccountKeys) WatchOnly() bool {
	return ack.SpendSecret == crypto.NullSecretKey
}

// Multisig reports whether ack holds a partial (multisig) spend secret.
func (ack AccountKeys) Multisig() bool {
	return len(ack.MultisigShares) > 0
}

// Zeroize wipes every secret field of ack.
func (ack *AccountKeys) Zeroize() {
	ack.ViewSecret.Zeroize()
	ack.SpendSecret.Zeroize()
	for i := range ack.MultisigShares {
		ack.MultisigShares[i].Zeroize()
	}
}

// SubaddressIndex is re-exported for callers that only import cryptonote.
type SubaddressIndex = crypto.SubaddressIndex

// SubaddressBook maps a derived subaddress spend point to its index, used by
// the account-output scanner (C7) to recognise owned outputs.
type SubaddressBook map[crypto.PublicKey]SubaddressIndex

const (
	txinTagGen    = 0xff
	txinTagToKey  = 0x02

	txoutTagToScript     = 0x00
	txoutTagToScriptHash = 0x01
	txoutTagToKey        = 0x02
)

// TxInKind discriminates the TxIn tagged union.
type TxInKind int

const (
	TxInGen TxInKind = iota
	TxInToKey
)

// TxIn is the tagged union of coinbase (Gen) and spend (ToKey) inputs.
type TxIn struct {
	Kind TxInKind

	// Gen
	Height uint64

	// ToKey
	Amount      uint64
	KeyOffsets  []uint64 // absolute in memory; relative on the wire
	KeyImage    crypto.KeyImage
}

// TxOutKind discriminates the TxOut.Target tagged union. Only ToKey is
// handled by this core; the others exist on the wire and are tolerated by
// the parser but rejected by CheckOutsValid.
type TxOutKind int

const (
	TxOutToScript TxOutKind = iota
	TxOutToScriptHash
	TxOutToKey
)

// TxOut is one transaction output.
type TxOut struct {
	Amount uint64

	TargetKind TxOutKind

	// ToKey
	Key crypto.PublicKey

	// ToScript
	ScriptKeys []crypto.PublicKey
	Script     []byte

	// ToScriptHash
	ScriptHash Hash256
}

// Transaction is the canonical in-memory transaction: a prefix plus, for
// version>=2, a RingCT payload. Cached identities are invalidated on every
// mutation (see InvalidateHashes).
type Transaction struct {
	Version    uint16
	UnlockTime uint64
	Vin        []TxIn
	Vout       []TxOut
	Extra      []byte
	Rct        *RctSig // nil iff Version == 1

	hashCache
}

// hashCache is the (value, valid-bit) memoization pair shared by Transaction
// and Block: readers check the bit and fall through to recomputation on a
// miss; concurrent recomputations are permitted and idempotent.
type hashCache struct {
	hash         Hash256
	hashValid    atomic.Bool
	blobSize     uint64
	blobSizeValid atomic.Bool
}

func (c *hashCache) invalidate() {
	c.hashValid.Store(false)
	c.blobSizeValid.Store(false)
}

// InvalidateHashes clears tx's cached identity/size. Mutation APIs call this
// internally; callers that mutate a Transaction by hand must call it too.
func (tx *Transaction) InvalidateHashes() { tx.invalidate() }

// BlockHeader is the fixed fields hashed as part of a block's PoW input.
type BlockHeader struct {
	MajorVersion uint8
	MinorVersion uint8
	Timestamp    uint64
	PrevID       Hash256
	Nonce        uint32
}

// Block is a header plus the coinbase (miner) transaction and the hashes of
// the other transactions it includes.
type Block struct {
	Header   BlockHeader
	MinerTx  Transaction
	TxHashes []Hash256

	hashCache
}

// InvalidateHashes clears b's cached identity.
func (b *Block) InvalidateHashes() { b.invalidate() }
