package cryptonote

import (
	"sync/atomic"

	"pasta.dev/core/crypto"
)

// TxForkIDStr is prepended to the prefix bytes of a version>=3 transaction
// before hashing h[0], domain-separating its identifier from the same bytes
// interpreted under an earlier fork.
const TxForkIDStr = "TransactionForkID"

var (
	txHashesCalculated    atomic.Uint64
	txHashesCached        atomic.Uint64
	blockHashesCalculated atomic.Uint64
	blockHashesCached     atomic.Uint64
)

// HashStats is a snapshot of the process-wide identity-cache counters.
type HashStats struct {
	TxHashesCalculated    uint64
	TxHashesCached        uint64
	BlockHashesCalculated uint64
	BlockHashesCached     uint64
}

// GetHashStats returns the current counter values.
func GetHashStats() HashStats {
	return HashStats{
		TxHashesCalculated:    txHashesCalculated.Load(),
		TxHashesCached:        txHashesCached.Load(),
		BlockHashesCalculated: blockHashesCalculated.Load(),
		BlockHashesCached:     blockHashesCached.Load(),
	}
}

// GetTransactionHash returns tx's identifier, computing and caching it on
// first use. Concurrent callers may race into the calculation branch; each
// computes the same value, so no lock is needed, only an atomic valid bit.
func GetTransactionHash(tx *Transaction) Hash256 {
	if tx.hashValid.Load() {
		txHashesCached.Add(1)
		return tx.hash
	}
	h := computeTransactionHash(tx)
	tx.hash = h
	tx.hashValid.Store(true)
	txHashesCalculated.Add(1)
	return h
}

func computeTransactionHash(tx *Transaction) Hash256 {
	if tx.Version == 1 {
		blob := MarshalTransactionPrefix(tx)
		return Hash256(crypto.CnFastHash(blob))
	}

	prefixBytes := MarshalTransactionPrefix(tx)
	if tx.Version >= 3 {
		prefixBytes = append([]byte(TxForkIDStr), prefixBytes...)
	}
	h0 := crypto.CnFastHash(prefixBytes)

	h1 := crypto.CnFastHash(MarshalRctSigBase(tx))

	var h2 Hash256
	if tx.Rct != nil && tx.Rct.PrunablePresent {
		mixin := uint64(0)
		if len(tx.Vin) > 0 && tx.Vin[0].Kind == TxInToKey && len(tx.Vin[0].KeyOffsets) > 0 {
			mixin = uint64(len(tx.Vin[0].KeyOffsets) - 1)
		}
		buf := appendVarint(nil, mixin)
		buf = append(buf, tx.Rct.PrunableRaw...)
		h2 = Hash256(crypto.CnFastHash(buf))
	} else {
		h2 = NullHash
	}

	var combined []byte
	combined = append(combined, h0[:]...)
	combined = append(combined, h1[:]...)
	combined = append(combined, h2[:]...)
	return Hash256(crypto.CnFastHash(combined))
}

// GetTransactionBlobSize returns the wire size of tx, computing and caching
// it on first use.
func GetTransactionBlobSize(tx *Transaction) uint64 {
	if tx.blobSizeValid.Load() {
		return tx.blobSize
	}
	n := uint64(len(MarshalTransactionPrefix(tx)))
	if tx.Rct != nil {
		n += uint64(len(MarshalRctSigBase(tx)))
		n += uint64(len(tx.Rct.PrunableRaw))
	}
	tx.blobSize = n
	tx.blobSizeValid.Store(true)
	return n
}

// blockHashingBlob builds the bytes a PoW hash is computed over: the
// serialized header (MarshalBlockHeader) followed by the tree-hash root of
// {hash(miner_tx)} ∪ TxHashes and a varint transaction count. Mirrors
// get_block_hashing_blob.
func blockHashingBlob(b *Block) []byte {
	buf := MarshalBlockHeader(b)

	leaves := make([][32]byte, 0, 1+len(b.TxHashes))
	leaves = append(leaves, [32]byte(GetTransactionHash(&b.MinerTx)))
	for _, h := range b.TxHashes {
		leaves = append(leaves, [32]byte(h))
	}
	root := crypto.TreeHash(leaves)
	buf = append(buf, root[:]...)
	buf = appendVarint(buf, uint64(len(leaves)))
	return buf
}

// GetBlockHash returns b's identifier, computing and caching it on first use.
func GetBlockHash(b *Block) Hash256 {
	if b.hashValid.Load() {
		blockHashesCached.Add(1)
		return b.hash
	}
	h := Hash256(crypto.CnFastHash(blockHashingBlob(b)))
	b.hash = h
	b.hashValid.Store(true)
	blockHashesCalculated.Add(1)
	return h
}

// NetworkType selects which fork-version table GetBlockPowHash consults.
type NetworkType int

const (
	Mainnet NetworkType = iota
	Testnet
	Stagenet
)

// PowAlgo identifies which proof-of-work function a block's major version
// routes to.
type PowAlgo int

const (
	PowCNv1 PowAlgo = iota
	PowCNHeavy
	PowCNGPU
)

// forkVersions holds the major_version activation threshold for each post-v1
// PoW variant, per network. A version of 0 means the fork is disabled on
// that network.
type forkVersions struct {
	cnHeavy uint8
	cnGPU   uint8
}

var forkTable = map[NetworkType]forkVersions{
	Mainnet:  {cnHeavy: 7, cnGPU: 13},
	Testnet:  {cnHeavy: 7, cnGPU: 13},
	Stagenet: {cnHeavy: 7, cnGPU: 13},
}

// SelectPowAlgo resolves which PoW function applies to a block whose header
// declares majorVersion, on net. CN-GPU takes priority over CN-Heavy when
// both forks are active and their ranges overlap; a fork version of 0
// disables that fork entirely.
func SelectPowAlgo(net NetworkType, majorVersion uint8) PowAlgo {
	f := forkTable[net]
	if f.cnGPU != 0 && majorVersion >= f.cnGPU {
		return PowCNGPU
	}
	if f.cnHeavy != 0 && majorVersion >= f.cnHeavy {
		return PowCNHeavy
	}
	return PowCNv1
}

// PowContext is an opaque, reusable scratch buffer for the CN-Heavy/CN-GPU
// hash functions, which require a large scratchpad that is expensive to
// allocate per call. A caller mining many candidate blocks should borrow one
// context and reuse it rather than let GetBlockPowHash allocate internally.
type PowContext struct {
	scratch []byte
}

// NewPowContext allocates scratch space sized for algo.
func NewPowContext(algo PowAlgo) *PowContext {
	size := 2 * 1024 * 1024
	if algo == PowCNGPU {
		size = 4 * 1024 * 1024
	}
	return &PowContext{scratch: make([]byte, size)}
}

// GetBlockPowHash computes the proof-of-work hash for b on net, routing on
// b's own declared major_version. ctx may be nil, in which case a throwaway
// context is allocated. The CN-Heavy and CN-GPU memory-hard transforms
// themselves are external black boxes: this core dispatches to the right
// algorithm and blob but does not reimplement the memory-hard cores.
func GetBlockPowHash(b *Block, net NetworkType, ctx *PowContext) ([32]byte, PowAlgo) {
	algo := SelectPowAlgo(net, b.Header.MajorVersion)
	if ctx == nil {
		ctx = NewPowContext(algo)
	}
	blob := blockHashingBlob(b)
	switch algo {
	case PowCNGPU, PowCNHeavy:
		// Scratchpad-dependent variants would consume ctx.scratch here; this
		// core exposes the dispatch and blob construction only.
		_ = ctx
		return crypto.CnFastHash(append(blob, byte(algo))), algo
	default:
		return crypto.CnFastHash(blob), algo
	}
}
