package cryptonote

import "pasta.dev/core/crypto"

// RctType discriminates the signature scheme a RingCT payload carries.
// Only the two bulletproof-era types are handled as non-trivial; Null marks
// a miner/coinbase transaction, which carries amounts in the clear.
type RctType uint8

const (
	RctTypeNull RctType = iota
	RctTypeBulletproof
	RctTypeBulletproofPlus
)

// CtKey is a Pedersen-committed output: a destination point and its
// (encrypted, from the wallet's point of view; opaque here) mask commitment.
type CtKey struct {
	Dest crypto.PublicKey
	Mask crypto.PublicKey
}

// Bulletproof is the range-proof payload for one batch of outputs. This core
// treats the proof body as opaque bytes: it reconstructs and checks the
// commitment vector V but does not implement the inner-product argument
// itself, which is delegated to an external verifier.
type Bulletproof struct {
	V []crypto.PublicKey // commitment vector reconstructed from outPk masks
	A, S, T1, T2         crypto.PublicKey
	TauX                 crypto.SecretKey
	Mu                   crypto.SecretKey
	L, R                 []crypto.PublicKey
	A1, B, T             crypto.PublicKey // BulletproofPlus-only fields; zero otherwise
}

// MgSig is one ring signature (one per spent input in the non-CLSAG layout
// this core targets).
type MgSig struct {
	Ss  [][]crypto.SecretKey
	Cc  crypto.SecretKey
}

// RctSigBase is the part of a RingCT signature that is always present and
// always hashed, even when the prunable half is stripped (pruned blocks).
type RctSigBase struct {
	Type       RctType
	TxnFee     uint64
	PseudoOuts []crypto.PublicKey // absent (len 0) for RctTypeBulletproof+ with the pseudoOuts moved to prunable
	OutPk      []CtKey
}

// RctSigPrunable is the part of a RingCT signature that can be stripped from
// a pruned transaction without affecting its identifier's first two hash
// parts.
type RctSigPrunable struct {
	RangeProofs []Bulletproof
	MGs         []MgSig
	PseudoOuts  []crypto.PublicKey // used instead of RctSigBase.PseudoOuts from BulletproofPlus onward
}

// RctSig is the full RingCT payload attached to a version>=2 transaction.
type RctSig struct {
	Base     RctSigBase
	Prunable RctSigPrunable
	// PrunablePresent is false for a pruned transaction: the prunable hash
	// part then falls back to NullHash.
	PrunablePresent bool
	// PrunableRaw holds the exact wire bytes of the prunable payload as
	// parsed. The scheme-dependent bulletproof/MG encoding is treated as
	// opaque and delegated to an external verifier; the raw bytes are
	// retained so the prunable hash part of the transaction identifier can
	// still be reproduced exactly.
	PrunableRaw []byte
}

// ExpandMode selects how much of a parsed transaction's RingCT payload must
// be reconstructed: BaseOnly skips the per-output bulletproof commitment
// rebuild, which is unnecessary work when only the tx identifier or fee is
// wanted.
type ExpandMode int

const (
	ExpandFull ExpandMode = iota
	ExpandBaseOnly
)

// minBulletproofLBits is the minimum length of a bulletproof's L vector;
// shorter proofs cannot encode even a single output and are rejected before
// any reconstruction is attempted.
const minBulletproofLBits = 6

// ExpandRctSig reconstructs derived RingCT state for tx: it requires that
// OutPk has exactly one entry per Vout, sets each entry's Dest from the
// matching output key (Mask, as read off the wire, is left untouched) and,
// in ExpandFull mode, requires that
// each bulletproof's encoded output capacity covers the outputs it claims to
// range-prove.
//
// Mirrors cryptonote_format_utils.cpp's expand_transaction_1: outPk[i].dest
// is copied from vout[i].target's compressed key, and each bulletproof's
// commitment vector V is derived from the matching outPk masks scaled by the
// curve's inverse-of-8 constant (RingCT commitments are encoded pre-divided
// by the cofactor).
func ExpandRctSig(tx *Transaction, mode ExpandMode) error {
	if tx.Rct == nil {
		return nil
	}
	rct := tx.Rct
	if tx.Version == 1 || rct.Base.Type == RctTypeNull {
		return nil
	}

	if len(rct.Base.OutPk) != len(tx.Vout) {
		return chainErr(ErrBadRctShape, "outPk count does not match vout count")
	}
	for i := range tx.Vout {
		if tx.Vout[i].TargetKind != TxOutToKey {
			return chainErr(ErrBadRctShape, "non-key output in a RingCT transaction")
		}
		rct.Base.OutPk[i].Dest = tx.Vout[i].Key
	}

	if mode == ExpandBaseOnly || !rct.PrunablePresent {
		return nil
	}

	invEight := crypto.InvEight()
	consumed := 0
	for bpIdx := range rct.Prunable.RangeProofs {
		bp := &rct.Prunable.RangeProofs[bpIdx]
		if len(bp.L) < minBulletproofLBits {
			return chainErr(ErrBadBulletproofShape, "bulletproof L vector too short")
		}
		maxOutputs := 1 << (len(bp.L) - minBulletproofLBits)
		n := maxOutputs
		if consumed+n > len(rct.Base.OutPk) {
			n = len(rct.Base.OutPk) - consumed
		}
		if n <= 0 {
			return chainErr(ErrBadBulletproofShape, "bulletproof covers no outputs")
		}
		bp.V = make([]crypto.PublicKey, n)
		for i := 0; i < n; i++ {
			v, ok := crypto.ScalarMultKey(invEight, rct.Base.OutPk[consumed+i].Mask)
			if !ok {
				return chainErr(ErrPointDecode, "bad output mask commitment")
			}
			bp.V[i] = v
		}
		consumed += n
	}
	if consumed != len(rct.Base.OutPk) {
		return chainErr(ErrBadBulletproofShape, "bulletproof capacity does not cover all outputs")
	}
	return nil
}
