package cryptonote

import (
	"testing"

	"pasta.dev/core/crypto"
)

func TestExpandRctSigCopiesDestAndRejectsShapeMismatch(t *testing.T) {
	var outKey crypto.PublicKey
	outKey[0] = 0x7

	tx := &Transaction{
		Version: 2,
		Vout:    []TxOut{{TargetKind: TxOutToKey, Key: outKey}},
		Rct: &RctSig{
			Base: RctSigBase{
				Type:  RctTypeBulletproof,
				OutPk: []CtKey{{}},
			},
		},
	}
	if err := ExpandRctSig(tx, ExpandBaseOnly); err != nil {
		t.Fatalf("ExpandRctSig base-only: %v", err)
	}
	if tx.Rct.Base.OutPk[0].Dest != outKey {
		t.Fatal("OutPk.Dest was not copied from the matching vout")
	}

	tx.Rct.Base.OutPk = nil
	if err := ExpandRctSig(tx, ExpandBaseOnly); err == nil {
		t.Fatal("expected ErrBadRctShape for an outPk/vout length mismatch")
	}
}

func TestExpandRctSigRejectsShortBulletproof(t *testing.T) {
	var outKey crypto.PublicKey
	tx := &Transaction{
		Version: 2,
		Vout:    []TxOut{{TargetKind: TxOutToKey, Key: outKey}},
		Rct: &RctSig{
			Base:            RctSigBase{Type: RctTypeBulletproof, OutPk: []CtKey{{}}},
			Prunable:        RctSigPrunable{RangeProofs: []Bulletproof{{L: make([]crypto.PublicKey, 3)}}},
			PrunablePresent: true,
		},
	}
	if err := ExpandRctSig(tx, ExpandFull); err == nil {
		t.Fatal("expected ErrBadBulletproofShape for a short L vector")
	}
}

func TestExpandRctSigNullTypeIsNoop(t *testing.T) {
	tx := &Transaction{
		Version: 2,
		Vout:    []TxOut{{TargetKind: TxOutToKey}},
		Rct:     &RctSig{Base: RctSigBase{Type: RctTypeNull}},
	}
	if err := ExpandRctSig(tx, ExpandFull); err != nil {
		t.Fatalf("ExpandRctSig on a null-type rct should be a no-op: %v", err)
	}
}
