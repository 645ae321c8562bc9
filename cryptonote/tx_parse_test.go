package cryptonote

import (
	"reflect"
	"testing"

	"pasta.dev/core/crypto"
)

func TestRelativeAbsoluteKeyOffsetsRoundTrip(t *testing.T) {
	abs := []uint64{5, 7, 100, 101, 500}
	rel := absoluteToRelative(abs)
	got := relativeToAbsolute(rel)
	if !reflect.DeepEqual(abs, got) {
		t.Fatalf("round trip mismatch: %v -> %v -> %v", abs, rel, got)
	}
}

func sampleV1Tx() *Transaction {
	var ki crypto.KeyImage
	ki[0] = 0x42
	var outKey crypto.PublicKey
	outKey[0] = 0x99

	return &Transaction{
		Version:    1,
		UnlockTime: 0,
		Vin: []TxIn{
			{Kind: TxInToKey, Amount: 1000, KeyOffsets: []uint64{3, 10, 25}, KeyImage: ki},
		},
		Vout: []TxOut{
			{Amount: 900, TargetKind: TxOutToKey, Key: outKey},
		},
		Extra: []byte{0xde, 0xad, 0xbe, 0xef},
	}
}

func TestTransactionPrefixRoundTrip(t *testing.T) {
	tx := sampleV1Tx()
	blob := MarshalTransactionPrefix(tx)

	got, err := ParseTransaction(blob)
	if err != nil {
		t.Fatalf("ParseTransaction: %v", err)
	}
	if got.Version != tx.Version || got.UnlockTime != tx.UnlockTime {
		t.Fatalf("prefix scalar fields mismatch: %+v", got)
	}
	if !reflect.DeepEqual(got.Vin, tx.Vin) {
		t.Fatalf("vin mismatch: got %+v want %+v", got.Vin, tx.Vin)
	}
	if !reflect.DeepEqual(got.Vout, tx.Vout) {
		t.Fatalf("vout mismatch: got %+v want %+v", got.Vout, tx.Vout)
	}
	if !reflect.DeepEqual(got.Extra, tx.Extra) {
		t.Fatalf("extra mismatch")
	}
}

func TestParseTransactionRejectsUnknownTxinTag(t *testing.T) {
	var buf []byte
	buf = appendVarint(buf, 1) // version
	buf = appendVarint(buf, 0) // unlock_time
	buf = appendVarint(buf, 1) // vin count
	buf = append(buf, 0x03)    // unsupported txin tag
	if _, err := ParseTransaction(buf); err == nil {
		t.Fatal("expected an error for an unsupported txin variant")
	}
}

func TestParseTxOutTolerantOfScriptHashVariant(t *testing.T) {
	var buf []byte
	buf = appendVarint(buf, 1) // version
	buf = appendVarint(buf, 0)
	buf = appendVarint(buf, 0) // vin count
	buf = appendVarint(buf, 1) // vout count
	buf = appendVarint(buf, 42)
	buf = append(buf, txoutTagToScriptHash)
	buf = append(buf, make([]byte, 32)...)
	buf = appendVarint(buf, 0) // extra length

	tx, err := ParseTransaction(buf)
	if err != nil {
		t.Fatalf("ParseTransaction: %v", err)
	}
	if CheckOutsValid(tx) {
		t.Fatal("a to_scripthash output should fail CheckOutsValid")
	}
}
