package cryptonote

import (
	"testing"

	"pasta.dev/core/crypto"
)

func TestLookupAccOutsFindsOwnedOutput(t *testing.T) {
	dev := DefaultDevice

	viewSecret := deriveTestSecret("scan-view")
	spendSecret := deriveTestSecret("scan-spend")
	viewPublic, _ := dev.SecretKeyToPublicKey(viewSecret)
	spendPublic, _ := dev.SecretKeyToPublicKey(spendSecret)
	ack := AccountKeys{ViewSecret: viewSecret, SpendSecret: spendSecret, ViewPublic: viewPublic, SpendPublic: spendPublic}

	txSecret := deriveTestSecret("scan-tx")
	txPublic, _ := dev.SecretKeyToPublicKey(txSecret)
	derivation, _ := dev.GenerateKeyDerivation(txPublic, ack.ViewSecret)
	outPub, _ := DeriveOutputPublicKey(dev, derivation, 1, ack.SpendPublic)

	decoySecret := deriveTestSecret("scan-decoy")
	decoyPub, _ := dev.SecretKeyToPublicKey(decoySecret)

	tx := &Transaction{
		Version: 1,
		Vout: []TxOut{
			{Amount: 10, TargetKind: TxOutToKey, Key: decoyPub},
			{Amount: 20, TargetKind: TxOutToKey, Key: outPub},
		},
		Extra: AddPubkey(nil, txPublic),
	}

	owned, err := LookupAccOuts(dev, ack, tx, nil)
	if err != nil {
		t.Fatalf("LookupAccOuts: %v", err)
	}
	if len(owned) != 1 || owned[0].Index != 1 || owned[0].Amount != 20 {
		t.Fatalf("unexpected owned outputs: %+v", owned)
	}
}

func TestLookupAccOutsRejectsMismatchedAdditionalPubkeyCount(t *testing.T) {
	dev := DefaultDevice
	ack := AccountKeys{ViewSecret: deriveTestSecret("v"), SpendSecret: deriveTestSecret("s")}
	txSecret := deriveTestSecret("tx")
	txPublic, _ := dev.SecretKeyToPublicKey(txSecret)

	extra := AddPubkey(nil, txPublic)
	extra = AddAdditionalPubkeys(extra, []crypto.PublicKey{txPublic})

	tx := &Transaction{
		Vout:  []TxOut{{TargetKind: TxOutToKey}, {TargetKind: TxOutToKey}},
		Extra: extra,
	}
	if _, err := LookupAccOuts(dev, ack, tx, nil); err == nil {
		t.Fatal("expected ErrMalformedAdditionalPubkeys")
	}
}
