package cryptonote

import (
	"testing"

	"pasta.dev/core/crypto"
)

func deriveTestSecret(label string) crypto.SecretKey {
	return crypto.HashToScalar([]byte(label))
}

func TestGenerateKeyImageHelperRoundTrip(t *testing.T) {
	dev := DefaultDevice

	viewSecret := deriveTestSecret("view")
	spendSecret := deriveTestSecret("spend")
	viewPublic, _ := dev.SecretKeyToPublicKey(viewSecret)
	spendPublic, _ := dev.SecretKeyToPublicKey(spendSecret)
	ack := AccountKeys{ViewSecret: viewSecret, SpendSecret: spendSecret, ViewPublic: viewPublic, SpendPublic: spendPublic}

	txSecret := deriveTestSecret("tx")
	txPublic, _ := dev.SecretKeyToPublicKey(txSecret)

	derivation, ok := dev.GenerateKeyDerivation(txPublic, ack.ViewSecret)
	if !ok {
		t.Fatal("GenerateKeyDerivation failed")
	}
	outPub, err := DeriveOutputPublicKey(dev, derivation, 0, ack.SpendPublic)
	if err != nil {
		t.Fatalf("DeriveOutputPublicKey: %v", err)
	}

	image, ephemeral, err := GenerateKeyImageHelper(dev, ack, txPublic, nil, 0, outPub, SubaddressIndex{})
	if err != nil {
		t.Fatalf("GenerateKeyImageHelper: %v", err)
	}
	wantImage, ok := dev.GenerateKeyImage(outPub, ephemeral)
	if !ok {
		t.Fatal("GenerateKeyImage failed")
	}
	if image != wantImage {
		t.Fatal("key image mismatch")
	}
}

func TestGenerateKeyImageHelperDetectsMismatch(t *testing.T) {
	dev := DefaultDevice
	viewSecret := deriveTestSecret("view2")
	spendSecret := deriveTestSecret("spend2")
	viewPublic, _ := dev.SecretKeyToPublicKey(viewSecret)
	spendPublic, _ := dev.SecretKeyToPublicKey(spendSecret)
	ack := AccountKeys{ViewSecret: viewSecret, SpendSecret: spendSecret, ViewPublic: viewPublic, SpendPublic: spendPublic}

	txSecret := deriveTestSecret("tx2")
	txPublic, _ := dev.SecretKeyToPublicKey(txSecret)

	wrongOut := deriveTestSecret("wrong")
	wrongPub, _ := dev.SecretKeyToPublicKey(wrongOut)

	if _, _, err := GenerateKeyImageHelper(dev, ack, txPublic, nil, 0, wrongPub, SubaddressIndex{}); err == nil {
		t.Fatal("expected a key-image mismatch error")
	}
}

func TestGenerateKeyImageHelperWatchOnlySucceeds(t *testing.T) {
	dev := DefaultDevice
	viewSecret := deriveTestSecret("view3")
	viewPublic, _ := dev.SecretKeyToPublicKey(viewSecret)
	ack := AccountKeys{ViewSecret: viewSecret, ViewPublic: viewPublic}

	outPub := viewPublic // any claimed output public key; watch-only takes it on faith
	image, ephemeral, err := GenerateKeyImageHelper(dev, ack, viewPublic, nil, 0, outPub, SubaddressIndex{})
	if err != nil {
		t.Fatalf("GenerateKeyImageHelper: %v", err)
	}
	if ephemeral != crypto.NullSecretKey {
		t.Fatal("watch-only ephemeral secret should be the null scalar")
	}
	wantImage, ok := dev.GenerateKeyImage(outPub, crypto.NullSecretKey)
	if !ok {
		t.Fatal("GenerateKeyImage failed")
	}
	if image != wantImage {
		t.Fatal("watch-only key image mismatch")
	}
}

func TestGenerateKeyImageHelperMultisigSucceedsOnMatch(t *testing.T) {
	dev := DefaultDevice

	viewSecret := deriveTestSecret("ms-view")
	share1 := deriveTestSecret("ms-share1")
	share2 := deriveTestSecret("ms-share2")
	viewPublic, _ := dev.SecretKeyToPublicKey(viewSecret)
	share1Pub, _ := dev.SecretKeyToPublicKey(share1)
	share2Pub, _ := dev.SecretKeyToPublicKey(share2)
	spendPublic, _ := crypto.AddPublicKeys(share1Pub, share2Pub)

	ack := AccountKeys{
		ViewSecret:     viewSecret,
		SpendSecret:    share1, // local party's share, used for the partial derivation
		ViewPublic:     viewPublic,
		SpendPublic:    spendPublic,
		MultisigShares: []crypto.SecretKey{share2},
	}

	txSecret := deriveTestSecret("ms-tx")
	txPublic, _ := dev.SecretKeyToPublicKey(txSecret)
	derivation, _ := dev.GenerateKeyDerivation(txPublic, ack.ViewSecret)
	outPub, err := DeriveOutputPublicKey(dev, derivation, 0, ack.SpendPublic)
	if err != nil {
		t.Fatalf("DeriveOutputPublicKey: %v", err)
	}

	image, partialSecret, err := GenerateKeyImageHelper(dev, ack, txPublic, nil, 0, outPub, SubaddressIndex{})
	if err != nil {
		t.Fatalf("GenerateKeyImageHelper: %v", err)
	}
	wantImage, ok := dev.GenerateKeyImage(outPub, partialSecret)
	if !ok {
		t.Fatal("GenerateKeyImage failed")
	}
	if image != wantImage {
		t.Fatal("multisig partial key image mismatch")
	}
}
