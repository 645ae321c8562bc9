package cryptonote

import "pasta.dev/core/crypto"

// OwnedOutput is one output of a scanned transaction recognised as
// belonging to the scanning account.
type OwnedOutput struct {
	Index      int
	Amount     uint64
	SubIndex   SubaddressIndex
	Derivation crypto.KeyDerivation
}

// LookupAccOuts scans tx's outputs against ack and returns every output the
// account can recognise. additionalTxPubKeys, when non-empty, must have
// exactly one entry per output (ErrMalformedAdditionalPubkeys otherwise).
// Each output is checked against the shared derivation first; only on a
// miss is its own per-output (additional) derivation tried, matching the
// subaddress wallet convention of carrying one extra R per output for
// outputs the shared R cannot address, while still recognising ordinary
// main-address outputs mixed into the same transaction.
func LookupAccOuts(dev crypto.Device, ack AccountKeys, tx *Transaction, book SubaddressBook) ([]OwnedOutput, error) {
	fields := ParseExtra(tx.Extra)
	txPubKey, ok := FindPubkeyByIndex(fields, 0)
	if !ok {
		return nil, nil
	}
	additional, _ := FindAdditionalPubkeys(fields)
	if len(additional) != 0 && len(additional) != len(tx.Vout) {
		return nil, chainErr(ErrMalformedAdditionalPubkeys, "additional pubkey count does not match output count")
	}

	sharedDerivation, ok := dev.GenerateKeyDerivation(txPubKey, ack.ViewSecret)
	if !ok {
		return nil, chainErr(ErrPointDecode, "generating shared key derivation")
	}

	var owned []OwnedOutput
	for i, out := range tx.Vout {
		if out.TargetKind != TxOutToKey {
			continue
		}

		derivation := sharedDerivation
		subIndex, recognised := recognizeOutput(dev, ack, derivation, uint64(i), out.Key, book)
		if !recognised && len(additional) != 0 {
			d, ok := dev.GenerateKeyDerivation(additional[i], ack.ViewSecret)
			if !ok {
				return nil, chainErr(ErrPointDecode, "generating per-output key derivation")
			}
			derivation = d
			subIndex, recognised = recognizeOutput(dev, ack, derivation, uint64(i), out.Key, book)
		}
		if !recognised {
			continue
		}
		owned = append(owned, OwnedOutput{
			Index:      i,
			Amount:     out.Amount,
			SubIndex:   subIndex,
			Derivation: derivation,
		})
	}
	return owned, nil
}

// recognizeOutput checks outKey against the main address and every entry of
// book, returning the matching subaddress index.
func recognizeOutput(dev crypto.Device, ack AccountKeys, derivation crypto.KeyDerivation, outIndex uint64, outKey crypto.PublicKey, book SubaddressBook) (SubaddressIndex, bool) {
	candidate, ok := dev.DerivePublicKey(derivation, outIndex, ack.SpendPublic)
	if ok && candidate == outKey {
		return SubaddressIndex{}, true
	}
	for spendPub, idx := range book {
		candidate, ok := dev.DeriveSubaddressPublicKey(spendPub, derivation, outIndex)
		if ok && candidate == outKey {
			return idx, true
		}
	}
	return SubaddressIndex{}, false
}

// LookupAccOutsPrecomputed is the batch-scan variant: the caller supplies a
// derivation already computed once per candidate tx pubkey (e.g. during a
// wallet rescan that reuses the same R across many view-key checks), saving
// the EC scalar multiplication GenerateKeyDerivation would otherwise repeat.
// Every output is checked against this one derivation only; per-output
// additional derivations are neither taken nor tried.
func LookupAccOutsPrecomputed(dev crypto.Device, ack AccountKeys, tx *Transaction, derivation crypto.KeyDerivation, book SubaddressBook) []OwnedOutput {
	var owned []OwnedOutput
	for i, out := range tx.Vout {
		if out.TargetKind != TxOutToKey {
			continue
		}
		subIndex, recognised := recognizeOutput(dev, ack, derivation, uint64(i), out.Key, book)
		if !recognised {
			continue
		}
		owned = append(owned, OwnedOutput{Index: i, Amount: out.Amount, SubIndex: subIndex, Derivation: derivation})
	}
	return owned
}
