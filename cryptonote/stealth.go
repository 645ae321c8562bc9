package cryptonote

import "pasta.dev/core/crypto"

// DefaultDevice is the Ed25519 device used when a caller does not supply
// its own (e.g. a hardware-wallet-backed) implementation.
var DefaultDevice crypto.Device = crypto.Ed25519Device{}

// DeriveOutputPublicKey computes the one-time output public key a sender
// writes into a TxOut for recipient (spendPublic, viewSecret-derivation R).
// derivation is R*a, already computed by the caller via dev.GenerateKeyDerivation.
func DeriveOutputPublicKey(dev crypto.Device, derivation crypto.KeyDerivation, outIndex uint64, spendPublic crypto.PublicKey) (crypto.PublicKey, error) {
	pk, ok := dev.DerivePublicKey(derivation, outIndex, spendPublic)
	if !ok {
		return crypto.PublicKey{}, chainErr(ErrPointDecode, "deriving output public key")
	}
	return pk, nil
}

// GenerateKeyImageHelper implements the five-step key-image derivation of
// cryptonote_format_utils.cpp's generate_key_image_helper_precomp:
//
//  1. derivation = a*R  (the recipient's view secret times the tx pubkey)
//  2. ephemeral secret x = Hs(derivation || idx) + spend_secret_or_subaddress_secret
//  3. ephemeral public P' = x*G
//  4. check P' == outPub (the claimed one-time address); mismatch is
//     ErrKeyImageMismatch
//  5. key image I = x*Hp(P')
//
// Watch-only accounts (no spend secret) skip steps 1-4: the caller's
// claimed outPub is taken on faith as the ephemeral public key, the
// ephemeral secret is the null scalar, and only the final Hp lift runs
// against the device's watch-only path.
func GenerateKeyImageHelper(dev crypto.Device, ack AccountKeys, txPubKey crypto.PublicKey, additional []crypto.PublicKey, outIndex uint64, outPub crypto.PublicKey, subIndex SubaddressIndex) (crypto.KeyImage, crypto.SecretKey, error) {
	// Subaddress outputs may carry their one-time R in the additional-pubkeys
	// list instead of the shared tx pubkey; callers that already resolved
	// which slot applies pass it pre-selected via txPubKey.
	_ = additional

	if ack.WatchOnly() {
		image, ok := dev.GenerateKeyImage(outPub, crypto.NullSecretKey)
		if !ok {
			return crypto.KeyImage{}, crypto.SecretKey{}, chainErr(ErrPointDecode, "generating watch-only key image")
		}
		return image, crypto.NullSecretKey, nil
	}

	derivation, ok := dev.GenerateKeyDerivation(txPubKey, ack.ViewSecret)
	if !ok {
		return crypto.KeyImage{}, crypto.SecretKey{}, chainErr(ErrPointDecode, "generating key derivation")
	}

	base := ack.SpendSecret
	if !subIndex.IsZero() {
		sub := dev.GetSubaddressSecretKey(ack.ViewSecret, subIndex)
		base = dev.ScSecretAdd(ack.SpendSecret, sub)
	}

	var ephemeralSecret crypto.SecretKey
	if ack.Multisig() {
		// Multisig: no party holds the whole spend secret, so the ephemeral
		// public key is rebuilt by point addition, Hs(derivation||idx)*G +
		// spend_public plus the subaddress spend point for a non-main index,
		// rather than from a summed secret. The local share's secret still
		// yields a valid partial key image; full threshold aggregation of
		// partial key images happens outside this core.
		sum, ok := dev.DerivePublicKey(derivation, outIndex, ack.SpendPublic)
		if !ok {
			return crypto.KeyImage{}, crypto.SecretKey{}, chainErr(ErrPointDecode, "deriving multisig ephemeral public key")
		}
		if !subIndex.IsZero() {
			subPub, ok := dev.SecretKeyToPublicKey(dev.GetSubaddressSecretKey(ack.ViewSecret, subIndex))
			if !ok {
				return crypto.KeyImage{}, crypto.SecretKey{}, chainErr(ErrPointDecode, "expanding subaddress secret")
			}
			sum, ok = crypto.AddPublicKeys(sum, subPub)
			if !ok {
				return crypto.KeyImage{}, crypto.SecretKey{}, chainErr(ErrPointDecode, "adding subaddress spend point")
			}
		}
		if sum != outPub {
			return crypto.KeyImage{}, crypto.SecretKey{}, chainErr(ErrKeyImageMismatch, "multisig ephemeral public key does not match claimed output")
		}
		localSecret, ok := dev.DeriveSecretKey(derivation, outIndex, base)
		if !ok {
			return crypto.KeyImage{}, crypto.SecretKey{}, chainErr(ErrPointDecode, "deriving multisig partial secret")
		}
		image, ok := dev.GenerateKeyImage(outPub, localSecret)
		if !ok {
			return crypto.KeyImage{}, crypto.SecretKey{}, chainErr(ErrPointDecode, "generating multisig partial key image")
		}
		return image, localSecret, nil
	}

	ephemeralSecret, ok = dev.DeriveSecretKey(derivation, outIndex, base)
	if !ok {
		return crypto.KeyImage{}, crypto.SecretKey{}, chainErr(ErrPointDecode, "deriving ephemeral secret key")
	}

	ephemeralPublic, ok := dev.SecretKeyToPublicKey(ephemeralSecret)
	if !ok {
		return crypto.KeyImage{}, crypto.SecretKey{}, chainErr(ErrPointDecode, "deriving ephemeral public key")
	}
	if ephemeralPublic != outPub {
		return crypto.KeyImage{}, crypto.SecretKey{}, chainErr(ErrKeyImageMismatch, "ephemeral public key does not match claimed output")
	}

	image, ok := dev.GenerateKeyImage(ephemeralPublic, ephemeralSecret)
	if !ok {
		return crypto.KeyImage{}, crypto.SecretKey{}, chainErr(ErrPointDecode, "generating key image")
	}
	return image, ephemeralSecret, nil
}
