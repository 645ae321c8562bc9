package cryptonote

import "pasta.dev/core/crypto"

// tx-extra tag bytes.
const (
	extraTagPubkey           = 0x01
	extraTagNonce             = 0x02
	extraTagAdditionalPubkeys = 0x04
	extraTagUniformPaymentID  = 0xf0 // implementation-assigned tag, not used on the legacy chain

	nonceSubTagPaymentID          = 0x00
	nonceSubTagEncryptedPaymentID = 0x01

	// EncryptedPaymentIDTail is the obfuscation tail byte used by callers
	// that encrypt an 8-byte payment id. Encryption itself is outside this
	// core.
	EncryptedPaymentIDTail = 0x8d

	maxNonceLen = 255
)

// ExtraFieldKind identifies the tagged-union variant of an ExtraField.
type ExtraFieldKind int

const (
	ExtraFieldPubkey ExtraFieldKind = iota
	ExtraFieldNonce
	ExtraFieldAdditionalPubkeys
	ExtraFieldUniformPaymentID
)

// ExtraField is one element of the tx-extra stream. Exactly one of the
// payload fields is meaningful, selected by Kind.
type ExtraField struct {
	Kind ExtraFieldKind

	Pubkey             crypto.PublicKey
	Nonce              []byte
	AdditionalPubkeys  []crypto.PublicKey
	UniformPaymentID   UniformPaymentID
}

// UniformPaymentID is the fixed-size extra record. Zero must be non-zero on
// write: AddUniformPaymentID refuses to serialize a record whose Zero field
// reads as the sentinel 0, which would indicate cleartext payment-id leakage.
type UniformPaymentID struct {
	Zero byte
	Data [32]byte
}

// ParseExtra parses the tx-extra byte stream leniently: a malformed record
// aborts parsing but the already-parsed prefix is still returned, matching
// the legacy chain's lenient-parse compatibility policy. ParseExtraStrict is
// offered for callers that want to reject the whole blob instead.
func ParseExtra(b []byte) []ExtraField {
	fields, _ := parseExtra(b, false)
	return fields
}

// ParseExtraStrict parses tx-extra and returns ErrExtraFieldTruncated if any
// record is malformed, instead of silently truncating.
func ParseExtraStrict(b []byte) ([]ExtraField, error) {
	return parseExtra(b, true)
}

func parseExtra(b []byte, strict bool) ([]ExtraField, error) {
	var fields []ExtraField
	c := newCursor(b)
	for !c.atEnd() {
		field, err := parseOneExtraField(c)
		if err != nil {
			if strict {
				return fields, chainErrWrap(ErrExtraFieldTruncated, "malformed extra field", err)
			}
			return fields, nil
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func parseOneExtraField(c *cursor) (ExtraField, error) {
	tag, err := c.readU8()
	if err != nil {
		return ExtraField{}, err
	}
	switch tag {
	case extraTagPubkey:
		raw, err := c.readExact(32)
		if err != nil {
			return ExtraField{}, err
		}
		var pk crypto.PublicKey
		copy(pk[:], raw)
		return ExtraField{Kind: ExtraFieldPubkey, Pubkey: pk}, nil

	case extraTagNonce:
		n, err := c.readU8()
		if err != nil {
			return ExtraField{}, err
		}
		raw, err := c.readExact(int(n))
		if err != nil {
			return ExtraField{}, err
		}
		nonce := append([]byte(nil), raw...)
		return ExtraField{Kind: ExtraFieldNonce, Nonce: nonce}, nil

	case extraTagAdditionalPubkeys:
		count, err := c.readVarint()
		if err != nil {
			return ExtraField{}, err
		}
		pks := make([]crypto.PublicKey, 0, count)
		for i := uint64(0); i < count; i++ {
			raw, err := c.readExact(32)
			if err != nil {
				return ExtraField{}, err
			}
			var pk crypto.PublicKey
			copy(pk[:], raw)
			pks = append(pks, pk)
		}
		return ExtraField{Kind: ExtraFieldAdditionalPubkeys, AdditionalPubkeys: pks}, nil

	case extraTagUniformPaymentID:
		zero, err := c.readU8()
		if err != nil {
			return ExtraField{}, err
		}
		raw, err := c.readExact(32)
		if err != nil {
			return ExtraField{}, err
		}
		var pid UniformPaymentID
		pid.Zero = zero
		copy(pid.Data[:], raw)
		return ExtraField{Kind: ExtraFieldUniformPaymentID, UniformPaymentID: pid}, nil

	default:
		return ExtraField{}, chainErr(ErrParseBlob, "unknown tx-extra tag")
	}
}

func serializeExtraField(dst []byte, f ExtraField) []byte {
	switch f.Kind {
	case ExtraFieldPubkey:
		dst = append(dst, extraTagPubkey)
		dst = append(dst, f.Pubkey[:]...)
	case ExtraFieldNonce:
		dst = append(dst, extraTagNonce)
		dst = append(dst, byte(len(f.Nonce)))
		dst = append(dst, f.Nonce...)
	case ExtraFieldAdditionalPubkeys:
		dst = append(dst, extraTagAdditionalPubkeys)
		dst = appendVarint(dst, uint64(len(f.AdditionalPubkeys)))
		for _, pk := range f.AdditionalPubkeys {
			dst = append(dst, pk[:]...)
		}
	case ExtraFieldUniformPaymentID:
		dst = append(dst, extraTagUniformPaymentID)
		dst = append(dst, f.UniformPaymentID.Zero)
		dst = append(dst, f.UniformPaymentID.Data[:]...)
	}
	return dst
}

// FindPubkeyByIndex returns the index-th PUBKEY record, if any.
func FindPubkeyByIndex(fields []ExtraField, index int) (crypto.PublicKey, bool) {
	n := 0
	for _, f := range fields {
		if f.Kind == ExtraFieldPubkey {
			if n == index {
				return f.Pubkey, true
			}
			n++
		}
	}
	return crypto.PublicKey{}, false
}

// FindAdditionalPubkeys returns the first ADDITIONAL_PUBKEYS record's keys.
func FindAdditionalPubkeys(fields []ExtraField) ([]crypto.PublicKey, bool) {
	for _, f := range fields {
		if f.Kind == ExtraFieldAdditionalPubkeys {
			return f.AdditionalPubkeys, true
		}
	}
	return nil, false
}

// FindUniformPaymentID returns the first UNIFORM_PAYMENT_ID record.
func FindUniformPaymentID(fields []ExtraField) (UniformPaymentID, bool) {
	for _, f := range fields {
		if f.Kind == ExtraFieldUniformPaymentID {
			return f.UniformPaymentID, true
		}
	}
	return UniformPaymentID{}, false
}

// AddPubkey appends a PUBKEY record.
func AddPubkey(extra []byte, pk crypto.PublicKey) []byte {
	return serializeExtraField(extra, ExtraField{Kind: ExtraFieldPubkey, Pubkey: pk})
}

// AddAdditionalPubkeys appends an ADDITIONAL_PUBKEYS record.
func AddAdditionalPubkeys(extra []byte, pks []crypto.PublicKey) []byte {
	return serializeExtraField(extra, ExtraField{Kind: ExtraFieldAdditionalPubkeys, AdditionalPubkeys: pks})
}

// AddNonce appends a NONCE record. nonce must be at most 255 bytes.
func AddNonce(extra []byte, nonce []byte) ([]byte, error) {
	if len(nonce) > maxNonceLen {
		return nil, chainErr(ErrParseBlob, "nonce exceeds 255 bytes")
	}
	return serializeExtraField(extra, ExtraField{Kind: ExtraFieldNonce, Nonce: nonce}), nil
}

// AddUniformPaymentID appends a UNIFORM_PAYMENT_ID record. Adding a record
// whose Zero sentinel reads as 0 is refused, to protect callers from
// accidentally leaking a cleartext payment id.
func AddUniformPaymentID(extra []byte, pid UniformPaymentID) ([]byte, error) {
	if pid.Zero == 0 {
		return extra, chainErr(ErrParseBlob, "refusing to add an unencrypted uniform payment id")
	}
	return serializeExtraField(extra, ExtraField{Kind: ExtraFieldUniformPaymentID, UniformPaymentID: pid}), nil
}

// RemoveByKind re-serializes extra with every record of the given kind
// dropped.
func RemoveByKind(extra []byte, kind ExtraFieldKind) []byte {
	fields := ParseExtra(extra)
	out := make([]byte, 0, len(extra))
	for _, f := range fields {
		if f.Kind == kind {
			continue
		}
		out = serializeExtraField(out, f)
	}
	return out
}

// SetPaymentID returns a fresh nonce blob holding the PAYMENT_ID sub-tag +
// hash256.
func SetPaymentID(payID [32]byte) []byte {
	nonce := make([]byte, 0, 33)
	nonce = append(nonce, nonceSubTagPaymentID)
	nonce = append(nonce, payID[:]...)
	return nonce
}

// SetEncryptedPaymentID returns a fresh nonce blob holding the
// ENCRYPTED_PAYMENT_ID sub-tag + hash64.
func SetEncryptedPaymentID(payID [8]byte) []byte {
	nonce := make([]byte, 0, 9)
	nonce = append(nonce, nonceSubTagEncryptedPaymentID)
	nonce = append(nonce, payID[:]...)
	return nonce
}

// GetTxPubKey returns the k-th PUBKEY record, or the null point if absent.
func GetTxPubKey(extra []byte, k int) crypto.PublicKey {
	fields := ParseExtra(extra)
	pk, ok := FindPubkeyByIndex(fields, k)
	if !ok {
		return crypto.NullPublicKey
	}
	return pk
}

// GetAdditionalTxPubKeys returns the parsed ADDITIONAL_PUBKEYS record, or nil.
func GetAdditionalTxPubKeys(extra []byte) []crypto.PublicKey {
	fields := ParseExtra(extra)
	pks, _ := FindAdditionalPubkeys(fields)
	return pks
}
