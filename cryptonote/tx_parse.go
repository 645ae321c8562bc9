package cryptonote

import "pasta.dev/core/crypto"

// relativeToAbsolute converts a sorted sequence of relative ring member
// offsets, as carried on the wire, into absolute output indices: each
// relative value is the gap since the previous absolute value (the first is
// absolute already). Mirrors cryptonote_format_utils.cpp's
// relative_output_offsets_to_absolute.
func relativeToAbsolute(rel []uint64) []uint64 {
	abs := make([]uint64, len(rel))
	var running uint64
	for i, r := range rel {
		if i == 0 {
			running = r
		} else {
			running += r
		}
		abs[i] = running
	}
	return abs
}

// absoluteToRelative is the wire-encoding inverse of relativeToAbsolute.
func absoluteToRelative(abs []uint64) []uint64 {
	rel := make([]uint64, len(abs))
	var prev uint64
	for i, a := range abs {
		if i == 0 {
			rel[i] = a
		} else {
			rel[i] = a - prev
		}
		prev = a
	}
	return rel
}

// parseTransactionPrefix parses only the prefix fields (version through
// extra), leaving the RingCT payload (if any) unread in c. ParseTransaction
// and the block parser's miner-transaction reader build on it.
func parseTransactionPrefix(c *cursor) (*Transaction, error) {
	tx := &Transaction{}

	version, err := c.readVarint()
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "reading version", err)
	}
	tx.Version = uint16(version)

	unlock, err := c.readVarint()
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "reading unlock_time", err)
	}
	tx.UnlockTime = unlock

	vinCount, err := c.readVarint()
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "reading vin count", err)
	}
	tx.Vin = make([]TxIn, 0, vinCount)
	for i := uint64(0); i < vinCount; i++ {
		in, err := parseTxIn(c)
		if err != nil {
			return nil, err
		}
		tx.Vin = append(tx.Vin, in)
	}

	voutCount, err := c.readVarint()
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "reading vout count", err)
	}
	tx.Vout = make([]TxOut, 0, voutCount)
	for i := uint64(0); i < voutCount; i++ {
		out, err := parseTxOut(c)
		if err != nil {
			return nil, err
		}
		tx.Vout = append(tx.Vout, out)
	}

	extraLen, err := c.readVarint()
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "reading extra length", err)
	}
	extra, err := c.readExact(int(extraLen))
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "reading extra", err)
	}
	tx.Extra = append([]byte(nil), extra...)

	return tx, nil
}

func parseTxIn(c *cursor) (TxIn, error) {
	tag, err := c.readU8()
	if err != nil {
		return TxIn{}, err
	}
	switch tag {
	case txinTagGen:
		h, err := c.readVarint()
		if err != nil {
			return TxIn{}, chainErrWrap(ErrParseBlob, "reading txin_gen height", err)
		}
		return TxIn{Kind: TxInGen, Height: h}, nil

	case txinTagToKey:
		amount, err := c.readVarint()
		if err != nil {
			return TxIn{}, chainErrWrap(ErrParseBlob, "reading txin_to_key amount", err)
		}
		n, err := c.readVarint()
		if err != nil {
			return TxIn{}, chainErrWrap(ErrParseBlob, "reading key_offsets count", err)
		}
		rel := make([]uint64, n)
		for i := range rel {
			rel[i], err = c.readVarint()
			if err != nil {
				return TxIn{}, chainErrWrap(ErrParseBlob, "reading key_offsets entry", err)
			}
		}
		raw, err := c.readExact(32)
		if err != nil {
			return TxIn{}, chainErrWrap(ErrParseBlob, "reading key image", err)
		}
		var ki crypto.KeyImage
		copy(ki[:], raw)
		return TxIn{
			Kind:       TxInToKey,
			Amount:     amount,
			KeyOffsets: relativeToAbsolute(rel),
			KeyImage:   ki,
		}, nil

	default:
		return TxIn{}, chainErr(ErrUnsupportedVariant, "unsupported txin variant")
	}
}

func parseTxOut(c *cursor) (TxOut, error) {
	amount, err := c.readVarint()
	if err != nil {
		return TxOut{}, chainErrWrap(ErrParseBlob, "reading output amount", err)
	}
	tag, err := c.readU8()
	if err != nil {
		return TxOut{}, err
	}
	out := TxOut{Amount: amount}
	switch tag {
	case txoutTagToKey:
		raw, err := c.readExact(32)
		if err != nil {
			return TxOut{}, chainErrWrap(ErrParseBlob, "reading txout_to_key", err)
		}
		out.TargetKind = TxOutToKey
		copy(out.Key[:], raw)

	case txoutTagToScriptHash:
		raw, err := c.readExact(32)
		if err != nil {
			return TxOut{}, chainErrWrap(ErrParseBlob, "reading txout_to_scripthash", err)
		}
		out.TargetKind = TxOutToScriptHash
		copy(out.ScriptHash[:], raw)

	case txoutTagToScript:
		keyCount, err := c.readVarint()
		if err != nil {
			return TxOut{}, chainErrWrap(ErrParseBlob, "reading txout_to_script key count", err)
		}
		keys := make([]crypto.PublicKey, keyCount)
		for i := range keys {
			raw, err := c.readExact(32)
			if err != nil {
				return TxOut{}, chainErrWrap(ErrParseBlob, "reading txout_to_script key", err)
			}
			copy(keys[i][:], raw)
		}
		scriptLen, err := c.readVarint()
		if err != nil {
			return TxOut{}, chainErrWrap(ErrParseBlob, "reading txout_to_script length", err)
		}
		script, err := c.readExact(int(scriptLen))
		if err != nil {
			return TxOut{}, chainErrWrap(ErrParseBlob, "reading txout_to_script body", err)
		}
		out.TargetKind = TxOutToScript
		out.ScriptKeys = keys
		out.Script = append([]byte(nil), script...)

	default:
		return TxOut{}, chainErr(ErrUnsupportedVariant, "unknown txout target tag")
	}
	return out, nil
}

// ParseTransaction parses a full transaction blob: the prefix, and for
// version>=2 the attached RingCT signature. The parsed transaction's hash
// and blob-size caches start invalid.
func ParseTransaction(blob []byte) (*Transaction, error) {
	c := newCursor(blob)
	tx, err := parseTransactionPrefix(c)
	if err != nil {
		return nil, err
	}
	if tx.Version >= 2 {
		rct, err := parseRctSig(c, tx)
		if err != nil {
			return nil, err
		}
		tx.Rct = rct
	}
	tx.invalidate()
	return tx, nil
}

func parseRctSig(c *cursor, tx *Transaction) (*RctSig, error) {
	rctType, err := c.readU8()
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "reading rct type", err)
	}
	rct := &RctSig{Base: RctSigBase{Type: RctType(rctType)}}
	if rct.Base.Type == RctTypeNull {
		return rct, nil
	}

	fee, err := c.readVarint()
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "reading rct fee", err)
	}
	rct.Base.TxnFee = fee

	if rct.Base.Type == RctTypeBulletproof {
		pseudo := make([]crypto.PublicKey, len(tx.Vin))
		for i := range pseudo {
			raw, err := c.readExact(32)
			if err != nil {
				return nil, chainErrWrap(ErrParseBlob, "reading pseudo out", err)
			}
			copy(pseudo[i][:], raw)
		}
		rct.Base.PseudoOuts = pseudo
	}

	rct.Base.OutPk = make([]CtKey, len(tx.Vout))
	for i := range rct.Base.OutPk {
		raw, err := c.readExact(32)
		if err != nil {
			return nil, chainErrWrap(ErrParseBlob, "reading outPk mask", err)
		}
		copy(rct.Base.OutPk[i].Mask[:], raw)
	}

	// The prunable signature payload (bulletproofs + MGs) has variable,
	// scheme-dependent length; a real node conditionally strips it for
	// pruned blocks. This core does not decode it: any bytes that remain in
	// the blob are kept verbatim as PrunableRaw; if none remain, the
	// transaction is treated as pruned and only the base hashes meaningfully.
	if c.atEnd() {
		rct.PrunablePresent = false
		return rct, nil
	}
	rct.PrunablePresent = true
	rct.Prunable.PseudoOuts = rct.Base.PseudoOuts
	rct.PrunableRaw = append([]byte(nil), c.b[c.pos:]...)
	c.pos = len(c.b)
	return rct, nil
}

// MarshalTransactionPrefix serializes tx's prefix fields only.
func MarshalTransactionPrefix(tx *Transaction) []byte {
	var buf []byte
	buf = appendVarint(buf, uint64(tx.Version))
	buf = appendVarint(buf, tx.UnlockTime)
	buf = appendVarint(buf, uint64(len(tx.Vin)))
	for _, in := range tx.Vin {
		buf = appendTxIn(buf, in)
	}
	buf = appendVarint(buf, uint64(len(tx.Vout)))
	for _, out := range tx.Vout {
		buf = appendTxOut(buf, out)
	}
	buf = appendVarint(buf, uint64(len(tx.Extra)))
	buf = append(buf, tx.Extra...)
	return buf
}

func appendTxIn(dst []byte, in TxIn) []byte {
	switch in.Kind {
	case TxInGen:
		dst = append(dst, txinTagGen)
		dst = appendVarint(dst, in.Height)
	case TxInToKey:
		dst = append(dst, txinTagToKey)
		dst = appendVarint(dst, in.Amount)
		rel := absoluteToRelative(in.KeyOffsets)
		dst = appendVarint(dst, uint64(len(rel)))
		for _, r := range rel {
			dst = appendVarint(dst, r)
		}
		dst = append(dst, in.KeyImage[:]...)
	}
	return dst
}

func appendTxOut(dst []byte, out TxOut) []byte {
	dst = appendVarint(dst, out.Amount)
	switch out.TargetKind {
	case TxOutToKey:
		dst = append(dst, txoutTagToKey)
		dst = append(dst, out.Key[:]...)
	case TxOutToScriptHash:
		dst = append(dst, txoutTagToScriptHash)
		dst = append(dst, out.ScriptHash[:]...)
	case TxOutToScript:
		dst = append(dst, txoutTagToScript)
		dst = appendVarint(dst, uint64(len(out.ScriptKeys)))
		for _, k := range out.ScriptKeys {
			dst = append(dst, k[:]...)
		}
		dst = appendVarint(dst, uint64(len(out.Script)))
		dst = append(dst, out.Script...)
	}
	return dst
}

// MarshalRctSigBase serializes only the always-present base half of tx's
// RingCT signature (empty for version==1 or a Null-type rct).
func MarshalRctSigBase(tx *Transaction) []byte {
	if tx.Rct == nil {
		return nil
	}
	rct := tx.Rct
	var buf []byte
	buf = append(buf, byte(rct.Base.Type))
	if rct.Base.Type == RctTypeNull {
		return buf
	}
	buf = appendVarint(buf, rct.Base.TxnFee)
	if rct.Base.Type == RctTypeBulletproof {
		for _, p := range rct.Base.PseudoOuts {
			buf = append(buf, p[:]...)
		}
	}
	for _, ok := range rct.Base.OutPk {
		buf = append(buf, ok.Mask[:]...)
	}
	return buf
}
