package cryptonote

// ParseBlock decodes a block blob: header, miner transaction, and the
// ordinary-transaction hash list. Both the block's own hash cache and the
// embedded miner transaction's hash cache start invalid. No proof-of-work or
// chain-linkage check is performed here.
func ParseBlock(blob []byte) (*Block, error) {
	c := newCursor(blob)
	b := &Block{}

	major, err := c.readVarint()
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "reading major_version", err)
	}
	b.Header.MajorVersion = uint8(major)

	minor, err := c.readVarint()
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "reading minor_version", err)
	}
	b.Header.MinorVersion = uint8(minor)

	ts, err := c.readVarint()
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "reading timestamp", err)
	}
	b.Header.Timestamp = ts

	prev, err := c.readExact(32)
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "reading prev_id", err)
	}
	copy(b.Header.PrevID[:], prev)

	nonce, err := c.readU32LE()
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "reading nonce", err)
	}
	b.Header.Nonce = nonce

	minerTxBlob, err := readRemainingTransactionBlob(c)
	if err != nil {
		return nil, err
	}
	minerTx, err := ParseTransaction(minerTxBlob)
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "parsing miner_tx", err)
	}
	b.MinerTx = *minerTx

	count, err := c.readVarint()
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "reading tx_hashes count", err)
	}
	b.TxHashes = make([]Hash256, 0, count)
	for i := uint64(0); i < count; i++ {
		raw, err := c.readExact(32)
		if err != nil {
			return nil, chainErrWrap(ErrParseBlob, "reading tx_hashes entry", err)
		}
		var h Hash256
		copy(h[:], raw)
		b.TxHashes = append(b.TxHashes, h)
	}

	b.invalidate()
	return b, nil
}

// readRemainingTransactionBlob consumes exactly one self-delimiting
// transaction blob from c by fully parsing it in place and re-slicing to the
// bytes it consumed; the miner transaction is embedded inline in a block
// blob rather than length-prefixed, matching the original wire format.
func readRemainingTransactionBlob(c *cursor) ([]byte, error) {
	start := c.pos
	tx, err := parseTransactionPrefix(c)
	if err != nil {
		return nil, chainErrWrap(ErrParseBlob, "parsing miner_tx prefix", err)
	}
	if tx.Version >= 2 {
		if _, err := parseRctSig(c, tx); err != nil {
			return nil, chainErrWrap(ErrParseBlob, "parsing miner_tx rct", err)
		}
	}
	return c.b[start:c.pos], nil
}

// MarshalBlockHeader serializes b's header fields only.
func MarshalBlockHeader(b *Block) []byte {
	var buf []byte
	buf = appendVarint(buf, uint64(b.Header.MajorVersion))
	buf = appendVarint(buf, uint64(b.Header.MinorVersion))
	buf = appendVarint(buf, b.Header.Timestamp)
	buf = append(buf, b.Header.PrevID[:]...)
	buf = appendU32LE(buf, b.Header.Nonce)
	return buf
}

// MarshalBlock serializes the full block blob.
func MarshalBlock(b *Block) []byte {
	buf := MarshalBlockHeader(b)
	buf = append(buf, MarshalTransactionPrefix(&b.MinerTx)...)
	if b.MinerTx.Rct != nil {
		buf = append(buf, MarshalRctSigBase(&b.MinerTx)...)
		buf = append(buf, b.MinerTx.Rct.PrunableRaw...)
	}
	buf = appendVarint(buf, uint64(len(b.TxHashes)))
	for _, h := range b.TxHashes {
		buf = append(buf, h[:]...)
	}
	return buf
}
