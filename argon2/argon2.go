package argon2

// Key derives a key of c.KeyLen bytes from password. The password is
// used as given — callers that hash human-entered text should run it
// through the password package's Prepare first so equivalent Unicode
// spellings derive the same key.
//
// Key validates the configuration before allocating anything, then
// allocates the full memory matrix for exclusive use by this call. The
// matrix is released when Key returns; an allocation failure is fatal
// (the Go runtime aborts) and is never retried.
func (c *Config) Key(password []byte) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	lanes := uint32(c.Threads)
	blocks := c.blockCount()
	m := &matrix{
		blocks:  make([]Block, blocks),
		lanes:   lanes,
		laneLen: blocks / lanes,
		segLen:  blocks / lanes / syncPoints,
		passes:  c.Time,
		variant: c.Variant,
	}

	h0 := InitialHash(c, password)
	for lane, pair := range InitialBlocks(&h0, lanes) {
		m.blocks[uint32(lane)*m.laneLen] = pair[0]
		m.blocks[uint32(lane)*m.laneLen+1] = pair[1]
	}

	m.fill()
	return m.extract(c.KeyLen), nil
}
