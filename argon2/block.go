package argon2

import "encoding/binary"

const (
	// BlockSize is the size of one Argon2 memory block in bytes.
	BlockSize = 1024

	// blockWords is the number of 64-bit words in a block.
	blockWords = BlockSize / 8

	// syncPoints is the number of segments per lane; segment boundaries
	// are the synchronization points between lanes within a pass.
	syncPoints = 4
)

// Block is one 1024-byte unit of Argon2 working memory, viewed as 128
// little-endian 64-bit words.
type Block [blockWords]uint64

// xor folds other into b word by word.
func (b *Block) xor(other *Block) {
	for i := range b {
		b[i] ^= other[i]
	}
}

// setBytes loads the block from exactly BlockSize bytes.
func (b *Block) setBytes(p []byte) {
	_ = p[BlockSize-1]
	for i := range b {
		b[i] = binary.LittleEndian.Uint64(p[i*8:])
	}
}

// appendBytes appends the block's little-endian serialization to p.
func (b *Block) appendBytes(p []byte) []byte {
	for _, v := range b {
		p = binary.LittleEndian.AppendUint64(p, v)
	}
	return p
}
