package types

import (
	"encoding/base64"
	"encoding/binary"

	sf "github.com/tinode/snowflake"
	"golang.org/x/crypto/xtea"
)

// UidGenerator holds snowflake and encryption parameters.
// Snowflake-generated uint64s are encrypted with XTEA so consecutive IDs
// do not reveal the generation sequence, then base64-encoded.
type UidGenerator struct {
	seq    *sf.SnowFlake
	cipher *xtea.Cipher
}

// Init initialises the Uid generator.
func (ug *UidGenerator) Init(workerID uint, key []byte) error {
	var err error

	if ug.seq == nil {
		ug.seq, err = sf.NewSnowFlake(uint32(workerID))
	}
	if err == nil && ug.cipher == nil {
		ug.cipher, err = xtea.NewCipher(key)
	}

	return err
}

// GetStr generates a unique random-looking ID and returns it as a base64
// encoded string.
func (ug *UidGenerator) GetStr() string {
	id, err := ug.seq.Next()
	if err != nil {
		return ""
	}

	var src = make([]byte, 8)
	var dst = make([]byte, 8)
	binary.LittleEndian.PutUint64(src, id)
	ug.cipher.Encrypt(dst, src)

	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(dst)
}
