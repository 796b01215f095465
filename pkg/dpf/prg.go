package dpf

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/chacha20"
)

// prgContext domain-separates this PRG's key derivation from any other use
// of BLAKE3 elsewhere in the process.
const prgContext = "github.com/luxfi/privrec DPF level PRG v1"

// expand is the deterministic keyed PRG expansion of spec §4.2 step 1: a
// pure function of the 64-bit seed and level alone, identical on both
// parties. It must produce two pseudorandom 64-bit seeds and two
// independent flag bits; here a BLAKE3 keyed hash derives a ChaCha20 key
// from (seed, level), and the first 18 bytes of that cipher's keystream
// supply sL, sR, tL, tR (spec §9: "any seekable PRF, e.g. AES-CTR keyed by
// the seed, is an acceptable substitute").
func expand(seed uint64, level uint8) (sL, sR uint64, tL, tR bool) {
	var material [9]byte
	binary.LittleEndian.PutUint64(material[:8], seed)
	material[8] = level

	key := make([]byte, chacha20.KeySize)
	blake3.DeriveKey(prgContext, material[:], key)

	nonce := make([]byte, chacha20.NonceSize)
	cipher, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		// key and nonce are fixed-size constants derived above; this
		// cannot fail.
		panic(err)
	}

	var stream [18]byte
	cipher.XORKeyStream(stream[:], stream[:])

	sL = binary.LittleEndian.Uint64(stream[0:8])
	sR = binary.LittleEndian.Uint64(stream[8:16])
	tL = stream[16]&1 == 1
	tR = stream[17]&1 == 1
	return
}
