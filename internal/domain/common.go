package domain

import (
	"encoding/hex"

	"github.com/koquifi/backend/pkg/crypto"
)

// randomTxHash fabricates a demo transaction hash. Nothing verifies it
// on-chain, it only has to look like one.
func randomTxHash(rnd crypto.Rand) string {
	b := make([]byte, 16)
	for i := range b {
		b[i] = byte(rnd.Intn(256))
	}

	return "0x" + hex.EncodeToString(b)
}
