package ethutil

import (
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Wallet holds a generated key pair. PrivateKey is hex-encoded; real custody
// is out of scope, the reference is stored as-is on the user record.
type Wallet struct {
	Address    string
	PrivateKey string
}

func NewWallet() (Wallet, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return Wallet{}, err
	}

	return Wallet{
		Address:    ethcrypto.PubkeyToAddress(key.PublicKey).Hex(),
		PrivateKey: hexutil.Encode(ethcrypto.FromECDSA(key)),
	}, nil
}

func FromPrivateKey(hexKey string) (Wallet, error) {
	key, err := ethcrypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return Wallet{}, err
	}

	return Wallet{
		Address:    ethcrypto.PubkeyToAddress(key.PublicKey).Hex(),
		PrivateKey: hexutil.Encode(ethcrypto.FromECDSA(key)),
	}, nil
}

func IsValidAddress(address string) bool {
	return ethcommon.IsHexAddress(address)
}
