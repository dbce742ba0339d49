package common

import "fmt"

func RedisKeyFaucetClaim(address string) string {
	return fmt.Sprintf("faucet_claim:%s", address)
}
