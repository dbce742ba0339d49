package ethutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_NewWallet(t *testing.T) {
	wallet, err := NewWallet()
	require.NoError(t, err)
	require.True(t, IsValidAddress(wallet.Address))

	imported, err := FromPrivateKey(wallet.PrivateKey)
	require.NoError(t, err)
	require.Equal(t, wallet.Address, imported.Address)
}

func Test_IsValidAddress(t *testing.T) {
	require.True(t, IsValidAddress("0x71C7656EC7ab88b098defB751B7401B5f6d8976F"))
	require.False(t, IsValidAddress("not-an-address"))
	require.False(t, IsValidAddress(""))
}
