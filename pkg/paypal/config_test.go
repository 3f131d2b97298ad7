package paypal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewClient_EmptyClientID(t *testing.T) {
	_, err := NewClient(zap.NewNop(), Config{
		ClientID:     "   ",
		ClientSecret: "secret",
		Mode:         ModeSandbox,
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConfiguration))
	assert.Contains(t, err.Error(), "client id")
}

func TestNewClient_EmptyClientSecret(t *testing.T) {
	_, err := NewClient(zap.NewNop(), Config{
		ClientID: "id",
		Mode:     ModeSandbox,
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConfiguration))
}

func TestNewClient_InvalidMode(t *testing.T) {
	_, err := NewClient(zap.NewNop(), Config{
		ClientID:     "id",
		ClientSecret: "secret",
		Mode:         Mode("staging"),
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConfiguration))
	assert.Contains(t, err.Error(), "mode")
}

func TestConfig_BaseURLDerivation(t *testing.T) {
	sandbox := &Config{Mode: ModeSandbox}
	assert.Equal(t, "https://api.sandbox.paypal.com", sandbox.baseURL())

	live := &Config{Mode: ModeLive}
	assert.Equal(t, "https://api.paypal.com", live.baseURL())

	override := &Config{Mode: ModeSandbox, BaseURL: "http://127.0.0.1:9999/"}
	assert.Equal(t, "http://127.0.0.1:9999", override.baseURL())
}

func TestNewClient_WiresResourceServices(t *testing.T) {
	client, err := NewClient(nil, Config{
		ClientID:     "id",
		ClientSecret: "secret",
		Mode:         ModeLive,
	})
	require.NoError(t, err)
	assert.NotNil(t, client.Orders)
	assert.NotNil(t, client.Payments)
	assert.NotNil(t, client.Payouts)
	assert.NotNil(t, client.Webhooks)
}
