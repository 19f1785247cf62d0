package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseURL(t *testing.T) {
	url, err := BaseURL(EnvironmentSandbox)
	require.NoError(t, err)
	assert.Equal(t, SandboxURL, url)

	// every production market shares one base URL
	for _, env := range GetAvailableEnvironments() {
		if env.IsSandbox() {
			continue
		}
		url, err := BaseURL(env)
		require.NoError(t, err, env)
		assert.Equal(t, ProductionURL, url, env)
	}

	_, err = BaseURL(Environment("production"))
	require.Error(t, err)
}

func TestParseEnvironment(t *testing.T) {
	env, err := ParseEnvironment("")
	require.NoError(t, err)
	assert.Equal(t, EnvironmentSandbox, env)

	env, err = ParseEnvironment(" MTNUganda ")
	require.NoError(t, err)
	assert.Equal(t, EnvironmentMTNUganda, env)

	_, err = ParseEnvironment("mtnmars")
	require.Error(t, err)
}

func TestAvailableEnvironments(t *testing.T) {
	envs := GetAvailableEnvironments()
	assert.Len(t, envs, 12)
	assert.Contains(t, envs, EnvironmentMTNLiberia)
	assert.True(t, IsEnvironmentSupported(EnvironmentMTNCongo))
	assert.False(t, IsEnvironmentSupported(Environment("production")))
}
