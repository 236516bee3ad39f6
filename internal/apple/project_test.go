package apple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/mobl/internal/config"
	"github.com/agiangrant/mobl/internal/metadata"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.FromRaw(t.TempDir(), config.Raw{
		App: config.RawApp{
			Name:         "test-app",
			StylizedName: "Test App",
			Domain:       "example.com",
			Version:      "1.2.3",
		},
		Apple: &config.RawApple{
			DevelopmentTeam: "ABCDE12345",
		},
	})
	require.NoError(t, err)
	return cfg
}

func TestBuildSpec(t *testing.T) {
	cfg := testConfig(t)
	apple, err := cfg.Apple()
	require.NoError(t, err)

	meta := &metadata.Apple{
		IOS: metadata.ApplePlatform{
			Frameworks:       []string{"UserNotifications"},
			VendorFrameworks: []string{"vendor/Analytics.framework"},
			AssetCatalogs:    []string{"Media.xcassets"},
		},
	}
	spec := buildSpec(cfg, apple, meta)

	assert.Equal(t, "test-app", spec.Name)
	assert.Equal(t, "com.example", spec.Options.BundleIDPrefix)

	target, ok := spec.Targets["test-app_iOS"]
	require.True(t, ok)
	assert.Equal(t, "application", target.Type)
	assert.Equal(t, "9.0", target.DeploymentTarget)
	assert.Equal(t, []string{"Sources", "Media.xcassets"}, target.Sources)
	assert.Equal(t, "ABCDE12345", target.Settings["DEVELOPMENT_TEAM"])
	assert.Equal(t, "com.example.test_app", target.Settings["PRODUCT_BUNDLE_IDENTIFIER"])
	assert.Contains(t, target.Settings["OTHER_LDFLAGS"], "-ltest_app")
	require.Len(t, target.Dependencies, 2)
	assert.Equal(t, "UserNotifications.framework", target.Dependencies[0]["sdk"])

	out, err := yaml.Marshal(spec)
	require.NoError(t, err)
	assert.Contains(t, string(out), "name: test-app")
	assert.Contains(t, string(out), "deploymentTarget: \"9.0\"")
}

func TestAppleTargets(t *testing.T) {
	assert.Len(t, DeviceTargets(), 1)
	assert.Equal(t, "aarch64-apple-ios", DeviceTargets()[0].Triple)

	for _, target := range SimulatorTargets() {
		assert.Equal(t, "iphonesimulator", target.SDK)
	}

	_, err := TargetForArch("ppc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arm64, arm64-sim, x86_64")
}
