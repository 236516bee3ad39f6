package apple

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrewPackageBin(t *testing.T) {
	// CocoaPods installs `pod`, not a `cocoapods` binary.
	assert.Equal(t, "pod", CocoaPods.bin())
	assert.Equal(t, "xcodegen", XcodeGen.bin())
	assert.Equal(t, "ios-deploy", IosDeploy.bin())
}

func TestBrewPackageFormula(t *testing.T) {
	assert.Equal(t, "cocoapods", CocoaPods.formula())
	tapped := BrewPackage{Name: "tool", Tap: "some/tap"}
	assert.Equal(t, "some/tap/tool", tapped.formula())
}
