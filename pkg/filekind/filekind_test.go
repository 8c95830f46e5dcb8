package filekind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want Kind
	}{
		{"src/app.ts", Code},
		{"src/app.test.ts", Test},
		{"src/app.spec.tsx", Test},
		{"src/__tests__/app.ts", Test},
		{"src/__mocks__/api.ts", Test},
		{"tests/helper.ts", Test},
		{"src/types.d.ts", Declaration},
		{"src/types.d.mts", Declaration},
		{"package.json", Config},
		{"tsconfig.json", Config},
		{"vite.config.ts", Config},
		{"README.md", Docs},
		{"docs/guide.txt", Docs},
		{"src/index.js", Code},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.path), tc.path)
	}
}

func TestIsTest(t *testing.T) {
	assert.True(t, IsTest("a.test.ts"))
	assert.True(t, IsTest("src/tests/a.ts"))
	assert.False(t, IsTest("src/a.ts"))
	// "testing" directories are not test directories.
	assert.False(t, IsTest("src/testing/a.ts"))
}

func TestIsDeclaration(t *testing.T) {
	assert.True(t, IsDeclaration("global.d.ts"))
	assert.False(t, IsDeclaration("global.ts"))
}
