package embedded

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/routes.yaml":       {Data: []byte("routes: []")},
		"data/gacha_tuning.yaml": {Data: []byte("failChance: 0.35")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Reset()
	assert.False(t, IsInitialized())

	Init(testFS())
	assert.True(t, IsInitialized())

	Reset()
	assert.False(t, IsInitialized())
}

// TestNotInitialized 测试未初始化时的调用
func TestNotInitialized(t *testing.T) {
	Reset()

	_, err := ReadFile("data/routes.yaml")
	assert.True(t, errors.Is(err, ErrNotInitialized))

	_, err = Open("data/routes.yaml")
	assert.True(t, errors.Is(err, ErrNotInitialized))

	assert.False(t, Exists("data/routes.yaml"))
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Reset()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"普通路径", "data/routes.yaml", "routes: []", false},
		{"带./前缀", "./data/gacha_tuning.yaml", "failChance: 0.35", false},
		{"错误前缀", "assets/bg.png", "", true},
		{"不存在", "data/missing.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestGlob(t *testing.T) {
	Init(testFS())
	defer Reset()

	matches, err := Glob("data/*.yaml")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"data/routes.yaml", "data/gacha_tuning.yaml"}, matches)

	assert.True(t, Exists("data/routes.yaml"))
	assert.False(t, Exists("data/nope.yaml"))
}
