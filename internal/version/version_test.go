package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	info := Info()
	assert.Contains(t, info, "Version:    "+Version)
	assert.Contains(t, info, runtime.GOOS+"/"+runtime.GOARCH)
}
