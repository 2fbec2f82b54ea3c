package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	tests := [][2]string{
		{"", ""},
		{"time", "time"},
		{"net/http", "http"},
		{"github.com/knadh/koanf/v2", "koanf"},
		{"github.com/go-playground/validator/v10", "validator"},
		{"gopkg.in/yaml.v3", "yaml"},
		{"github.com/davecgh/go-spew/spew", "spew"},
		{"github.com/go-viper/mapstructure/v2", "mapstructure"},
		{"example.com/my-lib", "mylib"},
		{"v2", "v2"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt[1], PkgAlias(tt[0]), tt[0])
	}
}

func TestFirst(t *testing.T) {
	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	n, ok := First([]int(nil))
	assert.False(t, ok)
	assert.Zero(t, n)
}
