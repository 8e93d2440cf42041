/*
Copyright © 2025 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReturnsDefaultWhenKeyAbsent(t *testing.T) {
	v := viper.New()
	cfg, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeFromYAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
mcshader:
  logLevel: debug
  extraExtension:
    - inc
    - glslh
`)))

	cfg, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"inc", "glslh"}, cfg.ExtraExtension)
}

func TestDecodeRejectsInvalidLogLevelViaSchema(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
mcshader:
  logLevel: extremely-verbose
`)))

	_, err := Decode(v)
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownKeyViaSchema(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
mcshader:
  logLevel: info
  typoField: true
`)))

	_, err := Decode(v)
	assert.Error(t, err)
}
