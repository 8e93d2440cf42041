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
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/viper"
)

//go:embed schemas/*.json
var embeddedSchemas embed.FS

// Decode pulls the `mcshader` key out of v, validates it against the
// embedded JSON Schema, then mapstructure-decodes it into a Config. An
// absent key decodes to Default().
func Decode(v *viper.Viper) (Config, error) {
	raw := v.Get("mcshader")
	if raw == nil {
		return Default(), nil
	}

	if err := validateAgainstSchema(raw); err != nil {
		return Config{}, fmt.Errorf("config: mcshader key failed validation: %w", err)
	}

	cfg := Default()
	if err := mapstructure.Decode(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: could not decode mcshader key: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateAgainstSchema(raw any) error {
	schemaData, err := embeddedSchemas.ReadFile("schemas/mcshader.schema.json")
	if err != nil {
		return fmt.Errorf("could not read embedded schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("mcshader.schema.json", bytes.NewReader(schemaData)); err != nil {
		return fmt.Errorf("could not add schema resource: %w", err)
	}
	schema, err := compiler.Compile("mcshader.schema.json")
	if err != nil {
		return fmt.Errorf("could not compile schema: %w", err)
	}

	// round-trip raw through JSON so viper's decoded map[interface{}]interface{}
	// (from YAML) becomes the map[string]any/[]any shape jsonschema expects.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("could not marshal mcshader key: %w", err)
	}
	var v any
	if err := json.Unmarshal(encoded, &v); err != nil {
		return fmt.Errorf("could not unmarshal mcshader key: %w", err)
	}

	return schema.Validate(v)
}

// LoadViper mirrors cmd/root.go's initConfig: it reads a project-local
// ".config/mcshader.yaml" if present, then falls back to a user-level
// config in the XDG config home when the project has none, matching
// the teacher's use of xdg for out-of-project resource lookup.
func LoadViper(projectDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("mcshader")
	v.AddConfigPath(filepath.Join(projectDir, ".config"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading project config: %w", err)
		}
		if xdgPath, xdgErr := xdg.SearchConfigFile(filepath.Join("mcshader-lsp", "mcshader.yaml")); xdgErr == nil {
			if _, statErr := os.Stat(xdgPath); statErr == nil {
				v.SetConfigFile(xdgPath)
				if err := v.ReadInConfig(); err != nil {
					return nil, fmt.Errorf("config: reading XDG fallback config: %w", err)
				}
			}
		}
	}

	v.AutomaticEnv()
	return v, nil
}
