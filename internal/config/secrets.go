// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// DefaultSecretsDir is the directory read by LoadSecrets when secrets_dir
// is not set.
const DefaultSecretsDir = ".secrets"

// secretKeys maps secret file names to the config keys they populate.
// openalex-email is the name the file had before contact became a
// provider-neutral setting.
var secretKeys = map[string]string{
	"contact":        KeyContact,
	"openalex-email": KeyContact,
	"user-agent":     KeyUserAgent,
}

// LoadSecrets reads a directory of plain-text files, one value per file,
// and registers each recognised file as a default on v. Flags, the
// environment and the config file all take precedence. A missing directory
// is not an error. It returns the sorted names of the files applied.
func LoadSecrets(v *viper.Viper, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading secrets directory %s: %v", ErrConfiguration, dir, err)
	}

	var applied []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		key, ok := secretKeys[name]
		if !ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: reading secret %s: %v", ErrConfiguration, name, err)
		}
		value := strings.TrimSpace(string(data))
		if value == "" {
			continue
		}
		// "contact" wins over the legacy file name regardless of read order.
		if name == "openalex-email" && hasFile(dir, "contact") {
			continue
		}
		v.SetDefault(key, value)
		applied = append(applied, name)
	}

	sort.Strings(applied)
	return applied, nil
}

func hasFile(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}
