package utils

import (
	"path/filepath"
	"strings"

	"github.com/artisanexperiences/trestle/internal/fs"
)

// ReadEnvFile parses KEY=VALUE lines from dir/filename. A missing or
// unreadable file yields an empty map.
func ReadEnvFile(filesystem fs.FS, dir, filename string) map[string]string {
	data, err := filesystem.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return make(map[string]string)
	}
	return ParseEnv(string(data))
}

// ParseEnv parses dotenv content. Blank lines and # comments are skipped, an
// optional "export " prefix is dropped and matching surrounding quotes are
// removed from values.
func ParseEnv(content string) map[string]string {
	result := make(map[string]string)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			continue
		}
		result[key] = unquote(strings.TrimSpace(parts[1]))
	}

	return result
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if (first == '"' || first == '\'') && first == last {
		return value[1 : len(value)-1]
	}
	return value
}

func EnvExists(env map[string]string, key string) bool {
	_, exists := env[key]
	return exists
}
