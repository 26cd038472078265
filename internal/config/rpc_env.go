package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR_NAME} references in TOML values
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// DetectEnvVar returns the first ${VAR_NAME} referenced by a raw TOML value
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// GenerateEnvVarName generates the conventional env var name for a network's RPC URL.
// Examples: sepolia -> SEPOLIA_RPC_URL, base-sepolia -> BASE_SEPOLIA_RPC_URL
func GenerateEnvVarName(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_RPC_URL"
}

// expandEnv expands ${VAR} references. ok is false when a referenced
// variable is unset, the offending name is returned in missing.
func expandEnv(raw string) (value string, missing string, ok bool) {
	for _, match := range envVarPattern.FindAllStringSubmatch(raw, -1) {
		if _, set := os.LookupEnv(match[1]); !set {
			return "", match[1], false
		}
	}
	return os.ExpandEnv(raw), "", true
}
