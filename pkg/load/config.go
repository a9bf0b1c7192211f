package load

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"digital.vasic.typeassert/pkg/logging"
)

// ConfigFileName is the project configuration looked up by the
// loader.
const ConfigFileName = "tsconfig.json"

const maxExtendsDepth = 8

// CompilerOptions are the compiler settings that change how types
// are observed. Keys the loader does not interpret are kept in
// Extra.
type CompilerOptions struct {
	Strict                     bool
	StrictNullChecks           bool
	ExactOptionalPropertyTypes bool
	BaseURL                    string
	Extra                      map[string]any

	// ConfigFile is the tsconfig.json the options were read from,
	// empty when defaults were used.
	ConfigFile string
}

// DefaultCompilerOptions are used when no project configuration
// is found: strict mode, as generated by `tsc --init`.
func DefaultCompilerOptions() CompilerOptions {
	return CompilerOptions{
		Strict:           true,
		StrictNullChecks: true,
		Extra:            make(map[string]any),
	}
}

// FindConfigFile walks up from dir looking for tsconfig.json. It
// returns "" when there is none.
func FindConfigFile(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(abs, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return ""
		}
		abs = parent
	}
}

// ReadConfigFile reads the compilerOptions of a tsconfig.json,
// following relative "extends" chains. Options of the extending
// file win.
func ReadConfigFile(path string) (map[string]any, error) {
	return readConfigFile(path, 0)
}

func readConfigFile(path string, depth int) (map[string]any, error) {
	if depth > maxExtendsDepth {
		return nil, fmt.Errorf("read config %s: extends chain too deep", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var doc struct {
		Extends         string         `yaml:"extends"`
		CompilerOptions map[string]any `yaml:"compilerOptions"`
	}
	if err := yaml.Unmarshal([]byte(StripJSONC(string(data))), &doc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	options := make(map[string]any)
	if doc.Extends != "" && strings.HasPrefix(doc.Extends, ".") {
		base := filepath.Join(filepath.Dir(path), doc.Extends)
		if filepath.Ext(base) != ".json" {
			base += ".json"
		}
		inherited, err := readConfigFile(base, depth+1)
		if err != nil {
			return nil, err
		}
		for k, v := range inherited {
			options[k] = v
		}
	}
	for k, v := range doc.CompilerOptions {
		options[k] = v
	}
	return options, nil
}

// StripJSONC removes comments and trailing commas from a JSON with
// comments document. String contents are preserved.
func StripJSONC(src string) string {
	var sb strings.Builder
	inString := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if inString {
			sb.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(src) {
					i++
					sb.WriteByte(src[i])
				}
			case '"':
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			sb.WriteByte(c)
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				sb.WriteByte('\n')
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				i = len(src)
			} else {
				i += end + 3
			}
			sb.WriteByte(' ')
		case c == ',':
			j := i + 1
			for j < len(src) && strings.ContainsRune(" \t\r\n", rune(src[j])) {
				j++
			}
			if j < len(src) && (src[j] == '}' || src[j] == ']') {
				continue
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// resolveOptions builds the compiler options of a compilation:
// the project configuration found from dir, unless ignored, with
// custom options merged on top.
func resolveOptions(
	dir string,
	custom map[string]any,
	ignoreProject bool,
	log logging.Logger,
) (CompilerOptions, error) {
	merged := make(map[string]any)
	configFile := ""

	if !ignoreProject {
		configFile = FindConfigFile(dir)
		if configFile == "" {
			log.Warn("no tsconfig.json found, using default compiler options",
				logging.StringField("dir", dir))
		} else {
			project, err := ReadConfigFile(configFile)
			if err != nil {
				return CompilerOptions{}, err
			}
			log.Debug("using project configuration",
				logging.StringField("config", configFile))
			merged = project
		}
	}
	for k, v := range custom {
		merged[k] = v
	}

	opts := DefaultCompilerOptions()
	if configFile != "" {
		// a project without "strict" gets the compiler defaults
		opts.Strict = false
		opts.StrictNullChecks = false
	}
	opts.ConfigFile = configFile

	if v, ok := merged["strict"].(bool); ok {
		opts.Strict = v
		opts.StrictNullChecks = v
	}
	if v, ok := merged["strictNullChecks"].(bool); ok {
		opts.StrictNullChecks = v
	}
	if v, ok := merged["exactOptionalPropertyTypes"].(bool); ok {
		opts.ExactOptionalPropertyTypes = v
	}
	if v, ok := merged["baseUrl"].(string); ok {
		opts.BaseURL = v
		if configFile != "" && !filepath.IsAbs(v) {
			opts.BaseURL = filepath.Join(filepath.Dir(configFile), v)
		}
	}
	for k, v := range merged {
		switch k {
		case "strict", "strictNullChecks", "exactOptionalPropertyTypes", "baseUrl":
		default:
			opts.Extra[k] = v
		}
	}
	return opts, nil
}
