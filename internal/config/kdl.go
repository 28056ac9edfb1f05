package config

import (
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	bigoerrors "github.com/standardbeagle/bigo/internal/errors"
)

// Load reads .bigo.kdl from dir, falling back to defaults when the
// file does not exist.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, bigoerrors.NewConfigError("file", path, err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, bigoerrors.NewConfigError("file", path, err)
	}

	// Relative model dirs resolve against the config file's directory.
	if cfg.Models.Dir != "" && !filepath.IsAbs(cfg.Models.Dir) {
		cfg.Models.Dir = filepath.Join(dir, cfg.Models.Dir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "models":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "dir":
					if s, ok := firstStringArg(cn); ok {
						cfg.Models.Dir = s
					}
				case "use_defaults":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Models.UseDefaults = b
					}
				case "watch":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Models.Watch = b
					}
				case "watch_debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Models.WatchDebounceMs = v
					}
				case "parallelism":
					if v, ok := firstIntArg(cn); ok {
						cfg.Models.Parallelism = v
					}
				}
			}
		case "engine":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "max_code_bytes":
					if v, ok := firstIntArg(cn); ok {
						cfg.Engine.MaxCodeBytes = v
					}
				}
			}
		case "debug":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "enabled":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Debug.Enabled = b
					}
				}
			}
		}
	}

	return cfg, nil
}

// Helpers over the kdl-go document model.

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}
