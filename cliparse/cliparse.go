package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	DefaultPort           = 3318
	DefaultMaxUploadBytes = 10 << 20
	DefaultRequestTimeout = 120 * time.Second
)

type Config struct {
	Port             int
	ServiceURL       string
	ServiceToken     string
	MaxUploadBytes   int64
	RequestTimeout   time.Duration
	Compress         bool
	ExpandLineBreaks bool
	Heuristics       bool
	RulesFile        string
}

// ParseFlags reads flags, falling back to env variables and defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var maxUpload, timeout string
	var noCompress, noExpand, noHeuristics bool

	fs := flag.NewFlagSet("board2md", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.ServiceURL, "u", "", "Conversion service URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.ServiceToken, "token", "", "Conversion service token (prefer env)")

	// Limits
	fs.StringVar(&maxUpload, "max-upload", "", "Max upload size, e.g. 10MiB")
	fs.StringVar(&timeout, "timeout", "", "Conversion timeout, e.g. 90s")

	// Pipeline switches
	fs.BoolVar(&noCompress, "no-compress", false, "Forward uploads without re-encoding")
	fs.BoolVar(&noExpand, "no-expand", false, "Keep single line breaks")
	fs.BoolVar(&noHeuristics, "no-heuristics", false, "Disable whiteboard rules")
	fs.StringVar(&cfg.RulesFile, "rules", "", "YAML rule file replacing the built-in rules")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.ServiceURL == "" {
		cfg.ServiceURL = os.Getenv("BEAM_SERVICE_URL")
	}
	if cfg.ServiceURL == "" {
		return Config{}, errors.New("service URL required (use -u or BEAM_SERVICE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.ServiceToken == "" {
		cfg.ServiceToken = os.Getenv("BEAM_TOKEN")
	}
	if cfg.ServiceToken == "" {
		return Config{}, errors.New("BEAM_TOKEN required")
	}

	if maxUpload == "" {
		maxUpload = os.Getenv("MAX_UPLOAD_BYTES")
	}
	cfg.MaxUploadBytes = DefaultMaxUploadBytes
	if maxUpload != "" {
		n, err := humanize.ParseBytes(maxUpload)
		if err != nil || n == 0 {
			return Config{}, fmt.Errorf("invalid max upload size %q", maxUpload)
		}
		cfg.MaxUploadBytes = int64(n)
	}

	if timeout == "" {
		timeout = os.Getenv("REQUEST_TIMEOUT")
	}
	cfg.RequestTimeout = DefaultRequestTimeout
	if timeout != "" {
		d, err := parseTimeout(timeout)
		if err != nil {
			return Config{}, err
		}
		cfg.RequestTimeout = d
	}

	var err error
	if cfg.Compress, err = switchValue(noCompress, "COMPRESS_UPLOADS"); err != nil {
		return Config{}, err
	}
	if cfg.ExpandLineBreaks, err = switchValue(noExpand, "EXPAND_LINE_BREAKS"); err != nil {
		return Config{}, err
	}
	if cfg.Heuristics, err = switchValue(noHeuristics, "HEURISTICS"); err != nil {
		return Config{}, err
	}

	if cfg.RulesFile == "" {
		cfg.RulesFile = os.Getenv("RULES_FILE")
	}

	return cfg, nil
}

// switchValue resolves an on-by-default setting: a -no-* flag wins, then
// the env variable, then true
func switchValue(disabled bool, env string) (bool, error) {
	if disabled {
		return false, nil
	}
	v := os.Getenv(env)
	if v == "" {
		return true, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s env variable", env)
	}
	return b, nil
}

// parseTimeout accepts a Go duration or a plain number of seconds
func parseTimeout(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q", s)
	}
	return d, nil
}
