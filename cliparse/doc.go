// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - ServiceURL: Conversion service endpoint (required)
  - ServiceToken: Bearer token for the service (required)
  - MaxUploadBytes: Largest accepted upload (default: 10 MiB)
  - RequestTimeout: Time allowed for one conversion (default: 120s)
  - Compress: Re-encode uploads before sending them (default: on)
  - ExpandLineBreaks: Turn single newlines into paragraph breaks (default: on)
  - Heuristics: Apply the whiteboard rules to unstructured text (default: on)
  - RulesFile: YAML file replacing the built-in rules

# CLI Flags

	-p              Server port
	-u              Conversion service URL
	-token          Service token
	-max-upload     Upload limit, humanized (10MiB, 5MB, 1048576)
	-timeout        Conversion timeout (90s, 2m, or seconds)
	-no-compress    Forward uploads unchanged
	-no-expand      Keep single line breaks
	-no-heuristics  Skip the whiteboard rules
	-rules          Rule file

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	BEAM_SERVICE_URL   → -u
	BEAM_TOKEN         → -token
	MAX_UPLOAD_BYTES   → -max-upload
	REQUEST_TIMEOUT    → -timeout
	COMPRESS_UPLOADS   → -no-compress (true/false)
	EXPAND_LINE_BREAKS → -no-expand (true/false)
	HEURISTICS         → -no-heuristics (true/false)
	RULES_FILE         → -rules

CLI flags take precedence over environment variables. main loads a .env
file first, so its values behave like environment variables.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - BEAM_SERVICE_URL must be provided
  - BEAM_TOKEN must be provided
  - sizes, durations and switches must parse
*/
package cliparse
