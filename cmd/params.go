package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// paramsFlags are the request body flags shared by create and update
type paramsFlags struct {
	data     string
	dataFile string
}

func (p *paramsFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&p.data, "data", "d", "", "request attributes as a JSON object")
	flags.StringVarP(&p.dataFile, "data-file", "f", "", "read request attributes from a JSON file ('-' for stdin)")
}

// parse returns the attributes given by --data or --data-file. Without either
// flag it returns nil, which the client sends as an empty object.
func (p *paramsFlags) parse(stdin io.Reader) (map[string]any, error) {
	if p.data != "" && p.dataFile != "" {
		return nil, errors.New("--data and --data-file cannot be used together")
	}

	var raw []byte
	switch {
	case p.data != "":
		raw = []byte(p.data)
	case p.dataFile == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		raw = b
	case p.dataFile != "":
		b, err := os.ReadFile(p.dataFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read data file: %w", err)
		}
		raw = b
	default:
		return nil, nil
	}

	return parseParams(raw)
}

// parseParams decodes a JSON object, keeping numbers exact
func parseParams(raw []byte) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("request attributes are empty")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var params map[string]any
	if err := dec.Decode(&params); err != nil {
		return nil, fmt.Errorf("request attributes must be a JSON object: %w", err)
	}
	if params == nil {
		return nil, errors.New("request attributes must be a JSON object, not null")
	}
	if dec.More() {
		return nil, errors.New("request attributes must be a single JSON object")
	}

	return params, nil
}

// parseIDs trims positional arguments into panel ids. Ids are opaque to the
// client and only need to be non-empty.
func parseIDs(kind string, args []string) ([]string, error) {
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id := strings.TrimSpace(arg)
		if id == "" {
			return nil, fmt.Errorf("invalid %s id %q", kind, arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
