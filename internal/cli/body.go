package cli

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// parseParams turns repeated key=value flag values into a parameter map.
func parseParams(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, errors.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

// buildBody assembles the request payload from either a JSON file or
// repeated --set key=value flags. Set values that parse as JSON keep their
// type; everything else becomes a string. Set flags are applied on top of
// the file when both are given.
func buildBody(file string, sets []string) (json.RawMessage, error) {
	body := "{}"
	if file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrap(err, "unable to read body file")
		}
		if !gjson.ValidBytes(raw) {
			return nil, errors.Errorf("%s does not contain valid JSON", file)
		}
		body = string(raw)
	}

	for _, pair := range sets {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, errors.Errorf("invalid set flag %q, expected key=value", pair)
		}
		var err error
		if gjson.Valid(value) {
			body, err = sjson.SetRaw(body, key, value)
		} else {
			body, err = sjson.Set(body, key, value)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to set %q", key)
		}
	}

	if body == "{}" && file == "" && len(sets) == 0 {
		return nil, errors.New("request body is required: use -f or --set")
	}
	return json.RawMessage(body), nil
}
