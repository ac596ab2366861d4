package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// printPayload renders a decoded API payload as YAML, or JSON when the
// global --json flag is set.
func printPayload(payload map[string]any) error {
	if jsonOutput {
		printJSON(payload)
		return nil
	}
	out, err := yaml.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to render response")
	}
	fmt.Print(string(out))
	return nil
}
