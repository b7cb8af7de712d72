package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/cognicore/kwscout/pkg/kwscout/internalerr"
)

var trailingCommas = regexp.MustCompile(`,\s*([}\]])`)

// decodeLenient parses model output that is supposed to be bare JSON but may
// arrive wrapped in markdown fences or carrying trailing commas. The stages
// are: raw → unfenced → parse; on parse failure, one repair attempt
// (trailing-comma strip) → parse; then fail with ErrMalformedOutput.
func decodeLenient(raw string, v any) error {
	cleaned := stripFences(raw)

	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	repaired := trailingCommas.ReplaceAllString(cleaned, "$1")
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("analysis: %w: %v", internalerr.ErrMalformedOutput, err)
	}
	return nil
}

// stripFences removes a leading/trailing ```json or ``` fence if present.
func stripFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```json")
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}
