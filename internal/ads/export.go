package ads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// ExportBibtex fetches BibTeX entries for the given bibcodes via the
// export endpoint. The API reports failures in the response body rather
// than the status line; those surface as ErrRemote with the message
// passed through verbatim.
func (c *Client) ExportBibtex(ctx context.Context, bibcodes []string) (string, error) {
	body, err := json.Marshal(map[string][]string{"bibcode": bibcodes})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	var out exportResponse
	if err := c.doJSON(ctx, "POST", c.baseURL+"/export/bibtex", bytes.NewReader(body), &out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrRemote, out.Error)
	}
	if out.Export == "" {
		return "", fmt.Errorf("%w: empty export", ErrRemote)
	}
	return out.Export, nil
}
