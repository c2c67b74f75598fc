// Package biblib provides a client for the ADS library ("biblib") API:
// named bibcode collections with CRUD and membership operations.
package biblib

// Metadata describes one library as reported by the list endpoint.
type Metadata struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Public           bool   `json:"public"`
	NumDocuments     int    `json:"num_documents"`
	NumUsers         int    `json:"num_users,omitempty"`
	Owner            string `json:"owner,omitempty"`
	Permission       string `json:"permission,omitempty"`
	DateCreated      string `json:"date_created,omitempty"`
	DateLastModified string `json:"date_last_modified,omitempty"`
}

// Library is a fully loaded library: metadata plus the complete ordered
// member bibcode list. Docs is only valid once its length equals
// Metadata.NumDocuments; Get enforces that before returning.
type Library struct {
	Metadata
	Docs []string `json:"documents"`
}

// Contains reports membership by bibcode.
func (l *Library) Contains(bibcode string) bool {
	for _, d := range l.Docs {
		if d == bibcode {
			return true
		}
	}
	return false
}

// EditOptions carries the mutable library fields for Edit. Nil pointers
// keep the current value; an empty NewName also keeps the current name.
type EditOptions struct {
	NewName     *string
	Description *string
	Public      *bool
}

// listResponse is the body of GET /libraries.
type listResponse struct {
	Libraries []Metadata `json:"libraries"`
}

// libraryResponse is the body of GET /libraries/<id>.
type libraryResponse struct {
	Documents []string `json:"documents"`
	Metadata  Metadata `json:"metadata"`
}

// documentsResponse is the body of POST /documents/<id>.
type documentsResponse struct {
	NumberAdded   *int   `json:"number_added"`
	NumberRemoved *int   `json:"number_removed"`
	Message       string `json:"message"`
	Error         string `json:"error"`
}
