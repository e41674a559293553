package githubrepo

import "net/http"

// RepositorySummary describes one repository record from the organization listing.
type RepositorySummary struct {
	FullName string `json:"full_name"`
	Archived bool   `json:"archived"`
}

// HTTPClient abstracts the transport used for outbound GitHub requests.
type HTTPClient interface {
	Do(request *http.Request) (*http.Response, error)
}
