package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Profile holds the display fields of a directory record.
type Profile struct {
	FullName string
	Role     string
	Picture  string
}

// employeeFields mirrors the directory table's field names.
type employeeFields struct {
	FullName string       `json:"Full Name,omitempty"`
	Roles    string       `json:"Roles,omitempty"`
	Picture  []attachment `json:"Profile Picture,omitempty"`
}

type attachment struct {
	URL string `json:"url,omitempty"`
}

type employeeRecord struct {
	ID     string         `json:"id"`
	Fields employeeFields `json:"fields"`
}

type employeeListResponse struct {
	Records []employeeRecord `json:"records"`
}

// findEmployees queries the directory table for records whose Full Name
// matches username exactly.
func (c *Client) findEmployees(ctx context.Context, username string) ([]employeeRecord, error) {
	// Single quotes inside the formula literal must be escaped.
	escaped := strings.ReplaceAll(username, `'`, `\'`)
	query := url.Values{
		"filterByFormula": {fmt.Sprintf("{Full Name} = '%s'", escaped)},
	}

	var resp employeeListResponse
	if err := c.do(ctx, http.MethodGet, c.tableURL(c.employeesTable, query), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// UserExists reports whether the directory holds a record matching the
// username. This is the whole auth gate: no credentials, no roles.
func (c *Client) UserExists(ctx context.Context, username string) (bool, error) {
	records, err := c.findEmployees(ctx, username)
	if err != nil {
		return false, err
	}
	return len(records) > 0, nil
}

// FetchProfile returns the first matching directory record's display
// fields, or nil when the user has no directory record.
func (c *Client) FetchProfile(ctx context.Context, username string) (*Profile, error) {
	records, err := c.findEmployees(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	fields := records[0].Fields
	p := &Profile{FullName: fields.FullName, Role: fields.Roles}
	if len(fields.Picture) > 0 {
		p.Picture = fields.Picture[0].URL
	}
	return p, nil
}
