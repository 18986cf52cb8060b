// Package models defines the canonical in-memory shapes of the sitereport
// data layer. Every record read from the local cache or the remote store is
// normalized into one of these types before it reaches a caller; the JSON
// field names below are the canonical storage shape.
package models

// Project is an inspection project with its nested contractor list.
//
// ID is globally unique and stable across storage tiers. Name is never empty
// once normalized (it falls back to ""). ProjectName mirrors Name for
// legacy-compatible consumers and is kept in lockstep by the normalizer.
type Project struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	ProjectName       string       `json:"projectName"`
	NOABProjectNo     string       `json:"noabProjectNo"`
	CNOSolicitationNo string       `json:"cnoSolicitationNo"`
	Location          string       `json:"location"`
	PrimeContractor   string       `json:"primeContractor"`
	Status            string       `json:"status"`
	UserID            string       `json:"userId"`
	LogoURL           *string      `json:"logoUrl"`
	LogoThumbnail     *string      `json:"logoThumbnail"`
	Contractors       []Contractor `json:"contractors"`
}

// Contractor belongs to exactly one Project and has no independent
// lifecycle: the parent's contractor list is rewritten wholesale.
type Contractor struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	Company   string `json:"company"`
	// Type classifies the contractor role: "prime" or "sub".
	Type   string `json:"type"`
	Status string `json:"status"`
}
