package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ankiConnectVersion is the protocol version sent with every request.
const ankiConnectVersion = 6

// DeckClient is the capability surface of the remote deck API. The
// assembler depends on this interface only, so tests run against a mock
// instead of a live endpoint.
type DeckClient interface {
	RequestPermission() error
	CreateModel(model Model) error
	CreateDeck(name string) error
	AddNote(note NotePayload) error
	ExportDeck(deck, path string) error
}

// Model describes the remote note type: its ordered fields and the
// front/back/style templates.
type Model struct {
	Name            string
	DescriptiveName string
	Fields          []string
	Templates       *CardTemplates
}

// MediaRef asks the remote system to download a file by URL and attach it
// to the named fields.
type MediaRef struct {
	URL      string   `json:"url"`
	Filename string   `json:"filename"`
	Fields   []string `json:"fields"`
}

// NotePayload is the wire shape of a create-note call.
type NotePayload struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Picture   []MediaRef        `json:"picture,omitempty"`
	Audio     []MediaRef        `json:"audio,omitempty"`
}

// APIError is an error reported by the remote API itself, as opposed to a
// transport failure. The assembler treats APIErrors on note creation as
// recoverable and everything else as fatal.
type APIError struct {
	Action  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Action, e.Message)
}

// AnkiClient talks the AnkiConnect JSON protocol: every call is a POST of
// {action, version, params} answered by {result, error}.
type AnkiClient struct {
	url    string
	client *http.Client
}

// NewAnkiClient returns a client for the API at host ("host:port").
func NewAnkiClient(host string) *AnkiClient {
	return &AnkiClient{
		url:    "http://" + host,
		client: &http.Client{},
	}
}

type apiRequest struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type apiResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// invoke performs one API action. A non-nil error field in the response
// becomes an *APIError; transport and decoding failures come back as
// plain wrapped errors.
func (c *AnkiClient) invoke(action string, params any) (json.RawMessage, error) {
	body, err := json.Marshal(apiRequest{
		Action:  action,
		Version: ankiConnectVersion,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", action, err)
	}

	resp, err := c.client.Post(c.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", action, err)
	}
	defer resp.Body.Close()

	var answer apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", action, err)
	}
	if answer.Error != nil && *answer.Error != "" {
		return nil, &APIError{Action: action, Message: *answer.Error}
	}
	return answer.Result, nil
}

// RequestPermission asks the API whether this client may drive it.
func (c *AnkiClient) RequestPermission() error {
	result, err := c.invoke("requestPermission", nil)
	if err != nil {
		return err
	}

	var answer struct {
		Permission string `json:"permission"`
	}
	if err := json.Unmarshal(result, &answer); err != nil {
		return fmt.Errorf("decoding permission response: %w", err)
	}
	if answer.Permission != "granted" {
		return fmt.Errorf("permission %q: the remote API does not grant access to this client", answer.Permission)
	}
	return nil
}

// CreateModel creates the note model. A model that already exists is not
// an error, so reruns against the same collection succeed.
func (c *AnkiClient) CreateModel(model Model) error {
	params := map[string]any{
		"modelName":     model.Name,
		"inOrderFields": model.Fields,
		"css":           model.Templates.CSS,
		"isCloze":       false,
		"cardTemplates": []map[string]string{
			{
				"Name":  model.DescriptiveName,
				"Front": model.Templates.Front,
				"Back":  model.Templates.Back,
			},
		},
	}

	_, err := c.invoke("createModel", params)
	var apiErr *APIError
	if err != nil && errors.As(err, &apiErr) && strings.Contains(apiErr.Message, "name already exists") {
		return nil
	}
	return err
}

// CreateDeck creates a deck; nested deck names use "::" separators.
func (c *AnkiClient) CreateDeck(name string) error {
	_, err := c.invoke("createDeck", map[string]any{"deck": name})
	return err
}

// AddNote submits one note.
func (c *AnkiClient) AddNote(note NotePayload) error {
	_, err := c.invoke("addNote", map[string]any{"note": note})
	return err
}

// ExportDeck exports the named deck to path on the API host, without
// scheduling information.
func (c *AnkiClient) ExportDeck(deck, path string) error {
	result, err := c.invoke("exportPackage", map[string]any{
		"deck":         deck,
		"path":         path,
		"includeSched": false,
	})
	if err != nil {
		return err
	}

	var ok bool
	if err := json.Unmarshal(result, &ok); err != nil {
		return fmt.Errorf("decoding export response: %w", err)
	}
	if !ok {
		return &APIError{Action: "exportPackage", Message: fmt.Sprintf("export to %s failed", path)}
	}
	return nil
}
