package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is a thin JSON client for the pubboard API, carrying the token
// obtained at login in the x-access-token header.
type Client struct {
	BaseURL string
	Token   string
	http    *http.Client
}

func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: 10 * time.Second}}
}

type Publication struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	UserID      uint   `json:"user_id"`
	PostedAgo   string `json:"posted_ago"`
}

type loginResponse struct {
	ID       uint   `json:"id"`
	Fullname string `json:"fullname"`
	Token    string `json:"token"`
}

type apiError struct {
	Message string `json:"message"`
}

// Login authenticates against /users/login and stores the token for
// subsequent calls. Returns the user's fullname.
func (c *Client) Login(host string, port int, email, password string) (string, error) {
	c.BaseURL = fmt.Sprintf("http://%s:%d/api/v1", host, port)

	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := c.http.Post(c.BaseURL+"/users/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login: %s", readMessage(resp))
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", err
	}
	c.Token = lr.Token
	return lr.Fullname, nil
}

func (c *Client) ListPublications() ([]Publication, error) {
	var out struct {
		Data []Publication `json:"data"`
	}
	if err := c.get("/publications", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) GetPublication(id uint) (*Publication, error) {
	var out struct {
		Data Publication `json:"data"`
	}
	if err := c.get(fmt.Sprintf("/publications/%d", id), &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) get(path string, v any) error {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-access-token", c.Token)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s", readMessage(resp))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func readMessage(resp *http.Response) string {
	var apiErr apiError
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Message == "" {
		return resp.Status
	}
	return apiErr.Message
}
