package lichess

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var apiHost = "https://lichess.org/"

var rateLimitCooloff = time.Minute
var rateLimitRetries = 4
var ErrRateLimited = errors.New("api: request was rate limited on each attempt")

type Client struct {
	apiKey string
	client *http.Client
	log    zerolog.Logger

	rateLimitMu   sync.Mutex
	rateLimitTime time.Time
}

func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		log:    log,
		client: &http.Client{
			CheckRedirect: redirectPolicyFunc(apiKey),
		},
	}
}

// Redirects remove the authorization header and by default redirect using a
// GET request, so both have to be restored by hand.
func redirectPolicyFunc(apiKey string) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		req.Header.Add("Authorization", "Bearer "+apiKey)
		req.Method = via[0].Method
		return nil
	}
}

func (c *Client) newRequest(method, apiURL string, params url.Values) (*http.Request, error) {
	body := strings.NewReader(params.Encode())
	req, err := http.NewRequest(method, apiHost+strings.Trim(apiURL, "/"), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if method == "POST" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, nil
}

type requestError struct {
	Error string
}

func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	for attempts := 0; attempts < rateLimitRetries; attempts++ {
		cooloff := c.getRateLimitCooloff()
		if cooloff != 0 {
			c.log.Warn().Dur("cooloff", cooloff).Msg("rate limited, sleeping")
			time.Sleep(cooloff)
		}

		res, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}

		if res.StatusCode == 429 {
			c.setRateLimitTime(time.Now())
			continue
		}

		if res.StatusCode != 200 {
			lichessError := requestError{}
			bytes, err := io.ReadAll(res.Body)
			res.Body.Close()
			if err != nil {
				return nil, err
			}

			json.Unmarshal(bytes, &lichessError)
			if lichessError.Error == "" {
				return nil, errors.New("api: " + res.Status)
			}
			return nil, errors.New(lichessError.Error)
		}

		return res, nil
	}

	return nil, ErrRateLimited
}

func (c *Client) doJSONRequest(req *http.Request, buffer interface{}) error {
	res, err := c.doRequest(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	bytes, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(bytes, buffer)
}

func (c *Client) getRateLimitTime() time.Time {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	return c.rateLimitTime
}

func (c *Client) setRateLimitTime(rateLimitTime time.Time) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	c.rateLimitTime = rateLimitTime
}

func (c *Client) getRateLimitCooloff() time.Duration {
	diff := time.Now().Sub(c.getRateLimitTime())
	if diff < rateLimitCooloff {
		return rateLimitCooloff - diff
	}

	return 0
}
