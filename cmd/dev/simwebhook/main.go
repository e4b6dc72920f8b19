package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	var (
		url     = flag.String("url", "", "webhook endpoint url (defaults to http://localhost<HTTP_ADDR>/v1/webhooks/normalize)")
		payload = flag.String("payload", "", "path to json payload file")
		wrap    = flag.Bool("wrap", false, "wrap the payload in a relay delivery envelope [{body, headers}]")
	)
	flag.Parse()

	if *url == "" {
		httpAddr := os.Getenv("HTTP_ADDR")
		if httpAddr == "" {
			httpAddr = ":8081"
		}
		if len(httpAddr) > 0 && httpAddr[0] == ':' {
			*url = "http://localhost" + httpAddr + "/v1/webhooks/normalize"
		} else {
			*url = "http://localhost:8081/v1/webhooks/normalize"
		}
	}

	if *payload == "" {
		fmt.Fprintln(os.Stderr, "missing -payload")
		os.Exit(2)
	}

	b, err := os.ReadFile(*payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read payload: %v\n", err)
		os.Exit(2)
	}

	if *wrap {
		b, err = envelope(b)
		if err != nil {
			fmt.Fprintf(os.Stderr, "wrap payload: %v\n", err)
			os.Exit(2)
		}
	}

	req, err := http.NewRequest(http.MethodPost, *url, bytes.NewReader(b))
	if err != nil {
		fmt.Fprintf(os.Stderr, "new request: %v\n", err)
		os.Exit(2)
	}
	req.Header.Set("Content-Type", "application/json")

	c := &http.Client{Timeout: 10 * time.Second}
	resp, err := c.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "post: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("status=%d\n%s\n", resp.StatusCode, string(body))
}

func envelope(body []byte) ([]byte, error) {
	var inner any
	if err := json.Unmarshal(body, &inner); err != nil {
		return nil, err
	}
	return json.Marshal([]map[string]any{{
		"headers": map[string]any{"x-simwebhook": "1"},
		"body":    inner,
	}})
}
