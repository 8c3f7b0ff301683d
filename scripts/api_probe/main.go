// Command api_probe checks reachability and latency of the remote
// scheduling API's read endpoints before a console session is started.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

type target struct {
	name string
	path string
}

var targets = []target{
	{"time slots", "/time-slots"},
	{"classes", "/classes"},
	{"teachers", "/teachers"},
	{"rooms", "/rooms"},
	{"semesters", "/semesters"},
	{"templates", "/schedules"},
	{"configurations", "/configurations"},
}

func main() {
	var (
		base    string
		token   string
		timeout time.Duration
	)

	flag.StringVar(&base, "base", "https://localhost:5001/api", "scheduling API base URL")
	flag.StringVar(&token, "token", os.Getenv("API_TOKEN"), "bearer token")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}
	base = strings.TrimRight(base, "/")

	fmt.Println("API Probe Report")
	fmt.Println("================")

	failures := 0
	for _, tgt := range targets {
		status, duration, err := probe(client, base+tgt.path, token)
		if err != nil {
			failures++
			fmt.Printf("[ERROR] %-16s %v\n", tgt.name, err)
			continue
		}
		label := "OK"
		if status < 200 || status > 299 {
			failures++
			label = "FAIL"
		}
		fmt.Printf("[%s] %-16s status=%d latency=%s\n", label, tgt.name, status, duration)
	}

	if failures > 0 {
		fmt.Printf("%d endpoint(s) unavailable\n", failures)
		os.Exit(1)
	}
}

func probe(client *http.Client, url, token string) (int, time.Duration, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, 0, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close() //nolint:errcheck
	return resp.StatusCode, time.Since(start), nil
}
