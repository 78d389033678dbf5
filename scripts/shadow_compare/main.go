// Command shadow_compare replays catalog reads against the legacy Express
// backend and this API, and reports status or payload drift. The Go side wraps
// payloads in {"data": ...}; the envelope is removed before comparing.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetFile struct {
	Targets []target `json:"targets"`
}

var defaultTargets = []target{
	{Method: http.MethodGet, Path: "/api/catalogos/niveles", Critical: true},
	{Method: http.MethodGet, Path: "/api/catalogos/grados", Critical: true},
	{Method: http.MethodGet, Path: "/api/catalogos/secciones/1", Critical: true},
	{Method: http.MethodGet, Path: "/api/grades", Critical: false},
	{Method: http.MethodGet, Path: "/api/sections/grado/1", Critical: false},
}

type comparison struct {
	Target         target
	LegacyStatus   int
	GoStatus       int
	StatusMatch    bool
	BodyMatch      bool
	Error          error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

func main() {
	goBase := flag.String("go-base", "http://localhost:8080", "Go API base URL")
	legacyBase := flag.String("legacy-base", "http://localhost:3000", "legacy API base URL")
	targetsPath := flag.String("targets", "", "optional JSON targets file; catalog routes are used when empty")
	timeout := flag.Duration("timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(*targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: *timeout}
	var (
		results      []comparison
		breaking     int
		optionalDiff int
	)
	for _, t := range targets {
		comp := compareTarget(client, *goBase, *legacyBase, t)
		if comp.Error != nil || !comp.StatusMatch || !comp.BodyMatch {
			if t.Critical {
				breaking++
			} else {
				optionalDiff++
			}
		}
		results = append(results, comp)
	}

	printReport(results)
	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	if path == "" {
		return defaultTargets, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

func compareTarget(client *http.Client, goBase, legacyBase string, tgt target) comparison {
	comp := comparison{Target: tgt}

	goStatus, goBody, goDur, err := fetch(client, goBase, tgt)
	comp.DurationGo = goDur
	if err != nil {
		comp.Error = fmt.Errorf("go request: %w", err)
		return comp
	}
	legacyStatus, legacyBody, legacyDur, err := fetch(client, legacyBase, tgt)
	comp.DurationLegacy = legacyDur
	if err != nil {
		comp.Error = fmt.Errorf("legacy request: %w", err)
		return comp
	}

	comp.GoStatus = goStatus
	comp.LegacyStatus = legacyStatus
	comp.StatusMatch = goStatus == legacyStatus
	comp.BodyMatch = bodiesEqual(unwrapData(goBody), legacyBody)
	return comp
}

func fetch(client *http.Client, base string, tgt target) (int, []byte, time.Duration, error) {
	if client == nil {
		return 0, nil, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, time.Since(start), nil
}

// unwrapData returns the "data" member of a success envelope, or body unchanged.
func unwrapData(body []byte) []byte {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return body
	}
	if data, ok := envelope["data"]; ok {
		return data
	}
	return body
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	return reflect.DeepEqual(normalize(aj), normalize(bj))
}

// normalize folds integral floats so 1 and 1.0 compare equal.
func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, inner := range val {
			val[k] = normalize(inner)
		}
	case []interface{}:
		for i, inner := range val {
			val[i] = normalize(inner)
		}
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
	}
	return v
}

func printReport(results []comparison) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("=====================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		fmt.Printf("  Go: %d (%s) | Legacy: %d (%s)\n", res.GoStatus, res.DurationGo, res.LegacyStatus, res.DurationLegacy)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
	}
}
