package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	targetHost = "http://localhost:8080" // e2e окружение
	rps        = 5
	duration   = 3 * time.Minute
)

type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone"`
	Surname    string `json:"surname"`
	Name       string `json:"name"`
	Patronymic string `json:"patronymic"`
}

type RegisterResponse struct {
	Ok     bool   `json:"ok"`
	UserID string `json:"user_id"`
	Access string `json:"access"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var (
	emails []string
	tokens []string
	httpc  = &http.Client{Timeout: 10 * time.Second}
)

func postJSON(url string, body any) (int, []byte, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data, nil
}

// Seed
func seedData() error {
	log.Println("Seeding: registering users...")

	for u := 1; u <= 100; u++ {
		email := fmt.Sprintf("load-%d-%d@example.com", time.Now().Unix(), u)
		req := RegisterRequest{
			Email:    email,
			Password: "loadtest-password",
			Phone:    fmt.Sprintf("790012%05d", u),
			Surname:  fmt.Sprintf("Loaduser%d", u),
			Name:     "Test",
		}

		status, body, err := postJSON(targetHost+"/auth/register", req)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN auth/register returned %d\n", status)
			continue
		}

		var resp RegisterResponse
		if err := json.Unmarshal(body, &resp); err == nil && resp.Access != "" {
			tokens = append(tokens, resp.Access)
		}
		emails = append(emails, email)
		time.Sleep(15 * time.Millisecond)
	}

	log.Printf("Seed completed: users=%d tokens=%d\n", len(emails), len(tokens))
	return nil
}

// Targeter
func makeTargeter() vegeta.Targeter {
	return func(t *vegeta.Target) error {
		r := rand.Float64()

		// 50% GET /courses
		if r < 0.50 {
			t.Method = http.MethodGet
			t.URL = targetHost + "/courses"
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 25% GET /courses/categories
		if r < 0.75 {
			t.Method = http.MethodGet
			t.URL = targetHost + "/courses/categories"
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 15% GET /users/me под токеном
		if r < 0.90 {
			token := tokens[rand.Intn(len(tokens))]
			t.Method = http.MethodGet
			t.URL = targetHost + "/users/me"
			t.Body = nil
			t.Header = map[string][]string{"Authorization": {"Bearer " + token}}
			return nil
		}

		// 10% POST /auth/login
		email := emails[rand.Intn(len(emails))]
		body, _ := json.Marshal(LoginRequest{
			Username: email,
			Password: "loadtest-password",
		})
		t.Method = http.MethodPost
		t.URL = targetHost + "/auth/login"
		t.Body = body
		t.Header = map[string][]string{"Content-Type": {"application/json"}}
		return nil
	}
}

// Attack
func runAttack() {
	rate := vegeta.Rate{Freq: rps, Per: time.Second}
	attacker := vegeta.NewAttacker()
	targeter := makeTargeter()

	var metrics vegeta.Metrics

	log.Printf("Starting attack: %s for %s", targetHost, duration)
	for res := range attacker.Attack(targeter, rate, duration, "load-test") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
}

func main() {
	rand.Seed(time.Now().UnixNano())

	if err := seedData(); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	if len(tokens) == 0 || len(emails) == 0 {
		log.Fatal("Seed produced no usable accounts")
	}

	runAttack()
}
