package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = "http://localhost:3000"

// Response types (self-contained, no dependency on main module)

type User struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	VibeStatus string   `json:"vibeStatus"`
	Friends    []string `json:"friends"`
}

type Venue struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	InterestedFriends []User  `json:"interestedFriends"`
	MutualCount       int     `json:"mutualCount"`
	InviteState       *Invite `json:"inviteState"`
}

type Invite struct {
	ID      string `json:"id"`
	VenueID string `json:"venueId"`
	Status  string `json:"status"`
}

type InviteList struct {
	Sent     []json.RawMessage `json:"sent"`
	Received []json.RawMessage `json:"received"`
	Related  []json.RawMessage `json:"related"`
	Pending  []json.RawMessage `json:"pending"`
}

type HeartResponse struct {
	Message  string `json:"message"`
	Interest struct {
		ID      string `json:"id"`
		VenueID string `json:"venueId"`
	} `json:"interest"`
}

type FriendsResponse struct {
	Friends []User `json:"friends"`
	Count   int    `json:"count"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func TestMain(m *testing.M) {
	if u := os.Getenv("API_URL"); u != "" {
		baseURL = u
	}

	if !waitForHealthy(15 * time.Second) {
		fmt.Fprintf(os.Stderr, "ERROR: API at %s not healthy after timeout\n", baseURL)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func waitForHealthy(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 2 * time.Second}

	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return true
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	return false
}

// --- Happy path ---

func TestHealth(t *testing.T) {
	resp, err := http.Get(baseURL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if health.Status != "ok" {
		t.Fatalf("expected status ok, got %q", health.Status)
	}
	if health.Timestamp == "" {
		t.Fatal("expected a timestamp")
	}
}

func TestGetVenueFeed(t *testing.T) {
	resp, err := http.Get(baseURL + "/venues")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var venues []Venue
	if err := json.NewDecoder(resp.Body).Decode(&venues); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(venues) == 0 {
		t.Fatal("expected a non-empty venue feed")
	}
	for _, v := range venues {
		if v.ID == "" || v.Name == "" {
			t.Fatalf("venue missing identity fields: %+v", v)
		}
		if v.InterestedFriends == nil {
			t.Fatalf("venue %s: interestedFriends should be [] not null", v.ID)
		}
	}
}

func TestGetCurrentUser(t *testing.T) {
	resp, err := http.Get(baseURL + "/users/me")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if user.ID == "" || user.Name == "" {
		t.Fatalf("expected a resolved current user, got %+v", user)
	}
}

func TestGetFriends(t *testing.T) {
	resp, err := http.Get(baseURL + "/social/friends")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var friends FriendsResponse
	if err := json.NewDecoder(resp.Body).Decode(&friends); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if friends.Count != len(friends.Friends) {
		t.Fatalf("count %d disagrees with %d friends", friends.Count, len(friends.Friends))
	}
}

func TestHeartUnheartCycle(t *testing.T) {
	// Pick the first venue from the feed so the test works against any seed
	resp, err := http.Get(baseURL + "/venues")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var venues []Venue
	if err := json.NewDecoder(resp.Body).Decode(&venues); err != nil {
		resp.Body.Close()
		t.Fatalf("failed to decode feed: %v", err)
	}
	resp.Body.Close()
	if len(venues) == 0 {
		t.Skip("no venues seeded")
	}
	venueID := venues[0].ID

	heartURL := fmt.Sprintf("%s/venues/%s/heart", baseURL, venueID)

	resp, err = http.Post(heartURL, "application/json", nil)
	if err != nil {
		t.Fatalf("heart request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 201 or 200, got %d", resp.StatusCode)
	}

	var heart HeartResponse
	if err := json.NewDecoder(resp.Body).Decode(&heart); err != nil {
		t.Fatalf("failed to decode heart response: %v", err)
	}
	if heart.Interest.VenueID != venueID {
		t.Fatalf("interest recorded for wrong venue: %+v", heart.Interest)
	}

	req, err := http.NewRequest(http.MethodDelete, heartURL, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("unheart request failed: %v", err)
	}
	defer delResp.Body.Close()
	if delResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on unheart, got %d", delResp.StatusCode)
	}
}

func TestGetInvitesShape(t *testing.T) {
	resp, err := http.Get(baseURL + "/invites")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var list InviteList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if list.Sent == nil || list.Received == nil || list.Related == nil || list.Pending == nil {
		t.Fatal("all invite groups must be present, [] when empty")
	}
}

// --- Error cases ---

func TestGetUnknownVenue(t *testing.T) {
	resp, err := http.Get(baseURL + "/venues/this-venue-does-not-exist")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if errResp.Error != "Venue not found" {
		t.Fatalf("wrong error message: %q", errResp.Error)
	}
}

func TestCreateInviteRejectedByValidation(t *testing.T) {
	// venueId alone should fail request validation
	body := bytes.NewReader([]byte(`{"venueId": "blue-note"}`))
	resp, err := http.Post(baseURL+"/invites", "application/json", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSuggestionRequiresVenueID(t *testing.T) {
	resp, err := http.Get(baseURL + "/agent/suggestion")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
