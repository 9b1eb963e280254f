package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/rehletna/trivia/internal/trivia"
)

func TestPhotoTasksOnce(t *testing.T) {
	r, store := newTestServer(t)
	token := loginDevice(t, r, "Ana")
	setStage(t, r, store, token, trivia.Photos.Stage())

	w := doJSON(t, r, http.MethodGet, "/api/photos", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var list PhotoListResponse
	json.NewDecoder(w.Body).Decode(&list)
	if len(list.Tasks) != len(trivia.DefaultPhotoTasks) {
		t.Fatalf("expected %d tasks, got %d", len(trivia.DefaultPhotoTasks), len(list.Tasks))
	}

	task := trivia.DefaultPhotoTasks[0]
	path := fmt.Sprintf("/api/photos/%d/done", task.ID)

	w = doJSON(t, r, http.MethodPost, path, token, nil)
	var done PhotoDoneResponse
	json.NewDecoder(w.Body).Decode(&done)
	if done.Score != task.Points {
		t.Errorf("expected score %d, got %d", task.Points, done.Score)
	}

	// Marking again must not award the points twice.
	w = doJSON(t, r, http.MethodPost, path, token, nil)
	json.NewDecoder(w.Body).Decode(&done)
	if done.Score != task.Points {
		t.Errorf("repeat done must be idempotent, got score %d", done.Score)
	}

	w = doJSON(t, r, http.MethodPost, "/api/photos/999/done", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown task: expected 404, got %d", w.Code)
	}
}

func TestPhotoFinishRequiresOneTask(t *testing.T) {
	r, store := newTestServer(t)
	token := loginDevice(t, r, "Ana")
	setStage(t, r, store, token, trivia.Photos.Stage())

	w := doJSON(t, r, http.MethodPost, "/api/photos/finish", token, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("finish with nothing done: expected 409, got %d", w.Code)
	}

	path := fmt.Sprintf("/api/photos/%d/done", trivia.DefaultPhotoTasks[0].ID)
	doJSON(t, r, http.MethodPost, path, token, nil)

	w = doJSON(t, r, http.MethodPost, "/api/photos/finish", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("finish: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var d Device
	json.NewDecoder(w.Body).Decode(&d)
	if d.Stage != trivia.Photos.Stage()+1 {
		t.Errorf("expected stage %d after finish, got %d", trivia.Photos.Stage()+1, d.Stage)
	}

	// Finishing again must not advance the gate a second time.
	w = doJSON(t, r, http.MethodPost, "/api/photos/finish", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("repeat finish: expected 200, got %d", w.Code)
	}
	json.NewDecoder(w.Body).Decode(&d)
	if d.Stage != trivia.Photos.Stage()+1 {
		t.Errorf("repeat finish must keep stage %d, got %d", trivia.Photos.Stage()+1, d.Stage)
	}
}

func TestWheelSingleSpin(t *testing.T) {
	r, _ := newTestServer(t)
	token := loginDevice(t, r, "Ana")

	w := doJSON(t, r, http.MethodPost, "/api/wheel/spin", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("spin: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp WheelResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Outcome == nil {
		t.Fatal("expected a spin outcome")
	}
	if resp.Outcome.Index < 0 || resp.Outcome.Index >= len(trivia.WheelSlices) {
		t.Fatalf("outcome index %d out of range", resp.Outcome.Index)
	}
	slice := trivia.WheelSlices[resp.Outcome.Index]
	if resp.Outcome.Label != slice.Label || resp.Outcome.Points != slice.Points {
		t.Errorf("outcome %+v does not match slice %+v", resp.Outcome, slice)
	}
	if resp.Score != slice.Points {
		t.Errorf("expected score %d after spin, got %d", slice.Points, resp.Score)
	}

	// The spin is permanent.
	w = doJSON(t, r, http.MethodPost, "/api/wheel/spin", token, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("second spin: expected 409, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/wheel", token, nil)
	var again WheelResponse
	json.NewDecoder(w.Body).Decode(&again)
	if again.Outcome == nil || again.Outcome.Index != resp.Outcome.Index {
		t.Errorf("outcome must persist across reads: %+v", again.Outcome)
	}

	w = doJSON(t, r, http.MethodGet, "/api/state", token, nil)
	var state StateResponse
	json.NewDecoder(w.Body).Decode(&state)
	if !state.WheelSpun {
		t.Error("state must report the wheel as spun")
	}
}
