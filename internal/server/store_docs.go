package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/rehletna/trivia/internal/trivia"
)

// Document types stored as JSONB in per-model tables.

// deviceDoc is the full progress record of one device. Cursors maps a
// category to the index of its current question; VerseProgress maps a
// level (as a string key, JSON objects cannot have int keys) to the
// index of the last completed question in that level, -1 when none.
// VerseLevel is the highest unlocked verse level and only ever grows,
// so a content edit to a lower level cannot re-lock a later one.
// Deadlines maps a question key to its RFC3339 answer deadline.
type deviceDoc struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Score         int               `json:"score"`
	Stage         int               `json:"stage"`
	Cursors       map[string]int    `json:"cursors"`
	HintsUsed     []int             `json:"hintsUsed"`
	VerseProgress map[string]int    `json:"verseProgress"`
	VerseLevel    int               `json:"verseLevel"`
	PhotosDone    []int             `json:"photosDone"`
	Wheel         *wheelOutcomeDoc  `json:"wheel,omitempty"`
	Deadlines     map[string]string `json:"deadlines,omitempty"`
	CreatedAt     string            `json:"createdAt"`
}

type wheelOutcomeDoc struct {
	Rotation int    `json:"rotation"`
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Points   int    `json:"points"`
	SpunAt   string `json:"spunAt"`
}

func (d *deviceDoc) cursor(cat trivia.Category) int {
	return d.Cursors[string(cat)]
}

func (d *deviceDoc) setCursor(cat trivia.Category, idx int) {
	if d.Cursors == nil {
		d.Cursors = map[string]int{}
	}
	d.Cursors[string(cat)] = idx
}

func (d *deviceDoc) hintUsed(riddleID int) bool {
	for _, id := range d.HintsUsed {
		if id == riddleID {
			return true
		}
	}
	return false
}

func (d *deviceDoc) photoDone(taskID int) bool {
	for _, id := range d.PhotosDone {
		if id == taskID {
			return true
		}
	}
	return false
}

// completeStage advances the gate past stage n. Completing an already
// passed stage is a no-op, so the gate only ever moves forward.
func (d *deviceDoc) completeStage(n int) {
	if n >= d.Stage {
		d.Stage = n + 1
	}
}

func verseKey(level int) string { return strconv.Itoa(level) }

func (d *deviceDoc) verseLast(level int) int {
	if d.VerseProgress == nil {
		return -1
	}
	last, ok := d.VerseProgress[verseKey(level)]
	if !ok {
		return -1
	}
	return last
}

func (d *deviceDoc) setVerseLast(level, idx int) {
	if d.VerseProgress == nil {
		d.VerseProgress = map[string]int{}
	}
	d.VerseProgress[verseKey(level)] = idx
}

func (d *deviceDoc) verseLevelUnlocked() int {
	if d.VerseLevel < 1 {
		return 1
	}
	return d.VerseLevel
}

// unlockVerseLevel raises the highest unlocked verse level. It never
// lowers it.
func (d *deviceDoc) unlockVerseLevel(level int) {
	if level > d.verseLevelUnlocked() {
		d.VerseLevel = level
	}
}

func (d *deviceDoc) deadline(key string) (time.Time, bool) {
	raw, ok := d.Deadlines[key]
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (d *deviceDoc) setDeadline(key string, t time.Time) {
	if d.Deadlines == nil {
		d.Deadlines = map[string]string{}
	}
	d.Deadlines[key] = t.UTC().Format(time.RFC3339Nano)
}

func (d *deviceDoc) clearDeadline(key string) {
	delete(d.Deadlines, key)
}

// DocStore persists devices, sessions, and content overrides in per-model
// tables with JSONB data columns.
type DocStore struct {
	db *sql.DB
}

func NewDocStore(ctx context.Context, db *sql.DB) (*DocStore, error) {
	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS devices (
			id   TEXT PRIMARY KEY,
			data JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id   TEXT PRIMARY KEY,
			data JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS admin_sessions (
			id   TEXT PRIMARY KEY,
			data JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS content_overrides (
			id   TEXT PRIMARY KEY,
			data JSONB NOT NULL
		)`,
	} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return nil, fmt.Errorf("creating table: %w", err)
		}
	}

	return &DocStore{db: db}, nil
}

// Generic helpers, same shape for every table.

func (s *DocStore) get(ctx context.Context, table, id string, dest any) error {
	var data string
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT json(data) FROM %s WHERE id = ?`, table), id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (s *DocStore) put(ctx context.Context, table, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT OR REPLACE INTO %s (id, data) VALUES (?, jsonb(?))`, table),
		id, string(data),
	)
	return err
}

func (s *DocStore) del(ctx context.Context, table, id string) error {
	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nowUTC() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// Devices

// CreateDevice registers a new device under the given display name and
// returns it together with a fresh session token.
func (s *DocStore) CreateDevice(ctx context.Context, name string) (deviceDoc, string, error) {
	progress := map[string]int{}
	for lvl := 1; lvl <= trivia.VerseLevels; lvl++ {
		progress[verseKey(lvl)] = -1
	}

	d := deviceDoc{
		ID:            uuid.NewString(),
		Name:          name,
		Cursors:       map[string]int{},
		HintsUsed:     []int{},
		VerseProgress: progress,
		VerseLevel:    1,
		PhotosDone:    []int{},
		CreatedAt:     nowUTC(),
	}
	if err := s.put(ctx, "devices", d.ID, d); err != nil {
		return deviceDoc{}, "", err
	}

	token, err := s.createSession(ctx, d.ID)
	if err != nil {
		return deviceDoc{}, "", err
	}
	return d, token, nil
}

// LoginDevice reattaches a known device to a fresh session token and
// refreshes its display name. Score and progress are untouched. Returns
// ErrNotFound for an unknown device id.
func (s *DocStore) LoginDevice(ctx context.Context, deviceID, name string) (deviceDoc, string, error) {
	d, err := s.modifyDevice(ctx, deviceID, func(doc *deviceDoc) error {
		doc.Name = name
		return nil
	})
	if err != nil {
		return deviceDoc{}, "", err
	}

	token, err := s.createSession(ctx, d.ID)
	if err != nil {
		return deviceDoc{}, "", err
	}
	return d, token, nil
}

func (s *DocStore) createSession(ctx context.Context, deviceID string) (string, error) {
	token := uuid.NewString()
	if err := s.put(ctx, "sessions", token, deviceSession{DeviceID: deviceID}); err != nil {
		return "", err
	}
	return token, nil
}

func (s *DocStore) getDevice(ctx context.Context, id string) (deviceDoc, error) {
	var d deviceDoc
	err := s.get(ctx, "devices", id, &d)
	return d, err
}

// DeviceFromToken resolves a bearer token to its device.
func (s *DocStore) DeviceFromToken(ctx context.Context, token string) (deviceDoc, error) {
	var sess deviceSession
	if err := s.get(ctx, "sessions", token, &sess); err != nil {
		return deviceDoc{}, err
	}
	return s.getDevice(ctx, sess.DeviceID)
}

func (s *DocStore) DeleteSession(ctx context.Context, token string) error {
	return s.del(ctx, "sessions", token)
}

// modifyDevice loads a device, applies fn, and saves it in a transaction.
func (s *DocStore) modifyDevice(ctx context.Context, deviceID string, fn func(*deviceDoc) error) (deviceDoc, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return deviceDoc{}, err
	}
	defer tx.Rollback()

	var data string
	err = tx.QueryRowContext(ctx,
		`SELECT json(data) FROM devices WHERE id = ?`, deviceID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return deviceDoc{}, ErrNotFound
	}
	if err != nil {
		return deviceDoc{}, err
	}

	var d deviceDoc
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return deviceDoc{}, err
	}

	if err := fn(&d); err != nil {
		return deviceDoc{}, err
	}

	jsonData, err := json.Marshal(d)
	if err != nil {
		return deviceDoc{}, err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE devices SET data = jsonb(?) WHERE id = ?`,
		string(jsonData), d.ID,
	)
	if err != nil {
		return deviceDoc{}, err
	}

	return d, tx.Commit()
}

// Admin sessions

func (s *DocStore) CreateAdminSession(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if err := s.put(ctx, "admin_sessions", id, adminSession{CreatedAt: nowUTC()}); err != nil {
		return "", err
	}
	return id, nil
}

func (s *DocStore) AdminSessionExists(ctx context.Context, id string) (bool, error) {
	var sess adminSession
	err := s.get(ctx, "admin_sessions", id, &sess)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *DocStore) DeleteAdminSession(ctx context.Context, id string) error {
	err := s.del(ctx, "admin_sessions", id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
