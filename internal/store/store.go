package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"intime-cli/internal/countdown"
	"intime-cli/internal/model"
)

// Storage keys. Other clients of the same store read these names.
const (
	KeyMilestones = "@intime:milestones"
	KeyOnboarding = "@intime:hasCompletedOnboarding"
	KeyBirthday   = "@intime:birthday"
)

// Store owns the persisted milestone list and the two settings scalars.
//
// Reads are best effort: storage or decode failures are logged and degrade to a
// safe default (empty list, false, absent). Writes log and return their error.
type Store struct {
	kv  KV
	log *zap.Logger
}

func New(kv KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, log: log.Named("store")}
}

func (s *Store) Close() error {
	if s == nil || s.kv == nil {
		return nil
	}
	return s.kv.Close()
}

// LoadMilestones returns the stored list in stored order. Absent, unparsable or
// non-array data yields an empty list.
func (s *Store) LoadMilestones(ctx context.Context) []model.Milestone {
	raw, ok, err := s.kv.Get(ctx, KeyMilestones)
	if err != nil {
		s.log.Warn("load milestones", zap.String("key", KeyMilestones), zap.Error(err))
		return []model.Milestone{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []model.Milestone{}
	}
	out, err := decodeMilestones(raw)
	if err != nil {
		s.log.Warn("decode milestones", zap.String("key", KeyMilestones), zap.Error(err))
		return []model.Milestone{}
	}
	return out
}

func decodeMilestones(raw string) ([]model.Milestone, error) {
	var probe any
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, err
	}
	if _, ok := probe.([]any); !ok {
		return nil, errors.New("milestones blob is not a list")
	}
	var out []model.Milestone
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Milestone{}
	}
	return out, nil
}

// SaveMilestones overwrites the whole list (last writer wins).
func (s *Store) SaveMilestones(ctx context.Context, ms []model.Milestone) error {
	if ms == nil {
		ms = []model.Milestone{}
	}
	b, err := json.Marshal(ms)
	if err != nil {
		s.log.Error("encode milestones", zap.Error(err))
		return fmt.Errorf("encode milestones: %w", err)
	}
	if err := s.kv.Set(ctx, KeyMilestones, string(b)); err != nil {
		s.log.Error("save milestones", zap.String("key", KeyMilestones), zap.Int("count", len(ms)), zap.Error(err))
		return fmt.Errorf("save milestones: %w", err)
	}
	return nil
}

func (s *Store) HasCompletedOnboarding(ctx context.Context) bool {
	v, ok, err := s.kv.Get(ctx, KeyOnboarding)
	if err != nil {
		s.log.Warn("read onboarding flag", zap.String("key", KeyOnboarding), zap.Error(err))
		return false
	}
	return ok && v == "true"
}

func (s *Store) SetCompletedOnboarding(ctx context.Context) error {
	if err := s.kv.Set(ctx, KeyOnboarding, "true"); err != nil {
		s.log.Error("write onboarding flag", zap.String("key", KeyOnboarding), zap.Error(err))
		return fmt.Errorf("save onboarding flag: %w", err)
	}
	return nil
}

// Birthday returns the stored birth date (YYYY-MM-DD).
func (s *Store) Birthday(ctx context.Context) (string, bool) {
	v, ok, err := s.kv.Get(ctx, KeyBirthday)
	if err != nil {
		s.log.Warn("read birthday", zap.String("key", KeyBirthday), zap.Error(err))
		return "", false
	}
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (s *Store) SetBirthday(ctx context.Context, birthday string) error {
	birthday = strings.TrimSpace(birthday)
	if _, err := time.Parse("2006-01-02", birthday); err != nil {
		return fmt.Errorf("invalid birthday %q (expected YYYY-MM-DD)", birthday)
	}
	if err := s.kv.Set(ctx, KeyBirthday, birthday); err != nil {
		s.log.Error("write birthday", zap.String("key", KeyBirthday), zap.Error(err))
		return fmt.Errorf("save birthday: %w", err)
	}
	return nil
}

// Reset removes every key the store owns.
func (s *Store) Reset(ctx context.Context) error {
	for _, k := range []string{KeyMilestones, KeyOnboarding, KeyBirthday} {
		if err := s.kv.Delete(ctx, k); err != nil {
			s.log.Error("reset", zap.String("key", k), zap.Error(err))
			return fmt.Errorf("reset %s: %w", k, err)
		}
	}
	return nil
}

func birthdayMilestone(date string, now time.Time) model.Milestone {
	return model.Milestone{
		ID:        model.BirthdayMilestoneID,
		Title:     "Next Birthday",
		Date:      date,
		Emoji:     "🎂",
		Category:  model.CategoryPtr(model.CategoryPersonal),
		Note:      model.StringPtr("Another year of life"),
		CreatedAt: now.UTC().Format(time.RFC3339),
	}
}

func indexOf(ms []model.Milestone, id string) int {
	for i := range ms {
		if ms[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateBirthdayMilestoneIfNeeded prepends the birthday milestone when a birthday is
// set and no birthday milestone exists yet. An existing entry is never touched.
func (s *Store) CreateBirthdayMilestoneIfNeeded(ctx context.Context, now time.Time) error {
	birthday, ok := s.Birthday(ctx)
	if !ok {
		return nil
	}
	ms := s.LoadMilestones(ctx)
	if indexOf(ms, model.BirthdayMilestoneID) >= 0 {
		return nil
	}
	next, err := countdown.NextBirthdayDate(birthday, now)
	if err != nil {
		s.log.Warn("stored birthday unusable", zap.String("birthday", birthday), zap.Error(err))
		return nil
	}
	out := make([]model.Milestone, 0, len(ms)+1)
	out = append(out, birthdayMilestone(next, now))
	out = append(out, ms...)
	return s.SaveMilestones(ctx, out)
}

// RefreshBirthdayMilestone advances the birthday milestone to the next occurrence
// once its stored date has passed.
func (s *Store) RefreshBirthdayMilestone(ctx context.Context, now time.Time) (bool, error) {
	birthday, ok := s.Birthday(ctx)
	if !ok {
		return false, nil
	}
	ms := s.LoadMilestones(ctx)
	i := indexOf(ms, model.BirthdayMilestoneID)
	if i < 0 {
		return false, nil
	}
	if _, err := countdown.ParseDate(ms[i].Date, now.Location()); err == nil && !countdown.PassedDay(ms[i].Date, now) {
		return false, nil
	}
	next, err := countdown.NextBirthdayDate(birthday, now)
	if err != nil {
		s.log.Warn("stored birthday unusable", zap.String("birthday", birthday), zap.Error(err))
		return false, nil
	}
	if ms[i].Date == next {
		return false, nil
	}
	ms[i].Date = next
	if err := s.SaveMilestones(ctx, ms); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateBirthday stores a new birth date and moves the birthday milestone to match,
// creating it if it does not exist.
func (s *Store) UpdateBirthday(ctx context.Context, birthday string, now time.Time) error {
	birthday = strings.TrimSpace(birthday)
	if err := s.SetBirthday(ctx, birthday); err != nil {
		return err
	}
	ms := s.LoadMilestones(ctx)
	i := indexOf(ms, model.BirthdayMilestoneID)
	if i < 0 {
		return s.CreateBirthdayMilestoneIfNeeded(ctx, now)
	}
	next, err := countdown.NextBirthdayDate(birthday, now)
	if err != nil {
		return err
	}
	if ms[i].Date == next {
		return nil
	}
	ms[i].Date = next
	return s.SaveMilestones(ctx, ms)
}
