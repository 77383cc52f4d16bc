package cli

import (
	"errors"
	"strings"
	"testing"

	"intime-cli/internal/mutate"
)

func TestMilestones_AddListShowEditDelete(t *testing.T) {
	dir := isolate(t)

	a := dataMap(t, mustEnv(t, "--dir", dir, "milestones", "add", "--title", "  Far trip ", "--date", "2099-03-01", "--category", "travel", "--note", "Pack **light**"))
	aID, _ := a["id"].(string)
	if aID == "" {
		t.Fatalf("expected id; got %#v", a)
	}
	if a["title"] != "Far trip" || a["emoji"] != "🎯" || a["category"] != "Travel" || a["note"] != "Pack **light**" {
		t.Fatalf("unexpected created milestone: %#v", a)
	}
	if a["date"] != "2099-03-01" {
		t.Fatalf("expected date-only date kept; got %v", a["date"])
	}

	b := dataMap(t, mustEnv(t, "--dir", dir, "milestones", "add", "--title", "Near", "--date", "2098-01-01", "--emoji", "🎉"))
	bID, _ := b["id"].(string)
	if _, ok := b["category"]; ok {
		t.Fatalf("expected no category; got %#v", b)
	}

	rows := dataList(t, mustEnv(t, "--dir", dir, "milestones", "list"))
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows; got %d", len(rows))
	}
	if rowID(rows[0]) != bID || rowID(rows[1]) != aID {
		t.Fatalf("expected soonest first; got %s, %s", rowID(rows[0]), rowID(rows[1]))
	}
	if d, _ := rows[0]["daysLeft"].(float64); d <= 0 {
		t.Fatalf("expected positive daysLeft; got %v", rows[0]["daysLeft"])
	}
	if p, _ := rows[0]["phrase"].(string); !strings.HasSuffix(p, "years left") {
		t.Fatalf("unexpected phrase %q", p)
	}

	show := dataMap(t, mustEnv(t, "--dir", dir, "milestones", "show", aID))
	if show["day"] != "Mar 1, 2099" {
		t.Fatalf("unexpected day: %v", show["day"])
	}
	if _, ok := show["detailed"].([]any); !ok {
		t.Fatalf("expected detailed blocks; got %#v", show["detailed"])
	}
	mot, _ := show["motivation"].(map[string]any)
	if mot["sub"] != "Take it one day at a time" {
		t.Fatalf("unexpected motivation: %#v", mot)
	}
	if _, ok := show["age"]; ok {
		t.Fatalf("age is only shown for the birthday milestone")
	}

	edited := dataMap(t, mustEnv(t, "--dir", dir, "milestones", "edit", aID, "--title", "Farther trip", "--clear-note"))
	if edited["title"] != "Farther trip" || edited["category"] != "Travel" || edited["date"] != "2099-03-01" {
		t.Fatalf("edit should keep unspecified fields; got %#v", edited)
	}
	if _, ok := edited["note"]; ok {
		t.Fatalf("expected note cleared; got %#v", edited)
	}
	if edited["createdAt"] != a["createdAt"] || edited["id"] != aID {
		t.Fatalf("edit must keep id and createdAt; got %#v", edited)
	}

	del := dataMap(t, mustEnv(t, "--dir", dir, "milestones", "delete", bID))
	if del["deleted"] != bID {
		t.Fatalf("unexpected delete result: %#v", del)
	}
	rows = dataList(t, mustEnv(t, "--dir", dir, "milestones", "list"))
	if len(rows) != 1 || rowID(rows[0]) != aID {
		t.Fatalf("expected only %s left; got %#v", aID, rows)
	}
}

func TestMilestones_NotFound(t *testing.T) {
	dir := isolate(t)

	for _, args := range [][]string{
		{"--dir", dir, "milestones", "show", "nope"},
		{"--dir", dir, "milestones", "edit", "nope", "--title", "x"},
		{"--dir", dir, "milestones", "delete", "nope"},
	} {
		_, stderr, err := runCLI(t, args)
		if err == nil {
			t.Fatalf("expected error for %v", args)
		}
		if !strings.Contains(string(stderr), "milestone not found: nope") {
			t.Fatalf("unexpected stderr for %v: %q", args, string(stderr))
		}
		var nf mutate.NotFoundError
		if !errors.As(err, &nf) || nf.ID != "nope" {
			t.Fatalf("expected mutate.NotFoundError for %v; got %T %v", args, err, err)
		}
	}
}

func TestMilestones_AddValidation(t *testing.T) {
	dir := isolate(t)

	cases := []struct {
		name string
		args []string
		want string
	}{
		{"long title", []string{"--title", strings.Repeat("x", 51), "--date", "2099-01-01"}, "invalid title"},
		{"blank title", []string{"--title", "   ", "--date", "2099-01-01"}, "invalid title"},
		{"bad date", []string{"--title", "x", "--date", "someday"}, "invalid date"},
		{"bad category", []string{"--title", "x", "--date", "2099-01-01", "--category", "Hobby"}, "invalid category"},
	}
	for _, tc := range cases {
		args := append([]string{"--dir", dir, "milestones", "add"}, tc.args...)
		_, stderr, err := runCLI(t, args)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(string(stderr), tc.want) {
			t.Fatalf("%s: expected %q in stderr; got %q", tc.name, tc.want, string(stderr))
		}
	}

	rows := dataList(t, mustEnv(t, "--dir", dir, "milestones", "list"))
	if len(rows) != 0 {
		t.Fatalf("failed adds must not persist; got %d rows", len(rows))
	}
}

func TestMilestones_BirthdayMilestoneIsManaged(t *testing.T) {
	dir := isolate(t)

	mustEnv(t, "--dir", dir, "onboarding", "complete", "--birthday", "1990-05-15")
	mustEnv(t, "--dir", dir, "milestones", "add", "--title", "Soon", "--date", "2097-01-01")

	rows := dataList(t, mustEnv(t, "--dir", dir, "milestones", "list"))
	if len(rows) != 2 || rowID(rows[0]) != "birthday-milestone" {
		t.Fatalf("expected birthday pinned first; got %#v", rows)
	}
	m, _ := rows[0]["milestone"].(map[string]any)
	if m["title"] != "Next Birthday" || m["emoji"] != "🎂" || m["category"] != "Personal" {
		t.Fatalf("unexpected birthday milestone: %#v", m)
	}
	if date, _ := m["date"].(string); !strings.HasSuffix(date, "-05-15") {
		t.Fatalf("expected next May 15; got %q", date)
	}

	show := dataMap(t, mustEnv(t, "--dir", dir, "milestones", "show", "birthday-milestone"))
	age, _ := show["age"].(float64)
	next, _ := show["nextAge"].(float64)
	if age < 35 || next != age+1 {
		t.Fatalf("unexpected ages: %v, %v", show["age"], show["nextAge"])
	}

	for _, args := range [][]string{
		{"--dir", dir, "milestones", "edit", "birthday-milestone", "--title", "x"},
		{"--dir", dir, "milestones", "delete", "birthday-milestone"},
	} {
		_, stderr, err := runCLI(t, args)
		if err == nil {
			t.Fatalf("expected error for %v", args)
		}
		if !strings.Contains(string(stderr), "managed by the birthday setting") {
			t.Fatalf("unexpected stderr: %q", string(stderr))
		}
	}
}

func TestMilestones_FileBackend(t *testing.T) {
	dir := isolate(t)

	mustEnv(t, "--dir", dir, "--backend", "file", "milestones", "add", "--title", "Filed", "--date", "2099-01-01")
	rows := dataList(t, mustEnv(t, "--dir", dir, "--backend", "file", "milestones", "list"))
	if len(rows) != 1 {
		t.Fatalf("expected 1 row from file backend; got %d", len(rows))
	}
	// The sqlite backend in the same dir is a separate store.
	rows = dataList(t, mustEnv(t, "--dir", dir, "milestones", "list"))
	if len(rows) != 0 {
		t.Fatalf("expected sqlite store empty; got %d", len(rows))
	}
}

func TestMilestones_MemoryBackendStartsEmpty(t *testing.T) {
	isolate(t)

	rows := dataList(t, mustEnv(t, "--backend", "memory", "milestones", "list"))
	if len(rows) != 0 {
		t.Fatalf("expected empty list; got %d", len(rows))
	}
}

func TestMilestones_YAMLFormat(t *testing.T) {
	dir := isolate(t)

	mustEnv(t, "--dir", dir, "milestones", "add", "--title", "Yaml", "--date", "2099-01-01")
	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "--format", "yaml", "milestones", "list"})
	if err != nil {
		t.Fatalf("list: %v\n%s", err, string(stderr))
	}
	out := string(stdout)
	if !strings.HasPrefix(out, "data:\n") || !strings.Contains(out, "title: Yaml") {
		t.Fatalf("unexpected yaml output:\n%s", out)
	}
}
