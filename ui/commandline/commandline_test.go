// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gomlx/horizontal/pkg/core/task"
	"github.com/gomlx/horizontal/pkg/perf"
	"github.com/gomlx/horizontal/pkg/perf/perftest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0s", FormatDuration(0))
	assert.Equal(t, "15ns", FormatDuration(15))
	assert.Equal(t, "1.50µs", FormatDuration(1500))
	assert.Equal(t, "3.46ms", FormatDuration(3456789))
	assert.Equal(t, "2.50s", FormatDuration(2500*time.Millisecond))
	assert.Equal(t, "2m5s", FormatDuration(2*time.Minute+5*time.Second+200*time.Millisecond))
	assert.Equal(t, "-3.46ms", FormatDuration(-3456789))
	assert.Equal(t, time.Duration(math.MinInt64).String(), FormatDuration(math.MinInt64))
}

func createTestSettings() Settings {
	return Settings{
		"runs":     10,
		"seed":     int64(0),
		"rate":     0.5,
		"verify":   true,
		"name":     "default",
		"max_time": 10 * time.Second,
		"sizes":    []string{"100x100"},
	}
}

func TestParseSettings(t *testing.T) {
	s := createTestSettings()
	settingsSet, err := ParseSettings(s, "runs=1_000;seed=-7;rate=0.25;verify=false;name=bench; max_time=1m30s;sizes=10x10, 20x30,")
	require.NoError(t, err)
	assert.Equal(t, []string{"runs", "seed", "rate", "verify", "name", "max_time", "sizes"}, settingsSet)
	assert.Equal(t, 1000, s["runs"])
	assert.Equal(t, int64(-7), s["seed"])
	assert.Equal(t, 0.25, s["rate"])
	assert.Equal(t, false, s["verify"])
	assert.Equal(t, "bench", s["name"])
	assert.Equal(t, 90*time.Second, s["max_time"])
	assert.Equal(t, []string{"10x10", "20x30"}, s["sizes"])

	// Values are trimmed like names.
	settingsSet, err = ParseSettings(s, "runs= 20 ; verify = true;max_time= 2s;name= x ")
	require.NoError(t, err)
	assert.Equal(t, []string{"runs", "verify", "max_time", "name"}, settingsSet)
	assert.Equal(t, 20, s["runs"])
	assert.Equal(t, true, s["verify"])
	assert.Equal(t, 2*time.Second, s["max_time"])
	assert.Equal(t, "x", s["name"])
	_, err = ParseSettings(s, "runs=1_000")
	require.NoError(t, err)

	// Unknown setting.
	_, err = ParseSettings(s, "warmups=3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown setting "warmups"`)

	// Wrong format and wrong values.
	_, err = ParseSettings(s, "runs")
	require.Error(t, err)
	_, err = ParseSettings(s, "runs=ten")
	require.Error(t, err)
	_, err = ParseSettings(s, "max_time=10")
	require.Error(t, err)
	assert.Equal(t, 1000, s["runs"])

	// Unsupported type.
	s["weird"] = struct{}{}
	_, err = ParseSettings(s, "weird=1")
	require.Error(t, err)
}

func TestParseSettingsFromFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "settings.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("# Comment\nruns=3\n\nsizes=5x5;verify=false\n"), 0o644))
	s := createTestSettings()
	settingsSet, err := ParseSettings(s, "name=x;file:"+filePath)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "runs", "sizes", "verify"}, settingsSet)
	assert.Equal(t, 3, s["runs"])
	assert.Equal(t, []string{"5x5"}, s["sizes"])

	_, err = ParseSettings(s, "file:"+filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestSprintSettings(t *testing.T) {
	s := Settings{"runs": 10, "kinds": []string{"task_run", "pipeline_run"}, "name": "x"}
	assert.Equal(t, "\tkinds=task_run,pipeline_run\n\tname=\"x\"\n\truns=10\n", SprintSettings(s))
}

func TestReplaceTildeInDir(t *testing.T) {
	assert.Equal(t, "/tmp/x", replaceTildeInDir("/tmp/x"))
	assert.Equal(t, "~user/x", replaceTildeInDir("~user/x"))
	if home, err := os.UserHomeDir(); err == nil {
		assert.Equal(t, filepath.Join(home, "x"), replaceTildeInDir("~/x"))
	}
}

func newTestSession(t *testing.T) *perf.Session {
	broken := perftest.NewTask()
	broken.Failures[task.PhaseValidation] = task.ShapeMismatchf("outputs_count[0]=3 != inputs_count[0]=2")
	suite := &perf.Suite{
		Cases: []perf.Case{{Rows: 1000, Cols: 1000}, {Name: "broken", Rows: 2, Cols: 2}},
		Kinds: perf.RunKindValues(),
		Attributes: perf.Attributes{
			NumRunning:   4,
			CurrentTimer: perftest.NewFakeTimer(time.Millisecond),
		},
		NewTask: func(c perf.Case) (task.Task, int64, error) {
			if c.Name == "broken" {
				return broken, 8, nil
			}
			return perftest.NewTask(), 2_000_000, nil
		},
	}
	session := suite.Run()
	require.Len(t, session.Reports, 2)
	return session
}

func TestPrintSession(t *testing.T) {
	session := newTestSession(t)
	var buf bytes.Buffer
	require.NoError(t, PrintSession(&buf, session))
	out := buf.String()
	assert.Contains(t, out, session.ID.String())
	assert.Contains(t, out, "1,000,000")
	assert.Contains(t, out, "task_run")
	assert.Contains(t, out, "pipeline_run")
	assert.Contains(t, out, "1.00ms")
	assert.Contains(t, out, "2,000,000")
	assert.Contains(t, out, "2.00") // GOps/sec
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "shape mismatch")
	// Title, table borders, header, 3 result rows.
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 8)
}

func TestProgressBar(t *testing.T) {
	broken := perftest.NewTask()
	broken.Failures[task.PhaseRun] = task.ShapeMismatchf("bad")
	suite := &perf.Suite{
		Cases:      []perf.Case{{Rows: 1, Cols: 1}, {Name: "broken"}, {Rows: 2, Cols: 2}},
		Kinds:      []perf.RunKind{perf.RunKindTaskRun},
		Attributes: perf.Attributes{NumRunning: 1},
		NewTask: func(c perf.Case) (task.Task, int64, error) {
			if c.Name == "broken" {
				return broken, 0, nil
			}
			return perftest.NewTask(), 0, nil
		},
	}
	var buf bytes.Buffer
	pBar := AttachProgressBar(suite, &buf)
	suite.Run()
	require.NoError(t, pBar.Finish())
	assert.Equal(t, 3, pBar.Done())
	assert.Equal(t, 1, pBar.Failures())
	assert.Contains(t, buf.String(), "3/3")
}
