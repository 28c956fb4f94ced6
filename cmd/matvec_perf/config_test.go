// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/gomlx/horizontal/pkg/perf"
	"github.com/gomlx/horizontal/pkg/perf/perftest"
	"github.com/gomlx/horizontal/pkg/tasks/matvec"
	"github.com/gomlx/horizontal/ui/commandline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSizes(t *testing.T) {
	cases, err := parseSizes([]string{"100x200", "3X4", "7", "0x5"})
	require.NoError(t, err)
	assert.Equal(t, []perf.Case{{Rows: 100, Cols: 200}, {Rows: 3, Cols: 4}, {Rows: 7, Cols: 7}, {Rows: 0, Cols: 5}}, cases)
	assert.Equal(t, "100x200", cases[0].String())

	for _, bad := range []string{"x5", "5x", "axb", "-1x3", "3x-1"} {
		_, err = parseSizes([]string{bad})
		assert.Error(t, err, "size %q", bad)
	}
	_, err = parseSizes(nil)
	assert.Error(t, err)
}

func TestParseKinds(t *testing.T) {
	kinds, err := parseKinds([]string{"pipeline_run", "task_run"})
	require.NoError(t, err)
	assert.Equal(t, []perf.RunKind{perf.RunKindPipelineRun, perf.RunKindTaskRun}, kinds)

	_, err = parseKinds([]string{"task_run", "unknown"})
	assert.Error(t, err)
	_, err = parseKinds(nil)
	assert.Error(t, err)
}

func TestNewConfig(t *testing.T) {
	cfg, err := newConfig(defaultSettings())
	require.NoError(t, err)
	assert.Len(t, cfg.cases, 5)
	assert.Equal(t, perf.Case{Rows: 3000, Cols: 3000}, cfg.cases[4])
	assert.Equal(t, perf.RunKindValues(), cfg.kinds)
	assert.Equal(t, 10, cfg.runs)
	assert.Equal(t, 0, cfg.warmup)
	assert.Equal(t, perf.DefaultMaxTime, cfg.maxTime)

	s := defaultSettings()
	_, err = commandline.ParseSettings(s, "sizes=4x3,2;runs=3;warmup=1;kinds=task_run;seed=42;max_time=1s")
	require.NoError(t, err)
	cfg, err = newConfig(s)
	require.NoError(t, err)
	assert.Equal(t, []perf.Case{{Rows: 4, Cols: 3}, {Rows: 2, Cols: 2}}, cfg.cases)
	assert.Equal(t, []perf.RunKind{perf.RunKindTaskRun}, cfg.kinds)
	assert.Equal(t, 3, cfg.runs)
	assert.Equal(t, 1, cfg.warmup)
	assert.Equal(t, uint64(42), cfg.seed)
	assert.Equal(t, time.Second, cfg.maxTime)

	s = defaultSettings()
	_, err = commandline.ParseSettings(s, "runs=-1")
	require.NoError(t, err)
	_, err = newConfig(s)
	assert.Error(t, err)
}

func TestNewSuite(t *testing.T) {
	s := defaultSettings()
	_, err := commandline.ParseSettings(s, "sizes=8x5,0x3,3x0;runs=2;seed=7")
	require.NoError(t, err)
	cfg, err := newConfig(s)
	require.NoError(t, err)

	suite := newSuite(cfg)
	suite.Attributes.CurrentTimer = perftest.NewFakeTimer(time.Millisecond)
	session := suite.Run()
	require.Len(t, session.Reports, 3)
	assert.Empty(t, session.Failed())
	for _, report := range session.Reports {
		require.Len(t, report.Results, 2)
		for _, results := range report.Results {
			assert.Equal(t, 2, results.NumRunning)
			assert.Equal(t, matvec.NumOps(report.Case.Rows, report.Case.Cols), results.NumOps)
			assert.Equal(t, 2*time.Millisecond, results.TotalTime)
			require.NoError(t, perf.CheckTimeLimit(results, cfg.maxTime))
		}
	}

	var buf bytes.Buffer
	perf.PrintPerfStatistic(&buf, session.Reports[0].Results[0])
	assert.Equal(t, "8x5:task_run:runs=2:total=0.0020000000s:avg=0.0010000000s\n", buf.String())
}

func TestNewSuiteIsDeterministic(t *testing.T) {
	// Same seed, same data.
	src1 := rand.NewPCG(7, 7^0x9e3779b97f4a7c15)
	src2 := rand.NewPCG(7, 7^0x9e3779b97f4a7c15)
	c1 := matvec.NewRandomCase(src1, 4, 4)
	c2 := matvec.NewRandomCase(src2, 4, 4)
	assert.Equal(t, c1.Matrix, c2.Matrix)
	assert.Equal(t, c1.Expected(), c2.Expected())
}
