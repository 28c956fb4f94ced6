// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/gomlx/horizontal/pkg/perf"
	"github.com/gomlx/horizontal/ui/commandline"
	"github.com/pkg/errors"
)

// Setting names.
const (
	settingSizes   = "sizes"
	settingRuns    = "runs"
	settingWarmup  = "warmup"
	settingKinds   = "kinds"
	settingSeed    = "seed"
	settingMaxTime = "max_time"
)

func defaultSettings() commandline.Settings {
	return commandline.Settings{
		settingSizes:   []string{"100x100", "500x500", "1000x1000", "2000x2000", "3000x3000"},
		settingRuns:    10,
		settingWarmup:  0,
		settingKinds:   perf.RunKindStrings(),
		settingSeed:    uint64(0),
		settingMaxTime: perf.DefaultMaxTime,
	}
}

// config is the parsed version of the settings.
type config struct {
	cases   []perf.Case
	kinds   []perf.RunKind
	runs    int
	warmup  int
	seed    uint64
	maxTime time.Duration
}

func newConfig(s commandline.Settings) (*config, error) {
	cfg := &config{
		runs:    s[settingRuns].(int),
		warmup:  s[settingWarmup].(int),
		seed:    s[settingSeed].(uint64),
		maxTime: s[settingMaxTime].(time.Duration),
	}
	if cfg.runs < 0 || cfg.warmup < 0 {
		return nil, errors.Errorf("%s=%d and %s=%d must be non-negative", settingRuns, cfg.runs, settingWarmup, cfg.warmup)
	}
	var err error
	if cfg.cases, err = parseSizes(s[settingSizes].([]string)); err != nil {
		return nil, err
	}
	if cfg.kinds, err = parseKinds(s[settingKinds].([]string)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseSizes parses sizes in the form "RxC", or "N" for a square NxN matrix.
func parseSizes(sizes []string) ([]perf.Case, error) {
	if len(sizes) == 0 {
		return nil, errors.Errorf("no %s given", settingSizes)
	}
	cases := make([]perf.Case, 0, len(sizes))
	for _, size := range sizes {
		rowsStr, colsStr, found := strings.Cut(strings.ToLower(size), "x")
		if !found {
			colsStr = rowsStr
		}
		rows, err := strconv.Atoi(strings.TrimSpace(rowsStr))
		if err == nil && rows < 0 {
			err = errors.New("negative dimension")
		}
		if err != nil {
			return nil, errors.Wrapf(err, "invalid size %q, expected \"<rows>x<cols>\"", size)
		}
		cols, err := strconv.Atoi(strings.TrimSpace(colsStr))
		if err == nil && cols < 0 {
			err = errors.New("negative dimension")
		}
		if err != nil {
			return nil, errors.Wrapf(err, "invalid size %q, expected \"<rows>x<cols>\"", size)
		}
		cases = append(cases, perf.Case{Rows: rows, Cols: cols})
	}
	return cases, nil
}

func parseKinds(names []string) ([]perf.RunKind, error) {
	if len(names) == 0 {
		return nil, errors.Errorf("no %s given", settingKinds)
	}
	kinds := make([]perf.RunKind, 0, len(names))
	for _, name := range names {
		kind, err := perf.RunKindString(name)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid kind, valid values are %q", perf.RunKindStrings())
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
